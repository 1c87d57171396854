package compositor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/scene"
)

type stubScene struct {
	name    string
	opacity float64
	blends  []float64
}

func (s *stubScene) Draw(*ebiten.Image, scene.Camera) {}

type blendScene struct {
	stubScene
}

func (b *blendScene) SetBlendOpacity(v float64) {
	b.opacity = v
	b.blends = append(b.blends, v)
}

type stubCamera struct{}

func (stubCamera) SetAspect(float64) {}
func (stubCamera) Aspect() float64   { return 1 }

// recordingRenderer logs every call as a short string. Images are compared
// by pointer only and never drawn to.
type recordingRenderer struct {
	names    map[*ebiten.Image]string
	ops      []string
	w, h     int
	allocs   int
	released int
}

func newRecordingRenderer(screen *ebiten.Image) *recordingRenderer {
	return &recordingRenderer{names: map[*ebiten.Image]string{screen: "screen"}, w: 640, h: 360}
}

func (r *recordingRenderer) name(img *ebiten.Image) string {
	if n, ok := r.names[img]; ok {
		return n
	}
	return "?"
}

func sceneName(s scene.Scene) string {
	switch v := s.(type) {
	case *stubScene:
		return v.name
	case *blendScene:
		return fmt.Sprintf("%s(%.2f)", v.name, v.opacity)
	}
	return "?"
}

func (r *recordingRenderer) Render(dst *ebiten.Image, s scene.Scene, _ scene.Camera) {
	r.ops = append(r.ops, "render "+sceneName(s)+" -> "+r.name(dst))
}

func (r *recordingRenderer) Clear(dst *ebiten.Image) {
	r.ops = append(r.ops, "clear "+r.name(dst))
}

func (r *recordingRenderer) ClearDepth(dst *ebiten.Image) {
	r.ops = append(r.ops, "depth "+r.name(dst))
}

func (r *recordingRenderer) SetSize(w, h int) { r.w, r.h = w, h }
func (r *recordingRenderer) Size() (int, int) { return r.w, r.h }

func (r *recordingRenderer) NewTarget(w, h int) *ebiten.Image {
	r.allocs++
	img := new(ebiten.Image)
	r.names[img] = fmt.Sprintf("target%d", r.allocs)
	return img
}

func (r *recordingRenderer) ReleaseTarget(*ebiten.Image) { r.released++ }

func (r *recordingRenderer) reset() { r.ops = nil }

type mixCall struct {
	a, b string
	u    MixUniforms
}

type recordingMixer struct {
	r     *recordingRenderer
	calls []mixCall
}

func (m *recordingMixer) Mix(dst, a, b *ebiten.Image, u MixUniforms) {
	m.calls = append(m.calls, mixCall{a: m.r.name(a), b: m.r.name(b), u: u})
	m.r.ops = append(m.r.ops, "mix -> "+m.r.name(dst))
}

type fakeMasks struct {
	imgs    []*ebiten.Image
	resized []string
}

func newFakeMasks(n int) *fakeMasks {
	m := &fakeMasks{}
	for i := 0; i < n; i++ {
		m.imgs = append(m.imgs, new(ebiten.Image))
	}
	return m
}

func (m *fakeMasks) Len() int                 { return len(m.imgs) }
func (m *fakeMasks) Mask(i int) *ebiten.Image { return m.imgs[i] }
func (m *fakeMasks) Resize(w, h int)          { m.resized = append(m.resized, fmt.Sprintf("%dx%d", w, h)) }

func newRegistry(t *testing.T, scenes ...scene.Scene) *scene.Registry {
	t.Helper()
	reg := scene.NewRegistry()
	for i, s := range scenes {
		if _, err := reg.Register(scene.Entry{Name: fmt.Sprint(i), Scene: s, Camera: stubCamera{}}); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	return reg
}

func expectOps(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected render ops:\n got: %q\nwant: %q", got, want)
	}
}
