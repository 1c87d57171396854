package compositor

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/transition"
)

type mixFixture struct {
	screen *ebiten.Image
	r      *recordingRenderer
	mixer  *recordingMixer
	masks  *fakeMasks
	state  *transition.MixState
	c      *ShaderMix
}

func newMixFixture(t *testing.T, useMask bool) *mixFixture {
	t.Helper()
	f := &mixFixture{screen: new(ebiten.Image)}
	f.r = newRecordingRenderer(f.screen)
	f.mixer = &recordingMixer{r: f.r}
	f.masks = newFakeMasks(3)
	state, err := transition.NewMixState(0.1, 3, useMask, true, 0)
	if err != nil {
		t.Fatalf("NewMixState: %v", err)
	}
	f.state = state
	c, err := NewShaderMix(f.r, f.mixer, f.masks, state)
	if err != nil {
		t.Fatalf("NewShaderMix: %v", err)
	}
	f.c = c
	return f
}

func TestShaderMixBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		snap  transition.State
		ops   []string
		held  []int
		mixes int
	}{
		{
			name: "idle renders current",
			snap: transition.State{From: 2, To: 2},
			ops:  []string{"clear screen", "render c -> screen"},
		},
		{
			name: "ratio zero renders A only",
			snap: transition.State{From: 0, To: 1, Active: true, Progress: 0},
			ops:  []string{"clear screen", "render a -> screen"},
			held: []int{1},
		},
		{
			name: "ratio one renders B only",
			snap: transition.State{From: 0, To: 1, Active: true, Progress: 1},
			ops:  []string{"clear screen", "render b -> screen"},
			held: []int{0},
		},
		{
			name: "inside epsilon of zero",
			snap: transition.State{From: 0, To: 1, Active: true, Progress: transition.Epsilon / 2},
			ops:  []string{"clear screen", "render a -> screen"},
			held: []int{1},
		},
		{
			name: "middle mixes both targets",
			snap: transition.State{From: 0, To: 1, Active: true, Progress: 0.5},
			ops: []string{
				"clear target1", "render a -> target1",
				"clear target2", "render b -> target2",
				"mix -> screen",
			},
			mixes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMixFixture(t, true)
			reg := newRegistry(t, &stubScene{name: "a"}, &stubScene{name: "b"}, &stubScene{name: "c"})

			if err := f.c.Draw(f.screen, reg, tt.snap); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			expectOps(t, f.r.ops, tt.ops...)
			if len(f.mixer.calls) != tt.mixes {
				t.Fatalf("expected %d mix calls, got %d", tt.mixes, len(f.mixer.calls))
			}
			held := f.c.Held(tt.snap)
			if len(held) != len(tt.held) || (len(held) == 1 && held[0] != tt.held[0]) {
				t.Fatalf("held = %v, want %v", held, tt.held)
			}
		})
	}
}

func TestShaderMixUniforms(t *testing.T) {
	f := newMixFixture(t, true)
	reg := newRegistry(t, &stubScene{name: "a"}, &stubScene{name: "b"})

	if err := f.c.Draw(f.screen, reg, transition.State{From: 0, To: 1, Active: true, Progress: 0.25}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	call := f.mixer.calls[0]
	if call.a != "target1" || call.b != "target2" {
		t.Fatalf("mixed %s with %s", call.a, call.b)
	}
	if call.u.MixRatio != 0.25 || call.u.Threshold != 0.1 {
		t.Fatalf("unexpected uniforms %+v", call.u)
	}
	if !call.u.UseMask || call.u.Mask != f.masks.imgs[0] {
		t.Fatalf("expected mask 0 bound, got %+v", call.u)
	}
}

func TestShaderMixWithoutMask(t *testing.T) {
	f := newMixFixture(t, false)
	reg := newRegistry(t, &stubScene{name: "a"}, &stubScene{name: "b"})

	if err := f.c.Draw(f.screen, reg, transition.State{From: 0, To: 1, Active: true, Progress: 0.6}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if u := f.mixer.calls[0].u; u.UseMask || u.Mask != nil {
		t.Fatalf("expected linear mix, got %+v", u)
	}
}

func TestShaderMixCyclesMaskOncePerWipe(t *testing.T) {
	f := newMixFixture(t, true)
	reg := newRegistry(t, &stubScene{name: "a"}, &stubScene{name: "b"})

	wipe := func(from, to int) {
		for i := 0; i <= 20; i++ {
			snap := transition.State{From: from, To: to, Active: true, Progress: float64(i) / 20}
			if err := f.c.Draw(f.screen, reg, snap); err != nil {
				t.Fatalf("Draw: %v", err)
			}
		}
		// completion frame: idle again
		if err := f.c.Draw(f.screen, reg, transition.State{From: to, To: to}); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}

	wipe(0, 1)
	if f.state.Mask != 1 {
		t.Fatalf("after first wipe mask = %d, want 1", f.state.Mask)
	}
	wipe(1, 0)
	if f.state.Mask != 2 {
		t.Fatalf("after second wipe mask = %d, want 2", f.state.Mask)
	}

	last := f.mixer.calls[len(f.mixer.calls)-1]
	if last.u.Mask != f.masks.imgs[2] {
		t.Fatalf("expected mask 2 bound late in the second wipe")
	}
}

func TestShaderMixMaskFollowsCommitsOnly(t *testing.T) {
	f := newMixFixture(t, true)
	reg := newRegistry(t, &stubScene{name: "a"}, &stubScene{name: "b"})
	draw := func(snap transition.State) {
		t.Helper()
		if err := f.c.Draw(f.screen, reg, snap); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}
	scrub := func(p float64) transition.State {
		return transition.State{From: 0, To: 1, Active: true, Scrubbed: true, Progress: p}
	}

	// released scrub: back to scene 0
	draw(scrub(0.3))
	draw(scrub(0.6))
	draw(transition.State{From: 0, To: 0})
	if f.state.Mask != 0 {
		t.Fatalf("released scrub moved the mask to %d", f.state.Mask)
	}

	// a commit that never draws a frame in the top band still counts
	draw(scrub(0.5))
	draw(transition.State{From: 1, To: 1})
	if f.state.Mask != 1 {
		t.Fatalf("committed wipe left mask at %d, want 1", f.state.Mask)
	}
}

func TestShaderMixTargetsFollowResize(t *testing.T) {
	f := newMixFixture(t, true)
	reg := newRegistry(t, &stubScene{name: "a"}, &stubScene{name: "b"})
	mid := transition.State{From: 0, To: 1, Active: true, Progress: 0.5}

	for i := 0; i < 3; i++ {
		if err := f.c.Draw(f.screen, reg, mid); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}
	if f.r.allocs != 2 {
		t.Fatalf("expected targets allocated once per entry, got %d", f.r.allocs)
	}

	f.c.Resize(800, 450)
	if len(f.masks.resized) != 1 || f.masks.resized[0] != "800x450" {
		t.Fatalf("masks not resized: %v", f.masks.resized)
	}
	if err := f.c.Draw(f.screen, reg, mid); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if f.r.allocs != 4 || f.r.released != 2 {
		t.Fatalf("expected targets reallocated after resize, allocs=%d released=%d", f.r.allocs, f.r.released)
	}
}

func TestNewShaderMixNeedsMasks(t *testing.T) {
	r := newRecordingRenderer(nil)
	state, err := transition.NewMixState(0.1, 3, true, true, 0)
	if err != nil {
		t.Fatalf("NewMixState: %v", err)
	}
	if _, err := NewShaderMix(r, &recordingMixer{r: r}, newFakeMasks(1), state); err == nil {
		t.Fatalf("expected error when fewer masks are loaded than requested")
	}
}
