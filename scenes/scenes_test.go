package scenes

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/config"
	"github.com/milk9111/seamless/script"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildEmbeddedScenes(t *testing.T) {
	cfg, err := config.LoadConfig(config.DefaultFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	for _, spec := range cfg.Scenes {
		t.Run(spec.Name, func(t *testing.T) {
			b, err := Build(spec, 16.0/9.0, quietLogger())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if b.Entry.Name != spec.Name || b.Entry.Scene == nil || b.Entry.Camera == nil || b.Entry.Animate == nil {
				t.Fatalf("incomplete entry %+v", b.Entry)
			}
			if (spec.Script != "") != (b.Script != nil) {
				t.Fatalf("script mismatch: spec %q runtime %v", spec.Script, b.Script)
			}

			before := b.Scene.Rotation()
			for i := 0; i < 10; i++ {
				b.Entry.Animate(16 * time.Millisecond)
			}
			if b.Failed() {
				t.Fatalf("script failed during animation")
			}
			if spec.Kind != "physics" && b.Scene.Rotation() == before {
				t.Fatalf("scene did not animate")
			}
		})
	}
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(config.SceneSpec{Name: "x", Kind: "teapot"}, 1, nil)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSupplier(t *testing.T) {
	sup := Supplier(config.SceneSpec{Name: "c", Kind: "cubes", Count: 3}, 1, nil)
	e, err := sup()
	if err != nil {
		t.Fatalf("supplier: %v", err)
	}
	if e.Scene.(*Cubes).Len() != 3 {
		t.Fatalf("expected 3 cubes")
	}
	if e.Camera.Aspect() != 1 {
		t.Fatalf("camera aspect not applied")
	}
}

func TestFailingScriptFallsBack(t *testing.T) {
	g := NewGeometric(nil)
	rt, err := script.Compile("boom", []byte(`
update := func(scene, state, dt) {
	x := 0
	scene.rotate(1 / x, 0, 0)
}
`), g)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b := &Built{Scene: g, Script: rt, logger: quietLogger()}

	b.animate(100 * time.Millisecond)
	if !b.Failed() {
		t.Fatalf("expected script to be disabled")
	}
	if g.Rotation() == (f64.Vec3{}) {
		t.Fatalf("expected native animation fallback")
	}

	if err := b.ReloadScript([]byte(`update := func(scene, state, dt) { scene.set_rotation(0, 0, 1) }`)); err != nil {
		t.Fatalf("ReloadScript: %v", err)
	}
	b.animate(time.Millisecond)
	if b.Failed() || g.Rotation() != (f64.Vec3{0, 0, 1}) {
		t.Fatalf("reloaded script not running: failed=%v rot=%v", b.Failed(), g.Rotation())
	}
}

func TestBlendOpacityClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -1, want: 0},
		{in: 0.4, want: 0.4},
		{in: 2, want: 1},
	}
	e := NewEarth(nil, 0, 1)
	for _, tt := range tests {
		e.SetBlendOpacity(tt.in)
		if e.Opacity() != tt.want {
			t.Fatalf("SetBlendOpacity(%v) -> %v, want %v", tt.in, e.Opacity(), tt.want)
		}
	}
}

func TestKinds(t *testing.T) {
	got := Kinds()
	want := []string{"cubes", "earth", "geometric", "physics"}
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Kinds() = %v, want %v", got, want)
		}
	}
}
