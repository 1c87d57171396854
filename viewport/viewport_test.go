package viewport

import (
	"errors"
	"testing"

	"github.com/milk9111/seamless/scene"
)

type flatCamera struct {
	aspect float64
}

func (c *flatCamera) SetAspect(a float64) { c.aspect = a }
func (c *flatCamera) Aspect() float64     { return c.aspect }

type fakeController struct {
	cam        scene.Camera
	updates    int
	disposed   int
	disposeErr error
}

func (f *fakeController) Update() { f.updates++ }

func (f *fakeController) Dispose() error {
	f.disposed++
	return f.disposeErr
}

func recordingFactory(made *[]*fakeController) Factory {
	return func(cam scene.Camera, cfg Config) (Controller, error) {
		c := &fakeController{cam: cam}
		*made = append(*made, c)
		return c, nil
	}
}

func TestBindingDisposesPreviousController(t *testing.T) {
	var made []*fakeController
	b := NewBinding(recordingFactory(&made), DefaultConfig())

	first, second := &flatCamera{}, &flatCamera{}
	if err := b.Bind(first); err != nil {
		t.Fatalf("Bind(first): %v", err)
	}
	if err := b.Bind(second); err != nil {
		t.Fatalf("Bind(second): %v", err)
	}

	if len(made) != 2 {
		t.Fatalf("expected 2 controllers, got %d", len(made))
	}
	if made[0].disposed != 1 {
		t.Fatalf("first controller disposed %d times, want 1", made[0].disposed)
	}
	if made[1].disposed != 0 {
		t.Fatalf("active controller should not be disposed")
	}
	if b.Camera() != second || made[1].cam != second {
		t.Fatalf("binding not attached to the new camera")
	}

	b.Tick()
	b.Tick()
	if made[1].updates != 2 || made[0].updates != 0 {
		t.Fatalf("updates went to the wrong controller: old=%d new=%d", made[0].updates, made[1].updates)
	}
}

func TestBindingPanicsOnFailedDispose(t *testing.T) {
	var made []*fakeController
	b := NewBinding(recordingFactory(&made), DefaultConfig())
	if err := b.Bind(&flatCamera{}); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	made[0].disposeErr = ErrDisposed

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on dispose failure")
		}
	}()
	_ = b.Bind(&flatCamera{})
}

func TestBindingFactoryError(t *testing.T) {
	boom := errors.New("boom")
	b := NewBinding(func(scene.Camera, Config) (Controller, error) {
		return nil, boom
	}, DefaultConfig())

	if err := b.Bind(&flatCamera{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped factory error, got %v", err)
	}
	// no controller: tick is a no-op
	b.Tick()
}

func TestNilFactoryOnlyTracksCamera(t *testing.T) {
	b := NewBinding(nil, DefaultConfig())
	cam := &flatCamera{}
	if err := b.Bind(cam); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if b.Camera() != cam || b.Controller() != nil {
		t.Fatalf("unexpected binding state")
	}
	b.Tick()
}
