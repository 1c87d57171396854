package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/scene"
	"github.com/milk9111/seamless/transition"
	"github.com/milk9111/seamless/viewport"
)

type stubScene struct{}

func (stubScene) Draw(*ebiten.Image, scene.Camera) {}

type stubCamera struct {
	name   string
	aspect float64
}

func (c *stubCamera) SetAspect(a float64) { c.aspect = a }
func (c *stubCamera) Aspect() float64     { return c.aspect }

type fakeCompositor struct {
	draws   []transition.State
	held    []int
	resizes [][2]int
	err     error
}

func (f *fakeCompositor) Draw(_ *ebiten.Image, _ *scene.Registry, snap transition.State) error {
	f.draws = append(f.draws, snap)
	return f.err
}

func (f *fakeCompositor) Held(transition.State) []int { return f.held }

func (f *fakeCompositor) Resize(w, h int) { f.resizes = append(f.resizes, [2]int{w, h}) }

type countingController struct {
	cam     scene.Camera
	updates int
}

func (c *countingController) Update()        { c.updates++ }
func (c *countingController) Dispose() error { return nil }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, n int, opts ...Option) (*Engine, *fakeCompositor, []*stubCamera) {
	t.Helper()
	comp := &fakeCompositor{}
	opts = append([]Option{WithLogger(quiet())}, opts...)
	e, err := New(comp, Timing{Duration: 500 * time.Millisecond, Interval: time.Second}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var cams []*stubCamera
	for i := 0; i < n; i++ {
		cam := &stubCamera{name: fmt.Sprint(i)}
		cams = append(cams, cam)
		if _, err := e.Register(scene.Entry{Name: cam.name, Scene: stubScene{}, Camera: cam}); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	return e, comp, cams
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestNewValidatesTiming(t *testing.T) {
	tests := []struct {
		name   string
		timing Timing
		ok     bool
	}{
		{name: "valid", timing: Timing{Duration: time.Second, Interval: time.Second}, ok: true},
		{name: "zero interval", timing: Timing{Duration: time.Second}, ok: true},
		{name: "zero duration", timing: Timing{Interval: time.Second}},
		{name: "negative interval", timing: Timing{Duration: time.Second, Interval: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeCompositor{}, tt.timing)
			if tt.ok && err != nil {
				t.Fatalf("New: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTiming) {
				t.Fatalf("expected ErrInvalidTiming, got %v", err)
			}
		})
	}
	if _, err := New(nil, Timing{Duration: time.Second}); err == nil {
		t.Fatalf("expected error for nil compositor")
	}
}

func TestInsufficientScenesIsReported(t *testing.T) {
	e, _, _ := newEngine(t, 1)
	if e.Advance() {
		t.Fatalf("advance with one scene should not start")
	}
	if e.Next() {
		t.Fatalf("next with one scene should not start")
	}
	if e.Machine().Active() {
		t.Fatalf("machine should stay idle")
	}
	if !hasEvent(e.Events(), EventInsufficientScenes) {
		t.Fatalf("expected an insufficient scenes event")
	}
}

func TestDirectionalNavigationClamps(t *testing.T) {
	e, _, _ := newEngine(t, 3)

	if e.Prev() {
		t.Fatalf("prev on the first scene should be a no-op")
	}
	if len(e.Events()) != 0 {
		t.Fatalf("clamped navigation should not report anything")
	}
	if !e.Next() {
		t.Fatalf("next should start a transition")
	}
	if e.Next() {
		t.Fatalf("next while running should be a no-op")
	}
	if s := e.Snapshot(); s.From != 0 || s.To != 1 {
		t.Fatalf("unexpected transition %+v", s)
	}
}

func TestJumpOutOfRange(t *testing.T) {
	e, _, _ := newEngine(t, 2)
	if _, err := e.Jump(5); !errors.Is(err, scene.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	ok, err := e.Jump(1)
	if err != nil || !ok {
		t.Fatalf("Jump(1) = %v, %v", ok, err)
	}
}

func TestBindingFollowsTransitions(t *testing.T) {
	var made []*countingController
	b := viewport.NewBinding(func(cam scene.Camera, _ viewport.Config) (viewport.Controller, error) {
		c := &countingController{cam: cam}
		made = append(made, c)
		return c, nil
	}, viewport.DefaultConfig())

	e, _, cams := newEngine(t, 3, WithBinding(b))
	if len(made) != 1 || made[0].cam != cams[0] {
		t.Fatalf("first registration should bind scene 0")
	}

	if _, err := e.Jump(2); err != nil {
		t.Fatalf("Jump: %v", err)
	}
	if len(made) != 2 || made[1].cam != cams[2] {
		t.Fatalf("transition start should rebind to the target camera")
	}
	if e.Binding().Camera() != cams[2] {
		t.Fatalf("binding camera not updated")
	}
}

func TestScrubRevertRebindsCurrent(t *testing.T) {
	var bound []scene.Camera
	b := viewport.NewBinding(func(cam scene.Camera, _ viewport.Config) (viewport.Controller, error) {
		bound = append(bound, cam)
		return &countingController{cam: cam}, nil
	}, viewport.DefaultConfig())
	e, _, cams := newEngine(t, 2, WithBinding(b))

	if err := e.Scrub(0.5); err != nil {
		t.Fatalf("Scrub: %v", err)
	}
	if err := e.Scrub(0); err != nil {
		t.Fatalf("Scrub: %v", err)
	}
	if e.Machine().Active() || e.Machine().Current() != 0 {
		t.Fatalf("expected revert to scene 0")
	}
	if last := bound[len(bound)-1]; last != cams[0] {
		t.Fatalf("expected rebind to scene 0 after revert")
	}
	if !hasEvent(e.Events(), EventTransitionReverted) {
		t.Fatalf("expected revert event")
	}
}

func TestScrubDirection(t *testing.T) {
	e, _, _ := newEngine(t, 3)

	if err := e.Scrub(-0.5); err != nil {
		t.Fatalf("Scrub: %v", err)
	}
	if e.Machine().Active() {
		t.Fatalf("scrubbing back from the first scene should do nothing")
	}

	if err := e.Scrub(1); err != nil {
		t.Fatalf("Scrub: %v", err)
	}
	if e.Machine().Current() != 1 {
		t.Fatalf("expected commit to scene 1, current %d", e.Machine().Current())
	}

	if err := e.Scrub(-0.4); err != nil {
		t.Fatalf("Scrub: %v", err)
	}
	s := e.Snapshot()
	if !s.Active || !s.Scrubbed || s.From != 1 || s.To != 0 || s.Progress != 0.4 {
		t.Fatalf("expected scrub 1->0 at 0.4, got %+v", s)
	}

	// flipping direction releases 1->0 and starts 1->2
	if err := e.Scrub(0.3); err != nil {
		t.Fatalf("Scrub: %v", err)
	}
	s = e.Snapshot()
	if !s.Active || s.From != 1 || s.To != 2 || s.Progress != 0.3 {
		t.Fatalf("expected scrub 1->2 at 0.3, got %+v", s)
	}
	if !hasEvent(e.Events(), EventTransitionReverted) {
		t.Fatalf("expected the reversed scrub to be released")
	}
}

func TestUpdateRunsSystemsInOrder(t *testing.T) {
	var order []string
	rec := func(name string) System {
		return SystemFunc(func(*Engine) { order = append(order, name) })
	}
	e, _, _ := newEngine(t, 2, WithSystems(rec("input"), rec("animate"), rec("transition"), rec("viewport")))

	e.Update(16 * time.Millisecond)
	e.Update(-time.Millisecond)

	want := "input animate transition viewport input animate transition viewport"
	if got := fmt.Sprint(order); got != "["+want+"]" {
		t.Fatalf("order = %v", got)
	}
	if e.Now() != 16*time.Millisecond || e.Delta() != 0 || e.Frame() != 2 {
		t.Fatalf("clock now=%v dt=%v frame=%d", e.Now(), e.Delta(), e.Frame())
	}
}

func TestResize(t *testing.T) {
	e, comp, cams := newEngine(t, 2)

	e.Resize(800, 400)
	e.Resize(800, 400)
	e.Resize(0, 100)

	if len(comp.resizes) != 1 || comp.resizes[0] != [2]int{800, 400} {
		t.Fatalf("compositor resizes %v", comp.resizes)
	}
	for _, c := range cams {
		if c.aspect != 2 {
			t.Fatalf("camera %s aspect %v, want 2", c.name, c.aspect)
		}
	}

	// scenes registered later pick up the current aspect
	late := &stubCamera{}
	if _, err := e.Register(scene.Entry{Scene: stubScene{}, Camera: late}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if late.aspect != 2 {
		t.Fatalf("late camera aspect %v", late.aspect)
	}
}

func TestResizeReachesViewport(t *testing.T) {
	b := viewport.NewBinding(nil, viewport.DefaultConfig())
	e, _, _ := newEngine(t, 2, WithBinding(b))
	e.Resize(1024, 512)
	if b.Config().Height != 512 {
		t.Fatalf("binding height = %d, want 512", b.Config().Height)
	}
}

func TestDrawReportsEachErrorOnce(t *testing.T) {
	e, comp, _ := newEngine(t, 2)
	comp.err = errors.New("lost target")

	e.Draw(nil)
	e.Draw(nil)
	if n := len(e.Events()); n != 1 {
		t.Fatalf("expected one error event, got %d", n)
	}
	if len(comp.draws) != 2 {
		t.Fatalf("expected both frames drawn, got %d", len(comp.draws))
	}
}

func TestApplyTiming(t *testing.T) {
	e, _, _ := newEngine(t, 2)
	if err := e.ApplyTiming(Timing{Duration: 0}); !errors.Is(err, ErrInvalidTiming) {
		t.Fatalf("expected ErrInvalidTiming, got %v", err)
	}
	if err := e.ApplyTiming(Timing{Duration: 2 * time.Second, Interval: 0, AutoAdvance: true}); err != nil {
		t.Fatalf("ApplyTiming: %v", err)
	}
	if e.Machine().Duration() != 2*time.Second || !e.Timing().AutoAdvance {
		t.Fatalf("timing not applied: %+v", e.Timing())
	}
}

func TestAddWrapsSupplierErrors(t *testing.T) {
	e, _, _ := newEngine(t, 0)
	boom := errors.New("boom")
	if _, err := e.Add(func() (scene.Entry, error) { return scene.Entry{}, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected supplier error, got %v", err)
	}
	i, err := e.Add(func() (scene.Entry, error) {
		return scene.Entry{Scene: stubScene{}, Camera: &stubCamera{}}, nil
	})
	if err != nil || i != 0 {
		t.Fatalf("Add = %d, %v", i, err)
	}
}

func TestEventQueueLimit(t *testing.T) {
	q := EventQueue{limit: 2}
	q.Push(Event{From: 1})
	q.Push(Event{From: 2})
	q.Push(Event{From: 3})
	got := q.Drain()
	if len(got) != 2 || got[0].From != 2 || got[1].From != 3 {
		t.Fatalf("unexpected queue contents %+v", got)
	}
	if q.Len() != 0 {
		t.Fatalf("drain did not clear the queue")
	}
}
