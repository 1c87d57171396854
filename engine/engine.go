package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/compositor"
	"github.com/milk9111/seamless/input"
	"github.com/milk9111/seamless/scene"
	"github.com/milk9111/seamless/transition"
	"github.com/milk9111/seamless/viewport"
)

var ErrInvalidTiming = errors.New("engine: invalid timing")

const eventLimit = 64

// Timing controls automatic advancing and transition length.
type Timing struct {
	Duration    time.Duration
	Interval    time.Duration
	AutoAdvance bool
}

func (t Timing) validate() error {
	if t.Duration <= 0 {
		return fmt.Errorf("%w: duration %v must be positive", ErrInvalidTiming, t.Duration)
	}
	if t.Interval < 0 {
		return fmt.Errorf("%w: interval %v must not be negative", ErrInvalidTiming, t.Interval)
	}
	return nil
}

type Option func(e *Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBinding sets the viewport binding that follows the active scene.
func WithBinding(b *viewport.Binding) Option {
	return func(e *Engine) { e.binding = b }
}

func WithHub(h *input.Hub) Option {
	return func(e *Engine) { e.hub = h }
}

// WithSystems replaces the per-frame pipeline.
func WithSystems(systems ...System) Option {
	return func(e *Engine) { e.sched = NewScheduler(systems...) }
}

// Engine owns the scenes, the transition machine and the frame pipeline.
// It is driven from a single goroutine.
type Engine struct {
	logger  *slog.Logger
	reg     *scene.Registry
	machine *transition.Machine
	binding *viewport.Binding
	comp    compositor.Compositor
	hub     *input.Hub
	sched   *Scheduler
	events  EventQueue

	timing Timing
	now    time.Duration
	dt     time.Duration
	frame  uint64
	w, h   int

	lastDrawErr string
}

func New(comp compositor.Compositor, timing Timing, opts ...Option) (*Engine, error) {
	if comp == nil {
		return nil, errors.New("engine: nil compositor")
	}
	if err := timing.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		logger: slog.Default(),
		reg:    scene.NewRegistry(),
		comp:   comp,
		sched:  NewScheduler(),
		timing: timing,
		events: EventQueue{limit: eventLimit},
	}
	for _, opt := range opts {
		opt(e)
	}

	m, err := transition.NewMachine(e.reg, timing.Duration)
	if err != nil {
		return nil, err
	}
	m.OnStart = e.onStart
	m.OnComplete = e.onComplete
	m.OnRevert = e.onRevert
	e.machine = m

	e.reg.OnFirst(func(first *scene.Entry) {
		e.bind(first)
	})
	return e, nil
}

func (e *Engine) bind(entry *scene.Entry) {
	if e.binding == nil || entry == nil {
		return
	}
	if err := e.binding.Bind(entry.Camera); err != nil {
		e.logger.Error("viewport bind failed", "scene", entry.Name, "err", err)
		e.events.Push(Event{Kind: EventError, At: e.now, Err: err})
	}
}

func (e *Engine) onStart(from, to int) {
	entry := e.reg.MustGet(to)
	e.bind(entry)
	e.logger.Debug("transition started", "from", from, "to", to, "scene", entry.Name, "at", e.now)
	e.events.Push(Event{Kind: EventTransitionStarted, From: from, To: to, At: e.now})
}

func (e *Engine) onComplete(final transition.State) {
	e.logger.Debug("transition completed", "from", final.From, "to", final.To, "at", e.now)
	e.events.Push(Event{Kind: EventTransitionCompleted, From: final.From, To: final.To, At: e.now})
}

func (e *Engine) onRevert(current int) {
	e.bind(e.reg.MustGet(current))
	e.events.Push(Event{Kind: EventTransitionReverted, From: current, To: current, At: e.now})
}

// Register adds a scene. The first scene registered becomes current and gets
// the viewport controller.
func (e *Engine) Register(entry scene.Entry) (int, error) {
	i, err := e.reg.Register(entry)
	if err != nil {
		return -1, err
	}
	if e.w > 0 && e.h > 0 {
		e.reg.MustGet(i).Camera.SetAspect(float64(e.w) / float64(e.h))
	}
	return i, nil
}

// Add builds an entry from sup and registers it.
func (e *Engine) Add(sup scene.Supplier) (int, error) {
	entry, err := sup()
	if err != nil {
		return -1, fmt.Errorf("engine: supply scene: %w", err)
	}
	return e.Register(entry)
}

// Update advances the clock by dt and runs every system once.
func (e *Engine) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.dt = dt
	e.now += dt
	e.frame++
	e.sched.Update(e)
}

// Draw composites the current frame into dst.
func (e *Engine) Draw(dst *ebiten.Image) {
	if e.reg.Count() == 0 {
		return
	}
	err := e.comp.Draw(dst, e.reg, e.machine.Snapshot())
	if err == nil {
		e.lastDrawErr = ""
		return
	}
	// log each distinct failure once instead of every frame
	if msg := err.Error(); msg != e.lastDrawErr {
		e.lastDrawErr = msg
		e.logger.Error("draw failed", "err", err)
		e.events.Push(Event{Kind: EventError, At: e.now, Err: err})
	}
}

// Resize updates every camera aspect, the viewport controller and the render
// targets.
func (e *Engine) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == e.w && h == e.h) {
		return
	}
	e.w, e.h = w, h
	e.reg.SetAspect(float64(w) / float64(h))
	e.binding.Resize(w, h)
	e.comp.Resize(w, h)
}

// ApplyTiming swaps in new timing. A running transition keeps its duration.
func (e *Engine) ApplyTiming(t Timing) error {
	if err := t.validate(); err != nil {
		return err
	}
	if err := e.machine.SetDuration(t.Duration); err != nil {
		return err
	}
	e.timing = t
	e.logger.Info("timing applied", "duration", t.Duration, "interval", t.Interval, "auto", t.AutoAdvance)
	return nil
}

// report logs a failed start. Too few scenes is only a warning.
func (e *Engine) report(op string, err error) {
	if errors.Is(err, transition.ErrInsufficientScenes) {
		e.logger.Warn("transition skipped", "op", op, "err", err)
		e.events.Push(Event{Kind: EventInsufficientScenes, At: e.now, Err: err})
		return
	}
	e.logger.Error("transition failed", "op", op, "err", err)
	e.events.Push(Event{Kind: EventError, At: e.now, Err: err})
}

// Advance starts a transition to the next scene, wrapping after the last.
func (e *Engine) Advance() bool {
	ok, err := e.machine.Start(e.now)
	if err != nil {
		e.report("advance", err)
	}
	return ok
}

// Next moves one scene forward. It does nothing on the last scene.
func (e *Engine) Next() bool {
	return e.step(1)
}

// Prev moves one scene back. It does nothing on the first scene.
func (e *Engine) Prev() bool {
	return e.step(-1)
}

func (e *Engine) step(d int) bool {
	if e.machine.Active() {
		return false
	}
	if e.reg.Count() < 2 {
		e.report("step", fmt.Errorf("%w: have %d", transition.ErrInsufficientScenes, e.reg.Count()))
		return false
	}
	to := e.machine.Current() + d
	if to < 0 || to >= e.reg.Count() {
		return false
	}
	ok, err := e.machine.StartTo(e.now, to)
	if err != nil {
		e.report("step", err)
	}
	return ok
}

// Jump starts a transition to scene i.
func (e *Engine) Jump(i int) (bool, error) {
	ok, err := e.machine.StartTo(e.now, i)
	if err != nil {
		if errors.Is(err, scene.ErrOutOfRange) {
			return false, err
		}
		e.report("jump", err)
	}
	return ok, nil
}

// Scrub drives a transition by an external ratio. A positive ratio scrubs
// toward the next scene, wrapping after the last; a negative one toward the
// previous scene, stopping at the first. Reversing direction mid-scrub
// releases the running scrub before starting the other way.
func (e *Engine) Scrub(ratio float64) error {
	n := e.reg.Count()
	if n < 2 {
		return nil
	}
	cur := e.machine.Current()
	to := (cur + 1) % n
	if ratio < 0 {
		to = cur - 1
	}
	if s := e.machine.Snapshot(); s.Active && s.Scrubbed && s.To != to {
		if err := e.machine.Drive(e.now, s.To, 0); err != nil {
			return err
		}
	}
	if to < 0 {
		return nil
	}
	return e.machine.Drive(e.now, to, math.Abs(ratio))
}

// Held lists entries the compositor pauses this frame.
func (e *Engine) Held() []int {
	return e.comp.Held(e.machine.Snapshot())
}

func (e *Engine) Now() time.Duration           { return e.now }
func (e *Engine) Delta() time.Duration         { return e.dt }
func (e *Engine) Frame() uint64                { return e.frame }
func (e *Engine) Timing() Timing               { return e.timing }
func (e *Engine) Registry() *scene.Registry    { return e.reg }
func (e *Engine) Machine() *transition.Machine { return e.machine }
func (e *Engine) Binding() *viewport.Binding   { return e.binding }
func (e *Engine) Hub() *input.Hub              { return e.hub }
func (e *Engine) Logger() *slog.Logger         { return e.logger }

func (e *Engine) Compositor() compositor.Compositor {
	return e.comp
}

// Snapshot is the machine state the next Draw will use.
func (e *Engine) Snapshot() transition.State {
	return e.machine.Snapshot()
}

// Events drains pending status events.
func (e *Engine) Events() []Event {
	return e.events.Drain()
}

// Size is the last size passed to Resize.
func (e *Engine) Size() (int, int) {
	return e.w, e.h
}
