package transition

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/seamless/common"
	"github.com/milk9111/seamless/scene"
)

var (
	ErrInsufficientScenes = errors.New("transition: need at least two scenes")
	ErrInvalidDuration    = errors.New("transition: duration must be positive")
)

// Counter reports how many scenes can be transitioned between.
type Counter interface {
	Count() int
}

// State is a snapshot of the transition. When Active is false, Progress is 0
// and From == To == the current scene.
type State struct {
	From     int
	To       int
	Progress float64
	Active   bool
	Started  time.Duration
	Duration time.Duration
	// Scrubbed is set when progress is driven from outside instead of by time.
	Scrubbed bool
}

// Machine drives a blend between two registered scenes. It only ever touches
// numbers; drawing is the compositor's job.
type Machine struct {
	counter  Counter
	duration time.Duration

	current       int
	state         State
	lastCompleted time.Duration

	// OnStart runs when a transition begins, before the first tick.
	OnStart func(from, to int)
	// OnComplete runs once per transition with the final state
	// (Progress == 1) after the current index has been committed.
	OnComplete func(final State)
	// OnRevert runs when a scrubbed transition is released back to its start.
	OnRevert func(current int)
}

func NewMachine(counter Counter, duration time.Duration) (*Machine, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	return &Machine{counter: counter, duration: duration}, nil
}

func (m *Machine) count() int {
	if m.counter == nil {
		return 0
	}
	return m.counter.Count()
}

// Current is the index of the scene shown when idle.
func (m *Machine) Current() int {
	return m.current
}

func (m *Machine) Active() bool {
	return m.state.Active
}

func (m *Machine) Duration() time.Duration {
	return m.duration
}

// SetDuration changes the duration used by the next transition. A running
// transition keeps the duration it started with.
func (m *Machine) SetDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}
	m.duration = d
	return nil
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	if !m.state.Active {
		return State{From: m.current, To: m.current, Duration: m.duration}
	}
	return m.state
}

// Start begins a transition to the next scene, wrapping at the end. It is a
// no-op while a transition is running.
func (m *Machine) Start(now time.Duration) (bool, error) {
	if m.state.Active {
		return false, nil
	}
	n := m.count()
	if n < 2 {
		return false, fmt.Errorf("%w: have %d", ErrInsufficientScenes, n)
	}
	m.begin(now, (m.current+1)%n)
	return true, nil
}

// StartTo begins a transition to an explicit scene. Starting toward the
// current scene is a no-op.
func (m *Machine) StartTo(now time.Duration, to int) (bool, error) {
	if m.state.Active {
		return false, nil
	}
	n := m.count()
	if n < 2 {
		return false, fmt.Errorf("%w: have %d", ErrInsufficientScenes, n)
	}
	if to < 0 || to >= n {
		return false, fmt.Errorf("transition: start: %w: %d (count %d)", scene.ErrOutOfRange, to, n)
	}
	if to == m.current {
		return false, nil
	}
	m.begin(now, to)
	return true, nil
}

func (m *Machine) begin(now time.Duration, to int) {
	m.state = State{
		From:     m.current,
		To:       to,
		Active:   true,
		Started:  now,
		Duration: m.duration,
	}
	if m.OnStart != nil {
		m.OnStart(m.state.From, m.state.To)
	}
}

// Tick advances a timed transition to now. It reports true on the single
// tick that completes the transition.
func (m *Machine) Tick(now time.Duration) bool {
	if !m.state.Active || m.state.Scrubbed {
		return false
	}
	elapsed := now - m.state.Started
	if elapsed < 0 {
		elapsed = 0
	}
	r := float64(elapsed) / float64(m.state.Duration)
	if r > 1 {
		r = 1
	}
	m.state.Progress = EaseInOutCubic(r)
	if elapsed >= m.state.Duration {
		m.finish(now)
		return true
	}
	return false
}

func (m *Machine) finish(now time.Duration) {
	final := m.state
	final.Progress = 1
	m.current = final.To
	m.state = State{}
	m.lastCompleted = now
	if m.OnComplete != nil {
		m.OnComplete(final)
	}
}

// Due reports whether an automatic transition should start: the machine is
// idle and at least interval has passed since the last one finished.
func (m *Machine) Due(now, interval time.Duration) bool {
	return !m.state.Active && now-m.lastCompleted >= interval
}

// Drive sets the progress of a scrubbed transition toward to. Reaching the
// end commits like a completed tick; returning to the start settles back on
// the current scene. Drive is ignored while a timed transition runs.
func (m *Machine) Drive(now time.Duration, to int, ratio float64) error {
	if m.state.Active && !m.state.Scrubbed {
		return nil
	}
	n := m.count()
	if n < 2 {
		return fmt.Errorf("%w: have %d", ErrInsufficientScenes, n)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("transition: drive: %w: %d (count %d)", scene.ErrOutOfRange, to, n)
	}
	ratio = common.Clamp01(ratio)

	if !m.state.Active {
		if to == m.current || AtStart(ratio) {
			return nil
		}
		m.begin(now, to)
		m.state.Scrubbed = true
	} else if to != m.state.To {
		return nil
	}

	m.state.Progress = ratio
	switch {
	case AtEnd(ratio):
		m.finish(now)
	case AtStart(ratio):
		m.state = State{}
		if m.OnRevert != nil {
			m.OnRevert(m.current)
		}
	}
	return nil
}
