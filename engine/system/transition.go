package system

import "github.com/milk9111/seamless/engine"

// AutoAdvanceSystem starts the next transition once the interval has passed.
// It runs ahead of AnimateSystem so that the scene being wiped in is already
// held on the frame the transition starts.
type AutoAdvanceSystem struct{}

func NewAutoAdvanceSystem() *AutoAdvanceSystem { return &AutoAdvanceSystem{} }

func (s *AutoAdvanceSystem) Update(e *engine.Engine) {
	t := e.Timing()
	if t.AutoAdvance && e.Registry().Count() >= 2 && e.Machine().Due(e.Now(), t.Interval) {
		e.Advance()
	}
}

// TransitionSystem ticks the running transition.
type TransitionSystem struct{}

func NewTransitionSystem() *TransitionSystem { return &TransitionSystem{} }

func (s *TransitionSystem) Update(e *engine.Engine) {
	e.Machine().Tick(e.Now())
}
