package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/engine"
	"github.com/milk9111/seamless/input"
	"github.com/milk9111/seamless/transition"
)

type WheelMode int

const (
	WheelOff WheelMode = iota
	WheelStep
	WheelScrub
)

type InputOptions struct {
	Keyboard          bool
	Wheel             WheelMode
	WheelThreshold    float64
	ScrollSensitivity float64
	ScrollSmoothing   float64
}

// InputSystem polls the hub and turns key and wheel events into navigation.
type InputSystem struct {
	opts     InputOptions
	stepper  input.Stepper
	scrubber input.Scrubber

	hub     *input.Hub
	sub     input.Subscription
	pending []input.Event
}

func NewInputSystem(opts InputOptions) *InputSystem {
	return &InputSystem{
		opts:     opts,
		stepper:  input.Stepper{Threshold: opts.WheelThreshold},
		scrubber: input.Scrubber{Sensitivity: opts.ScrollSensitivity, Smoothing: opts.ScrollSmoothing},
	}
}

func (s *InputSystem) attach(hub *input.Hub) {
	if s.hub == hub {
		return
	}
	if s.hub != nil {
		_ = s.hub.Unsubscribe(s.sub)
	}
	s.hub = hub
	s.sub = hub.Subscribe(func(ev input.Event) {
		s.pending = append(s.pending, ev)
	})
}

func (s *InputSystem) Update(e *engine.Engine) {
	hub := e.Hub()
	if hub == nil {
		return
	}
	s.attach(hub)
	hub.Poll()

	events := s.pending
	s.pending = s.pending[:0]
	for _, ev := range events {
		switch ev := ev.(type) {
		case input.KeyEvent:
			if s.opts.Keyboard {
				s.key(e, ev.Key)
			}
		case input.WheelEvent:
			s.wheel(e, ev.DY*input.PixelsPerNotch)
		}
	}

	if s.opts.Wheel == WheelScrub {
		s.scrub(e)
	}
}

func (s *InputSystem) key(e *engine.Engine, k ebiten.Key) {
	switch {
	case k == ebiten.KeySpace:
		e.Advance()
	case k == ebiten.KeyArrowRight:
		e.Next()
	case k == ebiten.KeyArrowLeft:
		e.Prev()
	case k >= ebiten.KeyDigit1 && k <= ebiten.KeyDigit9:
		i := int(k - ebiten.KeyDigit1)
		if i < e.Registry().Count() {
			_, _ = e.Jump(i)
		}
	}
}

func (s *InputSystem) wheel(e *engine.Engine, dy float64) {
	switch s.opts.Wheel {
	case WheelStep:
		switch s.stepper.Add(dy) {
		case 1:
			e.Next()
		case -1:
			e.Prev()
		}
	case WheelScrub:
		s.scrubber.Add(dy)
	}
}

func (s *InputSystem) scrub(e *engine.Engine) {
	snap := e.Snapshot()
	if snap.Active && !snap.Scrubbed {
		// a timed transition owns the screen; drop scroll until it ends
		s.scrubber.Reset()
		return
	}
	v := s.scrubber.Update()
	cur := e.Machine().Current()
	if !snap.Active {
		if transition.AtStart(math.Abs(v)) {
			return
		}
		if v < 0 && cur == 0 {
			// nothing before the first scene
			s.scrubber.Reset()
			return
		}
	}
	if err := e.Scrub(v); err != nil {
		e.Logger().Error("scrub failed", "err", err)
		return
	}
	m := e.Machine()
	if !m.Active() && (m.Current() != cur || transition.AtStart(math.Abs(s.scrubber.Target()))) {
		s.scrubber.Reset()
	}
}

// Scrubber exposes the scroll state for overlays.
func (s *InputSystem) Scrubber() *input.Scrubber {
	return &s.scrubber
}
