package system

import "github.com/milk9111/seamless/engine"

// AnimateSystem advances every scene's own animation, except scenes the
// compositor holds still for this frame.
type AnimateSystem struct{}

func NewAnimateSystem() *AnimateSystem { return &AnimateSystem{} }

func (s *AnimateSystem) Update(e *engine.Engine) {
	e.Registry().AnimateAll(e.Delta(), e.Held()...)
}
