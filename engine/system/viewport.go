package system

import "github.com/milk9111/seamless/engine"

// ViewportSystem steps the bound camera controller once per frame.
type ViewportSystem struct{}

func NewViewportSystem() *ViewportSystem { return &ViewportSystem{} }

func (s *ViewportSystem) Update(e *engine.Engine) {
	e.Binding().Tick()
}
