package system

import "github.com/milk9111/seamless/engine"

// Pipeline returns the frame systems in their required order: input and the
// automatic start, scene animation, transition tick, viewport. Drawing follows
// in Engine.Draw.
func Pipeline(in InputOptions) []engine.System {
	return []engine.System{
		NewInputSystem(in),
		NewAutoAdvanceSystem(),
		NewAnimateSystem(),
		NewTransitionSystem(),
		NewViewportSystem(),
	}
}
