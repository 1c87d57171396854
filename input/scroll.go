package input

import "github.com/milk9111/seamless/common"

// PixelsPerNotch converts wheel notches into the pixel-like deltas that the
// step threshold and scrub sensitivity are tuned for.
const PixelsPerNotch = 100

// Stepper turns accumulated wheel delta into discrete -1/+1 steps.
type Stepper struct {
	Threshold float64
	acc       float64
}

// Add accumulates dy and returns the step direction once the threshold is
// crossed, or 0.
func (s *Stepper) Add(dy float64) int {
	if dy == 0 {
		return 0
	}
	// a direction change drops what was accumulated the other way
	if (dy > 0) != (s.acc > 0) && s.acc != 0 {
		s.acc = 0
	}
	s.acc += dy
	th := s.Threshold
	if th <= 0 {
		th = 1
	}
	switch {
	case s.acc >= th:
		s.acc = 0
		return 1
	case s.acc <= -th:
		s.acc = 0
		return -1
	}
	return 0
}

// Scrubber accumulates scroll delta into a signed ratio clamped to [-1,1] and
// eases a displayed value toward it every frame. The sign is the direction:
// positive scrubs toward the next scene, negative toward the previous one.
type Scrubber struct {
	Sensitivity float64
	Smoothing   float64

	target float64
	value  float64
}

func (s *Scrubber) Add(dy float64) {
	s.target = common.Clamp(s.target+dy*s.Sensitivity, -1, 1)
}

// Update moves the value toward the target and returns it.
func (s *Scrubber) Update() float64 {
	k := s.Smoothing
	if k <= 0 || k > 1 {
		k = 1
	}
	s.value += (s.target - s.value) * k
	if diff := s.target - s.value; diff < 1e-4 && diff > -1e-4 {
		s.value = s.target
	}
	return s.value
}

func (s *Scrubber) Value() float64  { return s.value }
func (s *Scrubber) Target() float64 { return s.target }

// Reset snaps both target and value to 0.
func (s *Scrubber) Reset() {
	s.target = 0
	s.value = 0
}
