package transition

import (
	"errors"
	"fmt"

	"github.com/milk9111/seamless/common"
)

var ErrInvalidThreshold = errors.New("transition: mix threshold must be in (0, 0.5]")

// MixState holds the uniforms of the shader wipe. It is updated once per
// frame from the machine's progress.
type MixState struct {
	MixRatio  float64
	Threshold float64
	// Mask is the index of the active mask texture.
	Mask      int
	MaskCount int
	UseMask   bool
	// Cycle advances Mask by one after every completed wipe.
	Cycle bool

	armed bool
}

func NewMixState(threshold float64, maskCount int, useMask, cycle bool, initial int) (*MixState, error) {
	if threshold <= 0 || threshold > 0.5 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	if maskCount < 0 {
		maskCount = 0
	}
	s := &MixState{
		Threshold: threshold,
		MaskCount: maskCount,
		UseMask:   useMask && maskCount > 0,
		Cycle:     cycle,
	}
	if maskCount > 0 {
		s.Mask = ((initial % maskCount) + maskCount) % maskCount
	}
	return s, nil
}

// Update sets the mix ratio and steps the mask once per completed wipe: the
// state arms while the ratio is inside the band (t, 1-t) and the next frame in
// [1-t, 1] advances the mask. Falling back into [0, t] disarms without a step,
// since the wipe was released rather than finished. It reports whether the
// mask changed.
func (s *MixState) Update(ratio float64) bool {
	s.MixRatio = common.Clamp01(ratio)
	if !s.cycling() {
		return false
	}
	switch {
	case s.MixRatio >= 1-s.Threshold:
		return s.Complete()
	case s.MixRatio <= s.Threshold:
		s.armed = false
	default:
		s.armed = true
	}
	return false
}

// Complete steps the mask if a wipe is in flight. It covers wipes that finish
// without a frame landing in the top band.
func (s *MixState) Complete() bool {
	if !s.cycling() || !s.armed {
		return false
	}
	s.armed = false
	s.Mask = (s.Mask + 1) % s.MaskCount
	return true
}

func (s *MixState) cycling() bool {
	return s.Cycle && s.UseMask && s.MaskCount > 0
}

// MixFactor is the per-pixel weight of scene B for a mask texel value. It is
// the CPU twin of the Kage shader and is continuous with the A-only and
// B-only fast paths: ratio 0 yields 0 and ratio 1 yields 1 for any texel.
func MixFactor(texel, ratio, threshold float64) float64 {
	r := ratio*(1+2*threshold) - threshold
	f := common.Clamp01((texel - r) / threshold)
	return 1 - f
}
