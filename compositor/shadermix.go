package compositor

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/scene"
	"github.com/milk9111/seamless/transition"
)

type size struct{ w, h int }

// targetReleaser is implemented by renderers that free GPU memory eagerly.
type targetReleaser interface {
	ReleaseTarget(img *ebiten.Image)
}

// ShaderMix wipes from one scene to the next through a mask texture. At either
// end of the wipe only one scene is rendered and the other one is held.
type ShaderMix struct {
	r     Renderer
	mixer Mixer
	masks Masks
	state *transition.MixState

	// sizes the entry targets were allocated at
	targets map[*scene.Entry]size
	// snapshot of the previous Draw
	last transition.State
}

func NewShaderMix(r Renderer, mixer Mixer, masks Masks, state *transition.MixState) (*ShaderMix, error) {
	if r == nil || mixer == nil || state == nil {
		return nil, errors.New("compositor: shader mix needs a renderer, mixer and mix state")
	}
	if state.UseMask && (masks == nil || masks.Len() < state.MaskCount) {
		return nil, fmt.Errorf("compositor: shader mix: %d masks requested, %d loaded", state.MaskCount, maskLen(masks))
	}
	return &ShaderMix{
		r:       r,
		mixer:   mixer,
		masks:   masks,
		state:   state,
		targets: map[*scene.Entry]size{},
	}, nil
}

func maskLen(m Masks) int {
	if m == nil {
		return 0
	}
	return m.Len()
}

// State exposes the uniforms for overlays.
func (s *ShaderMix) State() *transition.MixState {
	return s.state
}

func (s *ShaderMix) Held(snap transition.State) []int {
	if !snap.Active {
		return nil
	}
	switch {
	case transition.AtStart(snap.Progress):
		return []int{snap.To}
	case transition.AtEnd(snap.Progress):
		return []int{snap.From}
	}
	return nil
}

func (s *ShaderMix) Draw(dst *ebiten.Image, reg *scene.Registry, snap transition.State) error {
	ratio := 0.0
	if snap.Active {
		ratio = snap.Progress
	}
	if completed(s.last, snap) {
		s.state.Complete()
	}
	s.last = snap
	s.state.Update(ratio)

	a, err := reg.Get(snap.From)
	if err != nil {
		return fmt.Errorf("compositor: shader mix: %w", err)
	}
	if !snap.Active || transition.AtStart(s.state.MixRatio) {
		s.r.Clear(dst)
		s.r.Render(dst, a.Scene, a.Camera)
		return nil
	}

	b, err := reg.Get(snap.To)
	if err != nil {
		return fmt.Errorf("compositor: shader mix: %w", err)
	}
	if transition.AtEnd(s.state.MixRatio) {
		s.r.Clear(dst)
		s.r.Render(dst, b.Scene, b.Camera)
		return nil
	}

	for _, e := range []*scene.Entry{a, b} {
		s.ensureTarget(e)
		s.r.Clear(e.Target)
		s.r.Render(e.Target, e.Scene, e.Camera)
	}

	u := MixUniforms{
		MixRatio:  s.state.MixRatio,
		Threshold: s.state.Threshold,
	}
	if s.state.UseMask && s.masks != nil {
		u.UseMask = true
		u.Mask = s.masks.Mask(s.state.Mask)
	}
	s.mixer.Mix(dst, a.Target, b.Target, u)
	return nil
}

// completed reports whether the transition in prev finished on its target
// rather than being released back to where it started.
func completed(prev, cur transition.State) bool {
	return prev.Active && !cur.Active && prev.From != prev.To && cur.From == prev.To
}

// ensureTarget (re)allocates the entry's offscreen target at the renderer size.
func (s *ShaderMix) ensureTarget(e *scene.Entry) {
	w, h := s.r.Size()
	if sz, ok := s.targets[e]; ok && sz == (size{w, h}) {
		return
	}
	if rel, ok := s.r.(targetReleaser); ok && e.Target != nil {
		rel.ReleaseTarget(e.Target)
	}
	e.Target = s.r.NewTarget(w, h)
	s.targets[e] = size{w, h}
}

// Resize resizes the renderer and the masks. Entry targets follow lazily on
// their next use.
func (s *ShaderMix) Resize(w, h int) {
	s.r.SetSize(w, h)
	if s.masks != nil {
		s.masks.Resize(w, h)
	}
}
