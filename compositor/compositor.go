package compositor

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/scene"
	"github.com/milk9111/seamless/transition"
)

// Renderer draws scenes into images. It is the only thing that touches scene
// content.
type Renderer interface {
	Render(dst *ebiten.Image, s scene.Scene, cam scene.Camera)
	Clear(dst *ebiten.Image)
	// ClearDepth starts a new layer so the next render composites over the
	// previous one instead of being depth-tested against it.
	ClearDepth(dst *ebiten.Image)
	SetSize(w, h int)
	Size() (int, int)
	NewTarget(w, h int) *ebiten.Image
}

// MixUniforms are the per-frame inputs of the wipe shader.
type MixUniforms struct {
	MixRatio  float64
	Threshold float64
	UseMask   bool
	Mask      *ebiten.Image
}

// Mixer blends two full-screen images into dst.
type Mixer interface {
	Mix(dst, a, b *ebiten.Image, u MixUniforms)
}

// Masks supplies the wipe mask textures at the current screen size.
type Masks interface {
	Len() int
	Mask(i int) *ebiten.Image
	Resize(w, h int)
}

// Compositor turns a transition snapshot into pixels.
type Compositor interface {
	Draw(dst *ebiten.Image, reg *scene.Registry, snap transition.State) error
	// Held lists the entries whose animation must be paused for the frame
	// described by snap.
	Held(snap transition.State) []int
	Resize(w, h int)
}
