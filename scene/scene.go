package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is an opaque renderable graph. The engine never looks inside it.
type Scene interface {
	Draw(dst *ebiten.Image, cam Camera)
}

// Camera is the projector a scene is viewed through.
type Camera interface {
	SetAspect(aspect float64)
	Aspect() float64
}

// Blender is implemented by scenes whose drawables can be faded as a group.
// The opacity compositor sets the value before drawing the incoming scene and
// restores it to 1 afterwards.
type Blender interface {
	SetBlendOpacity(v float64)
}

// Entry bundles a scene with the camera it is viewed through and the callback
// that advances its own animation.
type Entry struct {
	Name    string
	Scene   Scene
	Camera  Camera
	Animate func(dt time.Duration)

	// Target is the entry's offscreen color target. It is allocated by the
	// renderer on first use and reallocated on resize.
	Target *ebiten.Image
}

// Supplier builds one entry. Scene content lives entirely behind it.
type Supplier func() (Entry, error)

func (e *Entry) animate(dt time.Duration) {
	if e == nil || e.Animate == nil {
		return
	}
	e.Animate(dt)
}
