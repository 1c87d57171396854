package viewport

import (
	"errors"
	"fmt"

	"github.com/milk9111/seamless/scene"
)

var (
	ErrDisposed     = errors.New("viewport: controller already disposed")
	ErrNotOrbitable = errors.New("viewport: camera cannot be orbited")
)

// Controller is an interactive camera controller bound to one camera.
type Controller interface {
	// Update advances inertial state by one frame.
	Update()
	// Dispose releases input listeners held by the controller.
	Dispose() error
}

// Config is copied into every controller the binding creates.
type Config struct {
	EnableDamping bool
	DampingFactor float64
	EnableZoom    bool
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64
	// Height is the viewport height in pixels that drag distances are
	// measured against. Zero means the base resolution.
	Height int
}

func DefaultConfig() Config {
	return Config{
		EnableDamping: true,
		DampingFactor: 0.01,
		EnableZoom:    true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0.5,
		MaxDistance:   100,
	}
}

// Factory builds a controller attached to cam.
type Factory func(cam scene.Camera, cfg Config) (Controller, error)

// Binding owns the single active controller.
type Binding struct {
	factory Factory
	cfg     Config

	cam  scene.Camera
	ctrl Controller
}

func NewBinding(factory Factory, cfg Config) *Binding {
	return &Binding{factory: factory, cfg: cfg}
}

// Bind disposes the current controller and attaches a new one to cam. A
// failing dispose means a controller was torn down twice, which is a bug in
// the caller, so Bind panics.
func (b *Binding) Bind(cam scene.Camera) error {
	if b.factory == nil {
		b.cam = cam
		return nil
	}
	if b.ctrl != nil {
		if err := b.ctrl.Dispose(); err != nil {
			panic("viewport: rebind: " + err.Error())
		}
		b.ctrl = nil
	}
	ctrl, err := b.factory(cam, b.cfg)
	if err != nil {
		return fmt.Errorf("viewport: bind: %w", err)
	}
	b.cam = cam
	b.ctrl = ctrl
	return nil
}

// Tick advances the bound controller by one frame.
func (b *Binding) Tick() {
	if b == nil || b.ctrl == nil {
		return
	}
	b.ctrl.Update()
}

// resizer is implemented by controllers whose input mapping depends on the
// viewport size.
type resizer interface {
	Resize(w, h int)
}

// Resize records the viewport size for future controllers and forwards it
// to the bound one.
func (b *Binding) Resize(w, h int) {
	if b == nil || w <= 0 || h <= 0 {
		return
	}
	b.cfg.Height = h
	if r, ok := b.ctrl.(resizer); ok {
		r.Resize(w, h)
	}
}

// Camera returns the camera the controller is attached to.
func (b *Binding) Camera() scene.Camera {
	return b.cam
}

func (b *Binding) Controller() Controller {
	return b.ctrl
}

func (b *Binding) Config() Config {
	return b.cfg
}
