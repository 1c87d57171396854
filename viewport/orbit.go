package viewport

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/common"
	"github.com/milk9111/seamless/input"
	"github.com/milk9111/seamless/scene"
)

// Orbitable is a camera that can be moved around its look-at target.
type Orbitable interface {
	scene.Camera
	CameraPosition() f64.Vec3
	SetCameraPosition(p f64.Vec3)
	CameraTarget() f64.Vec3
}

const minPolar = 1e-6

// OrbitController rotates a camera around its target on drag and dollies it
// on wheel, with optional inertial damping.
type OrbitController struct {
	cam Orbitable
	cfg Config
	hub *input.Hub
	sub input.Subscription

	// pending spherical deltas
	dTheta float64
	dPhi   float64
	scale  float64

	height   int
	disposed bool
}

// NewOrbitFactory returns a Factory whose controllers listen on hub.
func NewOrbitFactory(hub *input.Hub) Factory {
	return func(cam scene.Camera, cfg Config) (Controller, error) {
		return NewOrbitController(hub, cam, cfg)
	}
}

func NewOrbitController(hub *input.Hub, cam scene.Camera, cfg Config) (*OrbitController, error) {
	o, ok := cam.(Orbitable)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotOrbitable, cam)
	}
	c := &OrbitController{cam: o, cfg: cfg, hub: hub, scale: 1, height: cfg.Height}
	if hub != nil {
		c.sub = hub.Subscribe(c.handle)
	}
	return c, nil
}

func (c *OrbitController) handle(ev input.Event) {
	if c.disposed {
		return
	}
	switch e := ev.(type) {
	case input.DragEvent:
		h := float64(c.viewHeight())
		c.dTheta -= 2 * math.Pi * e.DX / h * c.rotateSpeed()
		c.dPhi -= 2 * math.Pi * e.DY / h * c.rotateSpeed()
	case input.WheelEvent:
		if !c.cfg.EnableZoom {
			return
		}
		speed := c.cfg.ZoomSpeed
		if speed <= 0 {
			speed = 1
		}
		// scrolling down moves the camera away
		c.scale *= math.Pow(0.95, -e.DY*speed)
	}
}

// Resize sets the height drags are measured against, so a full-height drag
// is one turn at any window size.
func (c *OrbitController) Resize(_, h int) {
	if h > 0 {
		c.height = h
	}
}

func (c *OrbitController) viewHeight() int {
	if c.height > 0 {
		return c.height
	}
	return common.BaseHeight
}

func (c *OrbitController) rotateSpeed() float64 {
	if c.cfg.RotateSpeed <= 0 {
		return 1
	}
	return c.cfg.RotateSpeed
}

// Update applies pending rotation and zoom to the camera.
func (c *OrbitController) Update() {
	if c.disposed {
		return
	}
	target := c.cam.CameraTarget()
	offset := scene.Sub(c.cam.CameraPosition(), target)
	radius := scene.Length(offset)
	if radius == 0 {
		return
	}
	theta := math.Atan2(offset[0], offset[2])
	phi := math.Acos(common.Clamp(offset[1]/radius, -1, 1))

	if c.cfg.EnableDamping && c.cfg.DampingFactor > 0 && c.cfg.DampingFactor < 1 {
		theta += c.dTheta * c.cfg.DampingFactor
		phi += c.dPhi * c.cfg.DampingFactor
		c.dTheta *= 1 - c.cfg.DampingFactor
		c.dPhi *= 1 - c.cfg.DampingFactor
	} else {
		theta += c.dTheta
		phi += c.dPhi
		c.dTheta, c.dPhi = 0, 0
	}
	phi = common.Clamp(phi, minPolar, math.Pi-minPolar)

	radius *= c.scale
	c.scale = 1
	lo, hi := c.cfg.MinDistance, c.cfg.MaxDistance
	if hi <= 0 {
		hi = math.Inf(1)
	}
	radius = common.Clamp(radius, lo, hi)

	sinPhi := math.Sin(phi)
	c.cam.SetCameraPosition(scene.Add(target, f64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}))
}

// Dispose unsubscribes from the input hub.
func (c *OrbitController) Dispose() error {
	if c.disposed {
		return ErrDisposed
	}
	c.disposed = true
	if c.hub == nil {
		return nil
	}
	if err := c.hub.Unsubscribe(c.sub); err != nil {
		return fmt.Errorf("viewport: dispose: %w", err)
	}
	return nil
}

// Camera returns the camera this controller moves.
func (c *OrbitController) Camera() Orbitable {
	return c.cam
}
