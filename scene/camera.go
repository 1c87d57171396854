package scene

import (
	"math"

	"golang.org/x/image/math/f64"
)

var worldUp = f64.Vec3{0, 1, 0}

// PerspectiveCamera looks from Position toward Target and projects world
// points onto a screen of a given pixel size.
type PerspectiveCamera struct {
	Position f64.Vec3
	Target   f64.Vec3

	// FOV is the vertical field of view in degrees.
	FOV  float64
	Near float64
	Far  float64

	aspect float64
}

// NewPerspectiveCamera creates a camera five units back from the origin.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	if fov <= 0 {
		fov = 72
	}
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}
	return &PerspectiveCamera{
		Position: f64.Vec3{0, 0, 5},
		FOV:      fov,
		Near:     near,
		Far:      far,
		aspect:   aspect,
	}
}

// SetAspect updates the projection aspect ratio. Non-positive values are ignored.
func (c *PerspectiveCamera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
}

func (c *PerspectiveCamera) Aspect() float64 {
	return c.aspect
}

func (c *PerspectiveCamera) CameraPosition() f64.Vec3 {
	return c.Position
}

func (c *PerspectiveCamera) SetCameraPosition(p f64.Vec3) {
	c.Position = p
}

func (c *PerspectiveCamera) CameraTarget() f64.Vec3 {
	return c.Target
}

// LookAt points the camera at t.
func (c *PerspectiveCamera) LookAt(t f64.Vec3) {
	c.Target = t
}

// axes returns the camera basis: right, up and forward.
func (c *PerspectiveCamera) axes() (f64.Vec3, f64.Vec3, f64.Vec3) {
	fwd := Normalize(Sub(c.Target, c.Position))
	right := Normalize(Cross(fwd, worldUp))
	if Length(right) == 0 {
		// looking straight up or down
		right = f64.Vec3{1, 0, 0}
	}
	up := Cross(right, fwd)
	return right, up, fwd
}

// Project maps a world point to screen pixels for a w x h surface. depth is
// the distance along the view direction; ok is false when the point is
// outside the near/far range.
func (c *PerspectiveCamera) Project(p f64.Vec3, w, h int) (x, y, depth float64, ok bool) {
	right, up, fwd := c.axes()
	d := Sub(p, c.Position)
	zv := Dot(d, fwd)
	if zv < c.Near || zv > c.Far {
		return 0, 0, zv, false
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	ndcX := Dot(d, right) * f / (c.aspect * zv)
	ndcY := Dot(d, up) * f / zv
	x = (ndcX + 1) / 2 * float64(w)
	y = (1 - ndcY) / 2 * float64(h)
	return x, y, zv, true
}

// PixelScale returns how many pixels one world unit spans at the given depth
// on a surface h pixels tall.
func (c *PerspectiveCamera) PixelScale(depth float64, h int) float64 {
	if depth <= 0 {
		return 0
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	return f / depth * float64(h) / 2
}
