package scene

import (
	"math"

	"golang.org/x/image/math/f64"
)

func Add(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale(a f64.Vec3, s float64) f64.Vec3 {
	return f64.Vec3{a[0] * s, a[1] * s, a[2] * s}
}

func Dot(a, b f64.Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Length(a f64.Vec3) float64 {
	return math.Sqrt(Dot(a, a))
}

// Normalize returns a unit vector, or the zero vector if a has no length.
func Normalize(a f64.Vec3) f64.Vec3 {
	l := Length(a)
	if l < 1e-12 {
		return f64.Vec3{}
	}
	return Scale(a, 1/l)
}

// RotateY rotates a around the Y axis by angle radians.
func RotateY(a f64.Vec3, angle float64) f64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return f64.Vec3{a[0]*c + a[2]*s, a[1], -a[0]*s + a[2]*c}
}

// RotateX rotates a around the X axis by angle radians.
func RotateX(a f64.Vec3, angle float64) f64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return f64.Vec3{a[0], a[1]*c - a[2]*s, a[1]*s + a[2]*c}
}

// RotateZ rotates a around the Z axis by angle radians.
func RotateZ(a f64.Vec3, angle float64) f64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return f64.Vec3{a[0]*c - a[1]*s, a[0]*s + a[1]*c, a[2]}
}
