package scenes

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/scene"
)

var cubePalette = []color.Color{
	colornames.Orangered,
	colornames.Gold,
	colornames.Limegreen,
	colornames.Dodgerblue,
	colornames.Violet,
}

// Cubes is a ring of spinning cubes orbiting the origin.
type Cubes struct {
	base
	cubes  []*Mesh
	radius float64
	orbit  float64
	segs   []segment
}

func NewCubes(bg color.Color, n int) *Cubes {
	if n <= 0 {
		n = 5
	}
	c := &Cubes{base: newBase(bg), radius: 2.5}
	for i := 0; i < n; i++ {
		m := Cube()
		m.Scale = 0.9
		m.Rotation = f64.Vec3{float64(i) * 0.3, float64(i) * 0.7, 0}
		c.cubes = append(c.cubes, m)
	}
	c.place()
	return c
}

func (c *Cubes) place() {
	n := float64(len(c.cubes))
	for i, m := range c.cubes {
		a := c.orbit + 2*math.Pi*float64(i)/n
		m.Offset = f64.Vec3{c.radius * math.Cos(a), 0.4 * math.Sin(2*a), c.radius * math.Sin(a)}
	}
}

// Len is the number of cubes.
func (c *Cubes) Len() int {
	return len(c.cubes)
}

func (c *Cubes) Rotation() f64.Vec3 {
	return f64.Vec3{0, c.orbit, 0}
}

func (c *Cubes) SetRotation(r f64.Vec3) {
	c.orbit = r[1]
	c.place()
}

func (c *Cubes) Animate(dt time.Duration) {
	s := dt.Seconds()
	c.orbit += 0.3 * s
	for i, m := range c.cubes {
		k := 1 + 0.2*float64(i)
		m.Rotate(f64.Vec3{0.6 * k * s, 0.9 * k * s, 0})
	}
	c.place()
}

func (c *Cubes) Draw(dst *ebiten.Image, cam scene.Camera) {
	c.fillBackground(dst)
	p, ok := asProjector(cam)
	if !ok {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	for i, m := range c.cubes {
		c.segs = projectEdges(p, m.World(), m.Edges, w, h, c.segs[:0])
		c.strokeSegments(dst, c.segs, cubePalette[i%len(cubePalette)], 2, 14)
	}
}
