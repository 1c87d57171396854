package scenes

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/scene"
)

// Geometric is a tumbling icosahedron with a smaller counter-rotating one
// inside it.
type Geometric struct {
	base
	outer *Mesh
	inner *Mesh
	segs  []segment
}

func NewGeometric(bg color.Color) *Geometric {
	g := &Geometric{base: newBase(bg), outer: Icosahedron(), inner: Icosahedron()}
	g.outer.Scale = 1.4
	g.inner.Scale = 0.6
	return g
}

func (g *Geometric) Rotation() f64.Vec3 {
	return g.outer.Rotation
}

func (g *Geometric) SetRotation(r f64.Vec3) {
	g.outer.Rotation = r
	g.inner.Rotation = scene.Scale(r, -1.5)
}

// Animate spins the shape when no script drives it.
func (g *Geometric) Animate(dt time.Duration) {
	s := dt.Seconds()
	g.SetRotation(scene.Add(g.outer.Rotation, f64.Vec3{0.5 * s, 0.8 * s, 0}))
}

func (g *Geometric) Draw(dst *ebiten.Image, cam scene.Camera) {
	g.fillBackground(dst)
	p, ok := asProjector(cam)
	if !ok {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	g.segs = projectEdges(p, g.outer.World(), g.outer.Edges, w, h, g.segs[:0])
	g.strokeSegments(dst, g.segs, colornames.Deepskyblue, 2, 8)

	g.segs = projectEdges(p, g.inner.World(), g.inner.Edges, w, h, g.segs[:0])
	g.strokeSegments(dst, g.segs, colornames.Hotpink, 1.5, 8)
}
