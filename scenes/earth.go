package scenes

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/scene"
)

// axial tilt in radians
const earthTilt = 23.4 * math.Pi / 180

// Earth is a tilted wireframe globe spinning in a starfield.
type Earth struct {
	base
	globe *Mesh
	stars []f64.Vec3
	segs  []segment
}

func NewEarth(bg color.Color, starCount int, seed uint64) *Earth {
	e := &Earth{base: newBase(bg), globe: Globe(8, 12, 32)}
	e.globe.Scale = 1.8
	e.globe.Rotation = f64.Vec3{earthTilt, 0, 0}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < starCount; i++ {
		// uniform on a far sphere
		z := rng.Float64()*2 - 1
		a := rng.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		e.stars = append(e.stars, scene.Scale(f64.Vec3{r * math.Cos(a), r * math.Sin(a), z}, 60))
	}
	return e
}

func (e *Earth) Rotation() f64.Vec3 {
	return e.globe.Rotation
}

func (e *Earth) SetRotation(r f64.Vec3) {
	e.globe.Rotation = r
}

func (e *Earth) Animate(dt time.Duration) {
	e.globe.Rotate(f64.Vec3{0, 0.2 * dt.Seconds(), 0})
}

func (e *Earth) Draw(dst *ebiten.Image, cam scene.Camera) {
	e.fillBackground(dst)
	p, ok := asProjector(cam)
	if !ok {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	star := e.fade(colornames.White, 0.8)
	for _, s := range e.stars {
		x, y, _, ok := p.Project(s, w, h)
		if !ok {
			continue
		}
		vector.FillCircle(dst, float32(x), float32(y), 1, star, false)
	}

	e.segs = projectEdges(p, e.globe.World(), e.globe.Edges, w, h, e.segs[:0])
	e.strokeSegments(dst, e.segs, colornames.Mediumseagreen, 1.5, 10)
}
