package scenes

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/scene"
)

const (
	physicsStep    = 1.0 / 120
	physicsGravity = -9.8
	boxHalfW       = 4.0
	boxHalfH       = 3.0
	ballRadius     = 0.3
	kickInterval   = 3 * time.Second
)

// Physics bounces balls around a box in a Chipmunk space. Animate steps the
// space at a fixed rate.
type Physics struct {
	base
	space  *cp.Space
	balls  []*cp.Body
	walls  [][2]f64.Vec3
	rng    *rand.Rand
	accum  float64
	sinceK time.Duration
	tilt   float64
}

func NewPhysics(bg color.Color, n int, seed uint64) *Physics {
	if n <= 0 {
		n = 12
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: physicsGravity})

	p := &Physics{base: newBase(bg), space: space, rng: rand.New(rand.NewPCG(seed, seed+1))}

	corners := []cp.Vector{
		{X: -boxHalfW, Y: -boxHalfH}, {X: boxHalfW, Y: -boxHalfH},
		{X: boxHalfW, Y: boxHalfH}, {X: -boxHalfW, Y: boxHalfH},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		shape := cp.NewSegment(space.StaticBody, a, b, 0.05)
		shape.SetFriction(0.6)
		shape.SetElasticity(0.9)
		space.AddShape(shape)
		p.walls = append(p.walls, [2]f64.Vec3{{a.X, a.Y, 0}, {b.X, b.Y, 0}})
	}

	for i := 0; i < n; i++ {
		mass := 1.0
		body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, ballRadius, cp.Vector{}))
		body.SetPosition(cp.Vector{
			X: (p.rng.Float64()*2 - 1) * (boxHalfW - 1),
			Y: p.rng.Float64() * (boxHalfH - 1),
		})
		body.SetVelocity(p.rng.Float64()*4-2, p.rng.Float64()*2)
		space.AddBody(body)

		shape := cp.NewCircle(body, ballRadius, cp.Vector{})
		shape.SetFriction(0.4)
		shape.SetElasticity(0.85)
		space.AddShape(shape)
		p.balls = append(p.balls, body)
	}
	return p
}

// Balls returns the positions of every ball.
func (p *Physics) Balls() []cp.Vector {
	out := make([]cp.Vector, 0, len(p.balls))
	for _, b := range p.balls {
		out = append(out, b.Position())
	}
	return out
}

// Rotation exposes the box tilt around z.
func (p *Physics) Rotation() f64.Vec3 {
	return f64.Vec3{0, 0, p.tilt}
}

// SetRotation tilts gravity with the z component.
func (p *Physics) SetRotation(r f64.Vec3) {
	p.tilt = r[2]
	p.space.SetGravity(cp.Vector{
		X: -physicsGravity * math.Sin(p.tilt),
		Y: physicsGravity * math.Cos(p.tilt),
	})
}

func (p *Physics) Animate(dt time.Duration) {
	p.accum += dt.Seconds()
	// avoid a spiral after a long stall
	if p.accum > 0.25 {
		p.accum = 0.25
	}
	for p.accum >= physicsStep {
		p.space.Step(physicsStep)
		p.accum -= physicsStep
	}

	p.sinceK += dt
	if p.sinceK >= kickInterval && len(p.balls) > 0 {
		p.sinceK = 0
		b := p.balls[p.rng.IntN(len(p.balls))]
		b.ApplyImpulseAtLocalPoint(cp.Vector{X: p.rng.Float64()*4 - 2, Y: 8}, cp.Vector{})
	}
}

func (p *Physics) Draw(dst *ebiten.Image, cam scene.Camera) {
	p.fillBackground(dst)
	pr, ok := asProjector(cam)
	if !ok {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	wall := p.fade(colornames.Lightgray, 1)
	for _, seg := range p.walls {
		x0, y0, _, ok0 := pr.Project(seg[0], w, h)
		x1, y1, _, ok1 := pr.Project(seg[1], w, h)
		if ok0 && ok1 {
			vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 2, wall, true)
		}
	}

	ball := p.fade(colornames.Coral, 1)
	for _, b := range p.balls {
		pos := b.Position()
		x, y, depth, ok := pr.Project(f64.Vec3{pos.X, pos.Y, 0}, w, h)
		if !ok {
			continue
		}
		r := ballRadius * pr.PixelScale(depth, h)
		vector.FillCircle(dst, float32(x), float32(y), float32(r), ball, true)
	}
}
