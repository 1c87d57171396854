package scenes

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/common"
	"github.com/milk9111/seamless/scene"
)

// projector is the camera surface the demo scenes draw through.
type projector interface {
	Project(p f64.Vec3, w, h int) (x, y, depth float64, ok bool)
	PixelScale(depth float64, h int) float64
}

// base carries the state every demo scene shares: background and group
// opacity.
type base struct {
	background color.Color
	opacity    float64
}

func newBase(bg color.Color) base {
	if bg == nil {
		bg = color.Black
	}
	return base{background: bg, opacity: 1}
}

func (b *base) SetBlendOpacity(v float64) {
	b.opacity = common.Clamp01(v)
}

func (b *base) Opacity() float64 {
	return b.opacity
}

// fade scales c by the scene opacity and an extra factor.
func (b *base) fade(c color.Color, k float64) color.Color {
	a := common.Clamp01(b.opacity * k)
	r, g, bl, al := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * a),
		G: uint16(float64(g) * a),
		B: uint16(float64(bl) * a),
		A: uint16(float64(al) * a),
	}
}

// fillBackground blends the background over dst so a fading scene lets the
// one below show through.
func (b *base) fillBackground(dst *ebiten.Image) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	vector.FillRect(dst, 0, 0, float32(w), float32(h), b.fade(b.background, 1), false)
}

type segment struct {
	x0, y0, x1, y1 float32
	depth          float64
}

// strokeSegments draws far segments first and dims them with distance.
func (b *base) strokeSegments(dst *ebiten.Image, segs []segment, clr color.Color, width float32, far float64) {
	sort.Slice(segs, func(i, j int) bool { return segs[i].depth > segs[j].depth })
	for _, s := range segs {
		k := 1.0
		if far > 0 {
			k = common.Clamp(1-s.depth/far, 0.25, 1)
		}
		vector.StrokeLine(dst, s.x0, s.y0, s.x1, s.y1, width, b.fade(clr, k), true)
	}
}

// projectEdges turns world-space edges into screen segments, dropping any
// edge with an endpoint outside the view range.
func projectEdges(p projector, pts []f64.Vec3, edges [][2]int, w, h int, out []segment) []segment {
	for _, e := range edges {
		x0, y0, d0, ok0 := p.Project(pts[e[0]], w, h)
		x1, y1, d1, ok1 := p.Project(pts[e[1]], w, h)
		if !ok0 || !ok1 {
			continue
		}
		out = append(out, segment{
			x0: float32(x0), y0: float32(y0),
			x1: float32(x1), y1: float32(y1),
			depth: (d0 + d1) / 2,
		})
	}
	return out
}

func asProjector(cam scene.Camera) (projector, bool) {
	p, ok := cam.(projector)
	return p, ok
}
