package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/common"
	"github.com/milk9111/seamless/scene"
)

// Renderer draws scenes with the painter's algorithm. There is no depth
// buffer: ClearDepth only records that a new layer started, which later
// draws then cover.
type Renderer struct {
	w, h   int
	layers int
}

func NewRenderer(w, h int) *Renderer {
	if w <= 0 || h <= 0 {
		w, h = common.BaseWidth, common.BaseHeight
	}
	return &Renderer{w: w, h: h}
}

func (r *Renderer) Render(dst *ebiten.Image, s scene.Scene, cam scene.Camera) {
	if dst == nil || s == nil {
		return
	}
	s.Draw(dst, cam)
}

func (r *Renderer) Clear(dst *ebiten.Image) {
	if dst == nil {
		return
	}
	dst.Clear()
	r.layers = 0
}

func (r *Renderer) ClearDepth(dst *ebiten.Image) {
	r.layers++
}

// Layers reports how many layer boundaries were recorded since the last Clear.
func (r *Renderer) Layers() int {
	return r.layers
}

func (r *Renderer) SetSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.w, r.h = w, h
}

func (r *Renderer) Size() (int, int) {
	return r.w, r.h
}

func (r *Renderer) NewTarget(w, h int) *ebiten.Image {
	return ebiten.NewImage(w, h)
}

// ReleaseTarget frees a target allocated by NewTarget.
func (r *Renderer) ReleaseTarget(img *ebiten.Image) {
	if img != nil {
		img.Deallocate()
	}
}
