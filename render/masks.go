package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/milk9111/seamless/assets"
)

var ErrNoMasks = errors.New("render: no mask images")

// MaskSet keeps the transition masks scaled to the screen size, since the
// wipe shader samples every image at the same pixel coordinates.
type MaskSet struct {
	src    []image.Image
	scaled []*ebiten.Image
	w, h   int
}

// LoadMasks decodes the first n embedded masks.
func LoadMasks(n, w, h int) (*MaskSet, error) {
	imgs, err := assets.Masks(n)
	if err != nil {
		return nil, fmt.Errorf("render: load masks: %w", err)
	}
	return NewMaskSet(imgs, w, h)
}

func NewMaskSet(src []image.Image, w, h int) (*MaskSet, error) {
	if len(src) == 0 {
		return nil, ErrNoMasks
	}
	m := &MaskSet{src: src}
	m.Resize(w, h)
	return m, nil
}

func (m *MaskSet) Len() int {
	return len(m.src)
}

// Mask returns mask i at the current size. The index wraps.
func (m *MaskSet) Mask(i int) *ebiten.Image {
	if len(m.scaled) == 0 {
		return nil
	}
	n := len(m.scaled)
	return m.scaled[((i%n)+n)%n]
}

// Resize rescales every mask to w x h. Same-size calls are ignored.
func (m *MaskSet) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == m.w && h == m.h && len(m.scaled) == len(m.src)) {
		return
	}
	for _, img := range m.scaled {
		img.Deallocate()
	}
	m.scaled = m.scaled[:0]
	for _, src := range m.src {
		m.scaled = append(m.scaled, ebiten.NewImageFromImage(Scale(src, w, h)))
	}
	m.w, m.h = w, h
}

// Scale resamples src to w x h.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
