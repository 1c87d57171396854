package compositor

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/mix.kage
var mixShaderSrc []byte

// EbitenMixer runs the wipe as a Kage shader over a full-screen rect.
type EbitenMixer struct {
	shader *ebiten.Shader
}

func NewEbitenMixer() (*EbitenMixer, error) {
	sh, err := ebiten.NewShader(mixShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compositor: compile mix shader: %w", err)
	}
	return &EbitenMixer{shader: sh}, nil
}

// Mix draws a over b into dst. a, b and the mask must all match the size of a.
func (m *EbitenMixer) Mix(dst, a, b *ebiten.Image, u MixUniforms) {
	if dst == nil || a == nil || b == nil {
		return
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = a
	op.Images[1] = b
	useMask := float32(0)
	if u.UseMask && u.Mask != nil {
		op.Images[2] = u.Mask
		useMask = 1
	}
	op.Uniforms = map[string]interface{}{
		"MixRatio":  float32(u.MixRatio),
		"Threshold": float32(u.Threshold),
		"UseMask":   useMask,
	}
	dst.DrawRectShader(w, h, m.shader, op)
}
