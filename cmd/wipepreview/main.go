package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/seamless/assets"
	"github.com/milk9111/seamless/compositor"
	"github.com/milk9111/seamless/render"
	"github.com/milk9111/seamless/transition"
)

const (
	screenW = 512
	screenH = 512
)

// preview ping-pongs the wipe between two flat colors so masks can be judged
// on their own.
type preview struct {
	a, b      *ebiten.Image
	mixer     *compositor.EbitenMixer
	masks     *render.MaskSet
	state     *transition.MixState
	tick      int
	ticksLoop int
}

func (p *preview) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.state.Mask = (p.state.Mask + 1) % p.masks.Len()
	}
	p.tick = (p.tick + 1) % p.ticksLoop
	return nil
}

func (p *preview) ratio() float64 {
	phase := float64(p.tick) / float64(p.ticksLoop)
	return transition.EaseInOutCubic(1 - math.Abs(2*phase-1))
}

func (p *preview) Draw(screen *ebiten.Image) {
	r := p.ratio()
	p.state.Update(r)
	p.mixer.Mix(screen, p.a, p.b, compositor.MixUniforms{
		MixRatio:  r,
		Threshold: p.state.Threshold,
		UseMask:   true,
		Mask:      p.masks.Mask(p.state.Mask),
	})
	ebitenutil.DebugPrint(screen, fmt.Sprintf("mask %d/%d  ratio %.2f  (space: next mask)", p.state.Mask+1, p.masks.Len(), r))
}

func (p *preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func solid(c color.Color) *ebiten.Image {
	img := ebiten.NewImage(screenW, screenH)
	img.Fill(c)
	return img
}

func main() {
	threshold := flag.Float64("threshold", 0.1, "edge softness")
	seconds := flag.Float64("loop", 3, "seconds per there-and-back loop")
	flag.Parse()

	masks, err := render.LoadMasks(assets.MaskCount, screenW, screenH)
	if err != nil {
		log.Fatal(err)
	}
	mixer, err := compositor.NewEbitenMixer()
	if err != nil {
		log.Fatal(err)
	}
	state, err := transition.NewMixState(*threshold, masks.Len(), true, false, 0)
	if err != nil {
		log.Fatal(err)
	}

	p := &preview{
		a:         solid(colornames.Midnightblue),
		b:         solid(colornames.Darkorange),
		mixer:     mixer,
		masks:     masks,
		state:     state,
		ticksLoop: max(1, int(*seconds*float64(ebiten.DefaultTPS))),
	}
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Wipe Preview")
	if err := ebiten.RunGame(p); err != nil {
		log.Fatal(err)
	}
}
