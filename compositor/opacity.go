package compositor

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/scene"
	"github.com/milk9111/seamless/transition"
)

// Opacity fades the incoming scene over the outgoing one.
type Opacity struct {
	r Renderer
}

func NewOpacity(r Renderer) *Opacity {
	return &Opacity{r: r}
}

func (o *Opacity) Draw(dst *ebiten.Image, reg *scene.Registry, snap transition.State) error {
	from, err := reg.Get(snap.From)
	if err != nil {
		return fmt.Errorf("compositor: opacity: %w", err)
	}

	o.r.Clear(dst)
	if !snap.Active {
		o.r.Render(dst, from.Scene, from.Camera)
		return nil
	}

	to, err := reg.Get(snap.To)
	if err != nil {
		return fmt.Errorf("compositor: opacity: %w", err)
	}

	o.r.Render(dst, from.Scene, from.Camera)
	o.r.ClearDepth(dst)

	b, fades := to.Scene.(scene.Blender)
	if fades {
		b.SetBlendOpacity(snap.Progress)
	}
	o.r.Render(dst, to.Scene, to.Camera)
	if fades {
		b.SetBlendOpacity(1)
	}
	return nil
}

// Held is always empty: both scenes keep animating during a fade.
func (o *Opacity) Held(transition.State) []int {
	return nil
}

func (o *Opacity) Resize(w, h int) {
	o.r.SetSize(w, h)
}
