package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/seamless/compositor"
	"github.com/milk9111/seamless/engine"
)

const controlsHelp = "Space: next (wraps)   Left/Right: step   1-9: jump   drag: orbit   H: hide   F3: debug"

// HUD is the overlay panel naming the active scene and the controls.
type HUD struct {
	ui      *ebitenui.UI
	title   *widget.Text
	detail  *widget.Text
	status  *widget.Text
	visible bool

	strategy string
}

// NewHUD builds a panel anchored to the top left. It uses the built-in basic
// font so no theme fonts need loading.
func NewHUD(names []string, strategy string) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dim := color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

	h := &HUD{visible: true, strategy: strategy}
	h.title = widget.NewText(widget.TextOpts.Text(sceneLabel(names, 0), &face, white))
	h.detail = widget.NewText(widget.TextOpts.Text("", &face, dim))
	h.status = widget.NewText(widget.TextOpts.Text("", &face, dim))
	help := widget.NewText(widget.TextOpts.Text(controlsHelp, &face, dim))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 14, Right: 14}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.title)
	panel.AddChild(h.detail)
	panel.AddChild(h.status)
	panel.AddChild(help)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func sceneLabel(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "(no scenes)"
	}
	return fmt.Sprintf("%d/%d  %s", i+1, len(names), names[i])
}

func (h *HUD) Toggle() {
	h.visible = !h.visible
}

func (h *HUD) SetStatus(s string) {
	h.status.Label = s
}

// Event turns an engine event into the status line.
func (h *HUD) Event(ev engine.Event, names []string) {
	name := func(i int) string {
		if i >= 0 && i < len(names) {
			return names[i]
		}
		return "?"
	}
	switch ev.Kind {
	case engine.EventTransitionStarted:
		h.SetStatus(fmt.Sprintf("-> %s", name(ev.To)))
	case engine.EventTransitionCompleted:
		h.SetStatus(fmt.Sprintf("now showing %s", name(ev.To)))
	case engine.EventTransitionReverted:
		h.SetStatus(fmt.Sprintf("back to %s", name(ev.To)))
	case engine.EventInsufficientScenes:
		h.SetStatus("need at least two scenes to transition")
	case engine.EventError:
		h.SetStatus(fmt.Sprintf("error: %v", ev.Err))
	}
}

// Update refreshes the labels from the engine state and runs the UI.
func (h *HUD) Update(e *engine.Engine, mix *compositor.ShaderMix) {
	names := e.Registry().Names()
	snap := e.Snapshot()
	h.title.Label = sceneLabel(names, e.Machine().Current())

	var parts []string
	parts = append(parts, h.strategy)
	if snap.Active {
		parts = append(parts, fmt.Sprintf("%s -> %s %3.0f%%", names[snap.From], names[snap.To], snap.Progress*100))
	}
	if mix != nil && mix.State().UseMask {
		parts = append(parts, fmt.Sprintf("mask %d", mix.State().Mask))
	}
	t := e.Timing()
	if t.AutoAdvance {
		parts = append(parts, fmt.Sprintf("auto every %v", t.Interval))
	}
	h.detail.Label = strings.Join(parts, "   ")

	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible {
		return
	}
	h.ui.Draw(screen)
}
