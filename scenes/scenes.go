package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/config"
	"github.com/milk9111/seamless/scene"
	"github.com/milk9111/seamless/script"
)

var ErrUnknownKind = errors.New("scenes: unknown scene kind")

// Animated is a demo scene that can advance itself.
type Animated interface {
	scene.Scene
	scene.Blender
	script.Target
	Animate(dt time.Duration)
}

type builder func(spec config.SceneSpec, bg color.Color) Animated

var builders = map[string]builder{
	"geometric": func(_ config.SceneSpec, bg color.Color) Animated { return NewGeometric(bg) },
	"earth":     func(_ config.SceneSpec, bg color.Color) Animated { return NewEarth(bg, 250, 42) },
	"cubes":     func(s config.SceneSpec, bg color.Color) Animated { return NewCubes(bg, s.Count) },
	"physics":   func(s config.SceneSpec, bg color.Color) Animated { return NewPhysics(bg, s.Count, 7) },
}

// Kinds lists the registered scene kinds in name order.
func Kinds() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Built is one constructed demo scene together with its optional script.
type Built struct {
	Entry  scene.Entry
	Scene  Animated
	Script *script.Runtime

	logger *slog.Logger
	failed bool
}

// Build constructs the scene described by spec. When spec names a script the
// script drives the scene; otherwise the scene animates itself.
func Build(spec config.SceneSpec, aspect float64, logger *slog.Logger) (*Built, error) {
	if logger == nil {
		logger = slog.Default()
	}
	mk, ok := builders[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (scene %q)", ErrUnknownKind, spec.Kind, spec.Name)
	}
	s := mk(spec, spec.BackgroundColor())

	cam := scene.NewPerspectiveCamera(75, aspect, 0.1, 1000)
	z := spec.CameraZ
	if z <= 0 {
		z = 5
	}
	cam.SetCameraPosition(f64.Vec3{0, 0, z})
	cam.LookAt(f64.Vec3{})

	b := &Built{Scene: s, logger: logger}
	if spec.Script != "" {
		rt, err := script.LoadRuntime(spec.Script, s)
		if err != nil {
			return nil, fmt.Errorf("scenes: %s: %w", spec.Name, err)
		}
		b.Script = rt
	}

	b.Entry = scene.Entry{
		Name:    spec.Name,
		Scene:   s,
		Camera:  cam,
		Animate: b.animate,
	}
	return b, nil
}

// animate runs the script when there is one. A failing script is logged once
// and the scene falls back to its own animation until the script is reloaded.
func (b *Built) animate(dt time.Duration) {
	if b.Script == nil || b.failed {
		b.Scene.Animate(dt)
		return
	}
	if err := b.Script.Animate(dt); err != nil {
		b.failed = true
		b.logger.Error("scene script failed", "scene", b.Entry.Name, "script", b.Script.Name(), "err", err)
		b.Scene.Animate(dt)
	}
}

// Failed reports whether the script was disabled after a runtime error.
func (b *Built) Failed() bool {
	return b.failed
}

// ReloadScript recompiles the scene script from src and re-enables it.
func (b *Built) ReloadScript(src []byte) error {
	if b.Script == nil {
		return nil
	}
	if err := b.Script.Reload(src); err != nil {
		return err
	}
	b.failed = false
	return nil
}

// Supplier adapts Build to the registry supplier signature.
func Supplier(spec config.SceneSpec, aspect float64, logger *slog.Logger) scene.Supplier {
	return func() (scene.Entry, error) {
		b, err := Build(spec, aspect, logger)
		if err != nil {
			return scene.Entry{}, err
		}
		return b.Entry, nil
	}
}
