package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/seamless/compositor"
	"github.com/milk9111/seamless/config"
	"github.com/milk9111/seamless/engine"
	"github.com/milk9111/seamless/engine/system"
	"github.com/milk9111/seamless/input"
	"github.com/milk9111/seamless/render"
	"github.com/milk9111/seamless/scenes"
	"github.com/milk9111/seamless/script"
	"github.com/milk9111/seamless/transition"
	"github.com/milk9111/seamless/viewport"
)

type Game struct {
	frames int
	debug  bool
	logger *slog.Logger

	configPath string
	cfg        *config.Config

	engine  *engine.Engine
	hub     *input.Hub
	mix     *compositor.ShaderMix
	built   []*scenes.Built
	hud     *HUD
	watcher *config.Watcher
	quit    bool
}

func NewGame(configPath string, cfg *config.Config, debug bool, logger *slog.Logger) (*Game, error) {
	g := &Game{
		debug:      debug,
		logger:     logger,
		configPath: configPath,
		cfg:        cfg,
		hub:        input.NewHub(input.EbitenSource{}),
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	comp, err := g.newCompositor(w, h)
	if err != nil {
		return nil, err
	}

	binding := viewport.NewBinding(viewport.NewOrbitFactory(g.hub), cfg.Viewport.Controller())
	e, err := engine.New(comp, timingFrom(cfg),
		engine.WithLogger(logger),
		engine.WithHub(g.hub),
		engine.WithBinding(binding),
		engine.WithSystems(system.Pipeline(inputOptions(cfg))...),
	)
	if err != nil {
		return nil, err
	}
	g.engine = e

	aspect := float64(w) / float64(h)
	for _, spec := range cfg.Scenes {
		b, err := scenes.Build(spec, aspect, logger)
		if err != nil {
			return nil, err
		}
		if _, err := e.Register(b.Entry); err != nil {
			return nil, err
		}
		g.built = append(g.built, b)
	}
	if len(g.built) < 2 {
		logger.Warn("fewer than two scenes configured; transitions are disabled", "scenes", len(g.built))
	}
	e.Resize(w, h)

	g.hud = NewHUD(e.Registry().Names(), cfg.Transition.Strategy)
	g.hub.Subscribe(g.handleKey)
	g.startWatcher()
	return g, nil
}

func (g *Game) newCompositor(w, h int) (compositor.Compositor, error) {
	r := render.NewRenderer(w, h)
	if g.cfg.Transition.Strategy != config.StrategyMix {
		return compositor.NewOpacity(r), nil
	}

	mc := g.cfg.Mix
	state, err := transition.NewMixState(mc.Threshold, mc.MaskCount, mc.UseMask, mc.CycleMasks, mc.InitialMask)
	if err != nil {
		return nil, err
	}
	var masks compositor.Masks
	if mc.UseMask {
		set, err := render.LoadMasks(mc.MaskCount, w, h)
		if err != nil {
			return nil, err
		}
		masks = set
	}
	mixer, err := compositor.NewEbitenMixer()
	if err != nil {
		return nil, err
	}
	mix, err := compositor.NewShaderMix(r, mixer, masks, state)
	if err != nil {
		return nil, err
	}
	g.mix = mix
	return mix, nil
}

func timingFrom(cfg *config.Config) engine.Timing {
	return engine.Timing{
		Duration:    cfg.Transition.Duration(),
		Interval:    cfg.Transition.Interval(),
		AutoAdvance: cfg.Transition.AutoAdvance,
	}
}

func inputOptions(cfg *config.Config) system.InputOptions {
	in := cfg.Input
	opts := system.InputOptions{
		Keyboard:          in.Keyboard,
		WheelThreshold:    in.WheelThreshold,
		ScrollSensitivity: in.ScrollSensitivity,
		ScrollSmoothing:   in.ScrollSmoothing,
	}
	switch in.WheelMode {
	case config.WheelStep:
		opts.Wheel = system.WheelStep
	case config.WheelScrub:
		opts.Wheel = system.WheelScrub
	}
	return opts
}

func (g *Game) handleKey(ev input.Event) {
	k, ok := ev.(input.KeyEvent)
	if !ok {
		return
	}
	switch k.Key {
	case ebiten.KeyH:
		g.hud.Toggle()
	case ebiten.KeyF3:
		g.debug = !g.debug
	case ebiten.KeyEscape:
		g.quit = true
	}
}

// startWatcher watches the on-disk config and script directories, if any.
func (g *Game) startWatcher() {
	var dirs []string
	if _, ok := config.ModTime(g.configPath); ok {
		dirs = append(dirs, filepath.Dir(g.configPath))
	}
	if info, err := os.Stat("scripts"); err == nil && info.IsDir() {
		dirs = append(dirs, "scripts")
	}
	if len(dirs) == 0 {
		return
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		g.logger.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = w
}

// drainWatcher applies pending file changes without blocking the frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Changes():
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(ch)
		case err, ok := <-g.watcher.Errors():
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watcher error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(ch config.Change) {
	path := ch.Path
	switch {
	case ch.Kind == config.ConfigFile && filepath.Clean(path) == filepath.Clean(g.configPath):
		cfg, err := config.LoadConfig(g.configPath)
		if err != nil {
			g.logger.Error("config reload failed", "path", path, "err", err)
			return
		}
		if err := g.engine.ApplyTiming(timingFrom(cfg)); err != nil {
			g.logger.Error("config reload failed", "path", path, "err", err)
			return
		}
		if cfg.Transition.Strategy != g.cfg.Transition.Strategy {
			g.logger.Info("strategy change takes effect on restart", "strategy", cfg.Transition.Strategy)
		}
		if g.mix != nil {
			st := g.mix.State()
			st.Threshold = cfg.Mix.Threshold
			st.Cycle = cfg.Mix.CycleMasks
		}
		g.cfg.Transition = cfg.Transition
		g.cfg.Mix.Threshold = cfg.Mix.Threshold
		g.cfg.Mix.CycleMasks = cfg.Mix.CycleMasks
		g.hud.SetStatus("config reloaded")
	case ch.Kind == config.ScriptFile:
		src, err := script.Load(path)
		if err != nil {
			g.logger.Error("script reload failed", "path", path, "err", err)
			return
		}
		name := filepath.Base(path)
		for _, b := range g.built {
			if b.Script == nil || filepath.Base(b.Script.Name()) != name {
				continue
			}
			if err := b.ReloadScript(src); err != nil {
				g.logger.Error("script reload failed", "scene", b.Entry.Name, "err", err)
				continue
			}
			g.logger.Info("script reloaded", "scene", b.Entry.Name, "script", name)
		}
		g.hud.SetStatus("script reloaded: " + name)
	}
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	g.engine.Update(time.Second / time.Duration(tps))

	for _, ev := range g.engine.Events() {
		g.hud.Event(ev, g.engine.Registry().Names())
	}
	g.hud.Update(g.engine, g.mix)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.engine.Draw(screen)
	g.hud.Draw(screen)

	if g.debug {
		s := g.engine.Snapshot()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    TPS: %.2f\nfrom %d to %d  progress %.3f  active %v  scrubbed %v",
			g.frames, ebiten.ActualFPS(), ebiten.ActualTPS(), s.From, s.To, s.Progress, s.Active, s.Scrubbed), 8, screenHeight(screen)-40)
	}
}

func screenHeight(img *ebiten.Image) int {
	return img.Bounds().Dy()
}

// Layout renders at the window size and resizes targets synchronously when
// it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.engine.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
