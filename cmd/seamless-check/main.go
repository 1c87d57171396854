// Command seamless-check validates an engine config without opening a window:
// it parses the file, builds every scene and steps each one once.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/milk9111/seamless/common"
	"github.com/milk9111/seamless/config"
	"github.com/milk9111/seamless/scenes"
	"github.com/milk9111/seamless/script"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "engine config file")
	list := flag.Bool("list", false, "list scene kinds and embedded scripts, then exit")
	flag.Parse()

	if *list {
		if err := listAll(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := check(os.Stdout, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listAll(w io.Writer) error {
	fmt.Fprintln(w, "kinds:  ", strings.Join(scenes.Kinds(), ", "))
	names, err := script.Names()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "scripts:", strings.Join(names, ", "))
	return nil
}

func check(w io.Writer, path string) error {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s strategy, %v transitions", path, cfg.Transition.Strategy, cfg.Transition.Duration())
	if cfg.Transition.AutoAdvance {
		fmt.Fprintf(w, " every %v", cfg.Transition.Interval())
	}
	fmt.Fprintln(w)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	aspect := float64(common.BaseWidth) / float64(common.BaseHeight)
	var errs []error
	for _, spec := range cfg.Scenes {
		b, err := scenes.Build(spec, aspect, logger)
		if err != nil {
			errs = append(errs, fmt.Errorf("scene %q: %w", spec.Name, err))
			continue
		}
		b.Entry.Animate(16 * time.Millisecond)
		if b.Failed() {
			errs = append(errs, fmt.Errorf("scene %q: script %s failed on first frame", spec.Name, spec.Script))
			continue
		}
		fmt.Fprintf(w, "  ok  %-10s %s\n", spec.Name, spec.Kind)
	}
	if len(cfg.Scenes) < 2 {
		fmt.Fprintf(w, "  warning: %d scene(s) configured, transitions need two\n", len(cfg.Scenes))
	}
	return errors.Join(errs...)
}
