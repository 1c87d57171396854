package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must stay quiet before its change is
// reported. Editors often write a file in several steps.
const settleDelay = 100 * time.Millisecond

// FileKind tells the game loop how to reload a changed file.
type FileKind int

const (
	OtherFile FileKind = iota
	ConfigFile
	ScriptFile
)

// KindOf classifies path by extension.
func KindOf(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ConfigFile
	case ".tengo":
		return ScriptFile
	}
	return OtherFile
}

// Change is one settled edit of a config or script file.
type Change struct {
	Path string
	Kind FileKind
}

// Watcher coalesces filesystem notifications for config and script files
// into Changes. Both channels are closed once the watcher stops.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan Change
	errs    chan error
	done    chan struct{}
	stop    sync.Once
}

// NewWatcher watches dirs (not recursively).
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fsw,
		changes: make(chan Change, 8),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Changes() <-chan Change { return w.changes }

// Errors carries watch failures. Only the latest unread one is kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.changes)
	defer close(w.errs)

	pending := map[string]FileKind{}
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind := KindOf(ev.Name)
			if kind == OtherFile || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)) {
				continue
			}
			pending[ev.Name] = kind
			settle.Reset(settleDelay)

		case <-settle.C:
			for path, kind := range pending {
				delete(pending, path)
				select {
				case w.changes <- Change{Path: path, Kind: kind}:
				case <-w.done:
					return
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}
