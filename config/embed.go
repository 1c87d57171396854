package config

import (
	"embed"
	"os"
	"path/filepath"
	"time"
)

//go:embed *.yaml
var ConfigFS embed.FS

// Load returns the named file from disk when it exists and from the embedded
// defaults otherwise.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return ConfigFS.ReadFile(filepath.Base(filepath.ToSlash(name)))
}

// ModTime reports the on-disk modification time of name.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
