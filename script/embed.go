package script

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns a script by name. A file under ./scripts on disk wins over the
// embedded copy so scripts can be edited while the program runs.
func Load(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.FromSlash(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Names lists the embedded scripts.
func Names() ([]string, error) {
	entries, err := ScriptsFS.ReadDir("scripts")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "scripts/"); idx >= 0 {
		s = s[idx+len("scripts/"):]
	}
	return "scripts/" + s
}
