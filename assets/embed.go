package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png
var assetsFS embed.FS

// MaskCount is the number of embedded transition masks.
const MaskCount = 3

// MaskPath returns the assets-relative path of transition mask i.
func MaskPath(i int) string {
	return fmt.Sprintf("transition%d.png", i)
}

// DecodeImage decodes an embedded image by assets-relative path.
func DecodeImage(path string) (image.Image, error) {
	b, err := assetsFS.ReadFile(cleanAssetPath(path))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// Masks decodes the first n transition masks.
func Masks(n int) ([]image.Image, error) {
	out := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img, err := DecodeImage(MaskPath(i))
		if err != nil {
			return nil, fmt.Errorf("mask %d: %w", i, err)
		}
		out = append(out, img)
	}
	return out, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
