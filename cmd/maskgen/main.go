package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/milk9111/seamless/assets"
)

const size = 256

func main() {
	out := flag.String("out", "assets", "directory to write masks into")
	seed := flag.Uint64("seed", 7, "noise seed")
	flag.Parse()

	gens := []func() *image.Gray{
		Gradient,
		Radial,
		func() *image.Gray { return Noise(*seed, 16) },
	}
	for i, gen := range gens {
		path := filepath.Join(*out, filepath.Base(assets.MaskPath(i)))
		if err := writePNG(path, gen()); err != nil {
			log.Fatal(err)
		}
		fmt.Println("wrote", path)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Gradient wipes left to right.
func Gradient() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (size - 1))})
		}
	}
	return img
}

// Radial opens from the center outwards.
func Radial() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	maxR := math.Hypot(c, c)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / maxR
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(d * 255))})
		}
	}
	return img
}

// Noise is smooth value noise on a cell x cell lattice.
func Noise(seed uint64, cell int) *image.Gray {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n := size/cell + 2
	lattice := make([]float64, n*n)
	for i := range lattice {
		lattice[i] = rng.Float64()
	}
	at := func(x, y int) float64 { return lattice[y*n+x] }
	smooth := func(t float64) float64 { return t * t * (3 - 2*t) }

	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		gy, fy := y/cell, smooth(float64(y%cell)/float64(cell))
		for x := 0; x < size; x++ {
			gx, fx := x/cell, smooth(float64(x%cell)/float64(cell))
			top := at(gx, gy)*(1-fx) + at(gx+1, gy)*fx
			bottom := at(gx, gy+1)*(1-fx) + at(gx+1, gy+1)*fx
			v := top*(1-fy) + bottom*fy
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(v * 255))})
		}
	}
	return img
}
