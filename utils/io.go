package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/setanarut/celshade"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func ReadImage(path string) (*celshade.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return celshade.FromImage(img), nil
}

// Save writes img as an opaque PNG.
func Save(img *celshade.Image, filename string) error {
	return SaveImage(img.NRGBA(), filename)
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveLayers writes layer_00.png, layer_01.png, ... into dir.
func SaveLayers(layers []*celshade.Image, dir string) error {
	for i, l := range layers {
		name := fmt.Sprintf("layer_%02d.png", i)
		if err := Save(l, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// SaveClasses writes a swatch: one row per class, one tile per color.
func SaveClasses(classes []celshade.ColorClass, tileSize int, filename string) error {
	if len(classes) == 0 {
		return fmt.Errorf("empty class list")
	}
	if tileSize <= 0 {
		tileSize = 32
	}

	cols := 1
	for _, c := range classes {
		cols = max(cols, len(c.Colors))
	}
	img := image.NewRGBA(image.Rect(0, 0, cols*tileSize, len(classes)*tileSize))
	for row, class := range classes {
		for col, spec := range class.Colors {
			c := color.RGBA{R: spec.R, G: spec.G, B: spec.B, A: 255}
			x0, y0 := col*tileSize, row*tileSize
			for y := y0; y < y0+tileSize; y++ {
				for x := x0; x < x0+tileSize; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	return SaveImage(img, filename)
}
