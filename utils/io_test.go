package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/celshade"
)

func TestSaveReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := celshade.NewImage(3, 2)
	img.Set(0, 0, celshade.RGB(1, 2, 3))
	img.Set(2, 1, celshade.RGB(250, 128, 7))

	path := filepath.Join(dir, "img.png")
	if err := Save(img, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 3 || got.H != 2 {
		t.Fatalf("size = %dx%d, want 3x2", got.W, got.H)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got.At(x, y) != img.At(x, y) {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got.At(x, y), img.At(x, y))
			}
		}
	}
}

func TestReadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file: want error")
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadImage(bad); err == nil {
		t.Error("garbage file: want error")
	}
}

func TestSaveLayers(t *testing.T) {
	dir := t.TempDir()
	layers := []*celshade.Image{celshade.NewImage(1, 1), celshade.NewImage(1, 1)}
	if err := SaveLayers(layers, dir); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"layer_00.png", "layer_01.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestSaveClasses(t *testing.T) {
	dir := t.TempDir()
	if err := SaveClasses(nil, 8, filepath.Join(dir, "none.png")); err == nil {
		t.Error("empty class list: want error")
	}
	classes := []celshade.ColorClass{
		celshade.NewColorClass("a", celshade.RGB(1, 1, 1), celshade.RGB(2, 2, 2)),
		celshade.NewColorClass("b", celshade.RGB(3, 3, 3)),
	}
	path := filepath.Join(dir, "classes.png")
	if err := SaveClasses(classes, 8, path); err != nil {
		t.Fatal(err)
	}
	img, err := ReadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.W != 16 || img.H != 16 {
		t.Errorf("swatch size = %dx%d, want 16x16", img.W, img.H)
	}
	if img.At(9, 1) != celshade.RGB(2, 2, 2) {
		t.Errorf("At(9,1) = %v, want second tile color", img.At(9, 1))
	}
}
