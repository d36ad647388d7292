package celshade

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGaussianBlurUniform(t *testing.T) {
	f, err := NewGaussianBlur(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	img := NewFilledImage(6, 4, RGB(77, 150, 3))
	got, err := f.Apply(img)
	if err != nil {
		t.Fatal(err)
	}
	if !imagesEqual(got, img) {
		t.Error("blurring a uniform image changed it")
	}
}

func TestAveragingBlurImpulse(t *testing.T) {
	img := NewFilledImage(3, 3, RGB(0, 0, 0))
	img.Set(1, 1, RGB(90, 90, 90))

	f, err := NewAveragingBlur(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.Apply(img)
	if err != nil {
		t.Fatal(err)
	}
	// Every 3x3 neighborhood (with edge clamping) holds the impulse once.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c := got.At(x, y); c != RGB(10, 10, 10) {
				t.Errorf("At(%d,%d) = %v, want (10,10,10)", x, y, c)
			}
		}
	}
}

func TestLinearFilterIdentityKernel(t *testing.T) {
	f, err := NewLinearFilter(mat.NewDense(1, 1, []float64{1}))
	if err != nil {
		t.Fatal(err)
	}
	img := createTestImage([][]Color{{RGB(1, 2, 3), RGB(4, 5, 6)}})
	got, err := f.Apply(img)
	if err != nil {
		t.Fatal(err)
	}
	if !imagesEqual(got, img) {
		t.Error("1x1 unit kernel must be the identity")
	}
}

func TestNewLinearFilterInvalid(t *testing.T) {
	if _, err := NewLinearFilter(nil); !errors.Is(err, ErrInvalidKernel) {
		t.Errorf("nil kernel: err = %v", err)
	}
	if _, err := NewLinearFilter(&mat.Dense{}); !errors.Is(err, ErrInvalidKernel) {
		t.Errorf("empty kernel: err = %v", err)
	}
}

func TestSobelXSaturates(t *testing.T) {
	// Gx is negative on a dark-to-bright step; it saturates to 0.
	img := createTestImage([][]Color{
		{RGB(0, 0, 0), RGB(100, 100, 100), RGB(100, 100, 100)},
	})
	got, err := NewSobelX().Apply(img)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(1, 0) != RGB(0, 0, 0) {
		t.Errorf("At(1,0) = %v, want black", got.At(1, 0))
	}
	got, err = NewSobelY().Apply(img)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(1, 0) != RGB(0, 0, 0) {
		t.Errorf("SobelY on a single row: At(1,0) = %v, want black", got.At(1, 0))
	}
}

func TestSobelAbsXY(t *testing.T) {
	flat := NewFilledImage(4, 4, RGB(60, 60, 60))
	got, err := SobelAbsXY{}.Apply(flat)
	if err != nil {
		t.Fatal(err)
	}
	if !imagesEqual(got, NewImage(4, 4)) {
		t.Error("flat image must have no edges")
	}

	edge := createTestImage([][]Color{
		{RGB(0, 0, 0), RGB(100, 100, 100), RGB(100, 100, 100)},
		{RGB(0, 0, 0), RGB(100, 100, 100), RGB(100, 100, 100)},
		{RGB(0, 0, 0), RGB(100, 100, 100), RGB(100, 100, 100)},
	})
	got, err = SobelAbsXY{}.Apply(edge)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(1, 1) != RGB(255, 255, 255) {
		t.Errorf("center = %v, want saturated edge", got.At(1, 1))
	}
	if got.At(0, 0) != RGB(0, 0, 0) {
		t.Errorf("border = %v, want black", got.At(0, 0))
	}
}
