package celshade

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel is a 1-D convolution kernel. Its center tap is len/2, so even
// sizes lean one tap to the right.
type Kernel []float64

// Center returns the index of the center tap.
func (k Kernel) Center() int {
	return len(k) / 2
}

// GaussianKernel returns a normalized 1-D Gaussian of the given size.
// Even sizes are accepted and stay asymmetric.
func GaussianKernel(sigma float64, size int) (Kernel, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("celshade: %w: %v", ErrInvalidSigma, sigma)
	}
	if size < 1 {
		return nil, fmt.Errorf("celshade: %w: %d", ErrInvalidWindow, size)
	}
	center := size / 2
	twoSigmaSq := 2 * sigma * sigma
	k := make(Kernel, size)
	for i := 0; i < size; i++ {
		d := float64(center - i)
		k[i] = math.Exp(-(d * d) / twoSigmaSq)
	}
	floats.Scale(1/floats.Sum(k), k)
	return k, nil
}

// GaussianKernel2D returns a normalized size×size Gaussian.
func GaussianKernel2D(sigma float64, size int) (*mat.Dense, error) {
	k, err := GaussianKernel(sigma, size)
	if err != nil {
		return nil, err
	}
	// Outer product of the 1-D kernel equals the radial Gaussian up to scale,
	// and both factors already sum to 1.
	v := mat.NewVecDense(size, k)
	out := mat.NewDense(size, size, nil)
	out.Outer(1, v, v)
	return out, nil
}

// AveragingKernel returns an h×w box kernel with equal weights.
func AveragingKernel(w, h int) (*mat.Dense, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("celshade: %w: %dx%d", ErrInvalidWindow, w, h)
	}
	data := make([]float64, w*h)
	weight := 1 / float64(w*h)
	for i := range data {
		data[i] = weight
	}
	return mat.NewDense(h, w, data), nil
}

// SobelXKernel is the horizontal gradient operator.
func SobelXKernel() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, -1,
		2, 0, -2,
		1, 0, -1,
	})
}

// SobelYKernel is the vertical gradient operator.
func SobelYKernel() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 2, 1,
		0, 0, 0,
		-1, -2, -1,
	})
}
