package celshade

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearFilter convolves the whole image with a 2-D kernel. Samples outside
// the image repeat the nearest edge pixel.
type LinearFilter struct {
	Kernel *mat.Dense
}

// NewLinearFilter wraps an arbitrary non-empty kernel.
func NewLinearFilter(kernel *mat.Dense) (*LinearFilter, error) {
	if kernel == nil || kernel.IsEmpty() {
		return nil, fmt.Errorf("celshade: %w", ErrInvalidKernel)
	}
	return &LinearFilter{Kernel: kernel}, nil
}

// NewGaussianBlur is a plain size×size Gaussian blur.
func NewGaussianBlur(sigma float64, size int) (*LinearFilter, error) {
	k, err := GaussianKernel2D(sigma, size)
	if err != nil {
		return nil, err
	}
	return &LinearFilter{Kernel: k}, nil
}

// NewAveragingBlur is a w×h box blur.
func NewAveragingBlur(w, h int) (*LinearFilter, error) {
	k, err := AveragingKernel(w, h)
	if err != nil {
		return nil, err
	}
	return &LinearFilter{Kernel: k}, nil
}

func NewSobelX() *LinearFilter { return &LinearFilter{Kernel: SobelXKernel()} }
func NewSobelY() *LinearFilter { return &LinearFilter{Kernel: SobelYKernel()} }

func (f *LinearFilter) Kind() FilterKind { return KindLinear }

func (f *LinearFilter) Apply(src *Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	kh, kw := f.Kernel.Dims()
	cy, cx := kh/2, kw/2
	dst := NewImage(src.W, src.H)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			var r, g, b float64
			for ky := 0; ky < kh; ky++ {
				sy := clampInt(y+ky-cy, 0, src.H-1)
				for kx := 0; kx < kw; kx++ {
					sx := clampInt(x+kx-cx, 0, src.W-1)
					weight := f.Kernel.At(ky, kx)
					off := pixOffset(src.W, sx, sy)
					r += weight * float64(src.Pix[off])
					g += weight * float64(src.Pix[off+1])
					b += weight * float64(src.Pix[off+2])
				}
			}
			off := pixOffset(dst.W, x, y)
			dst.Pix[off] = roundUint8(r)
			dst.Pix[off+1] = roundUint8(g)
			dst.Pix[off+2] = roundUint8(b)
		}
	}
	return dst, nil
}

// SobelAbsXY writes max(|Gx|, |Gy|) per channel. The one-pixel border has no
// full neighborhood and is left black.
type SobelAbsXY struct{}

func (SobelAbsXY) Kind() FilterKind { return KindSobelAbsXY }

func (SobelAbsXY) Apply(src *Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	sx, sy := SobelXKernel(), SobelYKernel()
	dst := NewImage(src.W, src.H)
	for y := 1; y < src.H-1; y++ {
		for x := 1; x < src.W-1; x++ {
			var gx, gy [3]float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					off := pixOffset(src.W, x+kx-1, y+ky-1)
					wx, wy := sx.At(ky, kx), sy.At(ky, kx)
					for c := 0; c < 3; c++ {
						v := float64(src.Pix[off+c])
						gx[c] += wx * v
						gy[c] += wy * v
					}
				}
			}
			off := pixOffset(dst.W, x, y)
			for c := 0; c < 3; c++ {
				dst.Pix[off+c] = roundUint8(math.Max(math.Abs(gx[c]), math.Abs(gy[c])))
			}
		}
	}
	return dst, nil
}
