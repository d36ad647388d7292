package celshade

import (
	"context"
	"fmt"
	"log/slog"
)

// CellBlur smooths each color class using only same-class neighbors.
//
// For every class in order, a Gaussian is applied horizontally and then
// vertically, but only over taps that belong to the class. The accumulated
// color is divided by the sum of the weights that were actually used, so a
// region does not darken or lighten toward its border. Pixels outside the
// class are left untouched.
//
// Class masks always come from the input image; the blurred values chain
// from one class to the next.
type CellBlur struct {
	Kernel  Kernel
	Classes []ColorClass

	matchers []*Matcher
}

// NewCellBlur validates the configuration and precomputes kernel and class
// matchers.
func NewCellBlur(sigma float64, size int, classes []ColorClass) (*CellBlur, error) {
	return NewCellBlurWithOptions(BlurOptions{Sigma: sigma, Size: size}, classes)
}

func NewCellBlurWithOptions(opt BlurOptions, classes []ColorClass) (*CellBlur, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("celshade: %w", ErrNoClasses)
	}
	kernel, err := GaussianKernel(opt.Sigma, opt.Size)
	if err != nil {
		return nil, err
	}
	cb := &CellBlur{
		Kernel:   kernel,
		Classes:  classes,
		matchers: make([]*Matcher, len(classes)),
	}
	for i, class := range classes {
		if len(class.Colors) == 0 {
			return nil, fmt.Errorf("celshade: %w: class %d %q", ErrEmptyClass, i, class.Name)
		}
		cb.matchers[i] = NewMatcher(class.Colors...)
	}
	return cb, nil
}

func (cb *CellBlur) Kind() FilterKind { return KindCellBlur }

// Apply returns a blurred copy of src. src is not modified.
func (cb *CellBlur) Apply(src *Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	logger := Logger()
	region := nonWhiteBounds(src)
	img := newRGB32(src)
	// Horizontal sums: R, G, B and the weight actually used.
	temp := make([]float32, src.W*src.H*4)

	for i, m := range cb.matchers {
		mask, box := TrackClass(src, m, region)
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			logger.Debug("cellblur class",
				"class", cb.Classes[i].Name,
				"box", box.String(),
				"pixels", mask.Count())
		}
		if box.Empty() {
			continue
		}
		cb.blurHorizontal(img, temp, mask, box)
		cb.blurVertical(img, temp, mask, box)
	}
	return img.toImage(), nil
}

// blurHorizontal convolves masked pixels along rows, reading only masked taps.
func (cb *CellBlur) blurHorizontal(img rgb32, temp []float32, mask Mask, box BoundingBox) {
	w := img.W
	center := cb.Kernel.Center()
	for y := box.MinY; y <= box.MaxY; y++ {
		row := y * w
		for x := box.MinX; x <= box.MaxX; x++ {
			if !mask.Bits[row+x] {
				continue
			}
			var r, g, b, ws float64
			for k, weight := range cb.Kernel {
				sx := clampInt(x+k-center, 0, w-1)
				if !mask.Bits[row+sx] {
					continue
				}
				off := pixOffset(w, sx, y)
				r += weight * float64(img.Pix[off])
				g += weight * float64(img.Pix[off+1])
				b += weight * float64(img.Pix[off+2])
				ws += weight
			}
			t := (row + x) * 4
			temp[t] = float32(r)
			temp[t+1] = float32(g)
			temp[t+2] = float32(b)
			temp[t+3] = float32(ws)
		}
	}
}

// blurVertical convolves the horizontal sums along columns and writes the
// renormalized result back into img.
func (cb *CellBlur) blurVertical(img rgb32, temp []float32, mask Mask, box BoundingBox) {
	w, h := img.W, img.H
	center := cb.Kernel.Center()
	for y := box.MinY; y <= box.MaxY; y++ {
		for x := box.MinX; x <= box.MaxX; x++ {
			if !mask.Bits[y*w+x] {
				continue
			}
			var r, g, b, ws float64
			for k, weight := range cb.Kernel {
				sy := clampInt(y+k-center, 0, h-1)
				if !mask.Bits[sy*w+x] {
					continue
				}
				t := (sy*w + x) * 4
				r += weight * float64(temp[t])
				g += weight * float64(temp[t+1])
				b += weight * float64(temp[t+2])
				ws += weight * float64(temp[t+3])
			}
			if ws == 0 {
				// No usable tap at all: keep the pre-pass value.
				continue
			}
			off := pixOffset(w, x, y)
			img.Pix[off] = float32(r / ws)
			img.Pix[off+1] = float32(g / ws)
			img.Pix[off+2] = float32(b / ws)
		}
	}
}
