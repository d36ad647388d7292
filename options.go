package celshade

import (
	"fmt"
	"image"
)

type BlurOptions struct {
	// Gaussian standard deviation in pixels. Must be positive.
	// Cel-shaded art at ~1000px wide looks right around 15-25.
	Sigma float64
	// Kernel window in pixels. Must be odd and at least 1.
	// Larger windows widen the smoothing inside each class; pixels farther than
	// Size/2 from the class border stay unaffected by it.
	Size int
}

func DefaultBlurOptions() BlurOptions {
	return BlurOptions{
		Sigma: 20,
		Size:  21,
	}
}

// BlurOptionsFromSize scales the blur window with the image: small sprites
// get narrow kernels, large frames wider ones.
func BlurOptionsFromSize(size image.Point) BlurOptions {
	if size.X <= 0 || size.Y <= 0 {
		return DefaultBlurOptions()
	}
	side := min(size.X, size.Y)
	window := max(3, min(41, side/48))
	if window%2 == 0 {
		window++
	}
	return BlurOptions{
		Sigma: float64(window) * 20 / 21,
		Size:  window,
	}
}

// Validate reports configuration errors.
func (o BlurOptions) Validate() error {
	if !(o.Sigma > 0) {
		return fmt.Errorf("celshade: %w: %v", ErrInvalidSigma, o.Sigma)
	}
	if o.Size < 1 || o.Size%2 == 0 {
		return fmt.Errorf("celshade: %w: %d (want odd, >= 1)", ErrInvalidWindow, o.Size)
	}
	return nil
}
