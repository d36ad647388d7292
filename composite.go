package celshade

import "fmt"

// CompositeMode selects how two layers are combined.
type CompositeMode int

const (
	// WhiteTransparent treats White in either layer as absent.
	WhiteTransparent CompositeMode = iota
	// Linear is a plain weighted blend.
	Linear
)

func (m CompositeMode) String() string {
	switch m {
	case Linear:
		return "linear"
	default:
		return "white-transparent"
	}
}

// Composite blends fg over bg as bg*(1-alpha) + fg*alpha. Where fg is White
// the result is bg, and where bg is White the result is fg. alpha is clamped
// to [0,1].
func Composite(bg, fg *Image, alpha float64) (*Image, error) {
	return composite(bg, fg, alpha, WhiteTransparent)
}

// Blend is Composite without the White special case.
func Blend(bg, fg *Image, alpha float64) (*Image, error) {
	return composite(bg, fg, alpha, Linear)
}

func composite(bg, fg *Image, alpha float64, mode CompositeMode) (*Image, error) {
	if bg == nil || fg == nil {
		return nil, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	if !bg.SameSize(fg) {
		return nil, fmt.Errorf("celshade: %w: %dx%d vs %dx%d", ErrShapeMismatch, bg.W, bg.H, fg.W, fg.H)
	}
	a := max(0, min(1, alpha))
	oneMinusA := 1 - a

	dst := NewImage(bg.W, bg.H)
	for off := 0; off < len(dst.Pix); off += 3 {
		b := bg.Pix[off : off+3 : off+3]
		f := fg.Pix[off : off+3 : off+3]
		if mode == WhiteTransparent {
			if isWhite(f) {
				copy(dst.Pix[off:off+3], b)
				continue
			}
			if isWhite(b) {
				copy(dst.Pix[off:off+3], f)
				continue
			}
		}
		for c := 0; c < 3; c++ {
			dst.Pix[off+c] = roundUint8(oneMinusA*float64(b[c]) + a*float64(f[c]))
		}
	}
	return dst, nil
}

// Average returns the per-pixel mean of the layers, ignoring White. A pixel
// that is White in every layer stays White.
func Average(layers ...*Image) (*Image, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("celshade: %w", ErrNoLayers)
	}
	for i, l := range layers {
		if l == nil {
			return nil, fmt.Errorf("celshade: %w: layer %d", ErrNilImage, i)
		}
		if !l.SameSize(layers[0]) {
			return nil, fmt.Errorf("celshade: %w: layer %d is %dx%d, want %dx%d",
				ErrShapeMismatch, i, l.W, l.H, layers[0].W, layers[0].H)
		}
	}

	dst := NewImage(layers[0].W, layers[0].H)
	for off := 0; off < len(dst.Pix); off += 3 {
		var sum [3]int
		n := 0
		for _, l := range layers {
			p := l.Pix[off : off+3 : off+3]
			if isWhite(p) {
				continue
			}
			sum[0] += int(p[0])
			sum[1] += int(p[1])
			sum[2] += int(p[2])
			n++
		}
		if n == 0 {
			dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2] = 255, 255, 255
			continue
		}
		for c := 0; c < 3; c++ {
			dst.Pix[off+c] = uint8((sum[c] + n/2) / n)
		}
	}
	return dst, nil
}

func isWhite(p []uint8) bool {
	return p[0] == 255 && p[1] == 255 && p[2] == 255
}

// CompositeStep composites a fixed layer over the pipeline image, which acts
// as the background.
type CompositeStep struct {
	Layer *Image
	Alpha float64
	Mode  CompositeMode
}

func (s CompositeStep) Kind() FilterKind { return KindComposite }

func (s CompositeStep) Apply(src *Image) (*Image, error) {
	return composite(src, s.Layer, s.Alpha, s.Mode)
}
