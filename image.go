package celshade

import (
	"image"
	"image/color"
)

// Image is an interleaved 8-bit RGB raster, row-major.
type Image struct {
	W, H int
	Pix  []uint8 // len = W*H*3
}

// NewImage allocates a black w×h image.
func NewImage(w, h int) *Image {
	w, h = max(w, 0), max(h, 0)
	return &Image{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// NewFilledImage allocates a w×h image filled with c.
func NewFilledImage(w, h int, c Color) *Image {
	img := NewImage(w, h)
	img.Fill(c)
	return img
}

// FromImage converts any image.Image to an Image, dropping alpha.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := pixOffset(w, x, y)
			img.Pix[off] = uint8(r >> 8)
			img.Pix[off+1] = uint8(g >> 8)
			img.Pix[off+2] = uint8(b >> 8)
		}
	}
	return img
}

// NRGBA converts the image to an opaque *image.NRGBA.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			c := img.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return out
}

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) Color {
	off := pixOffset(img.W, x, y)
	return Color{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2]}
}

// Set writes the pixel at column x, row y.
func (img *Image) Set(x, y int, c Color) {
	off := pixOffset(img.W, x, y)
	img.Pix[off] = c.R
	img.Pix[off+1] = c.G
	img.Pix[off+2] = c.B
}

func (img *Image) Fill(c Color) {
	for off := 0; off < len(img.Pix); off += 3 {
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
	}
}

func (img *Image) Clone() *Image {
	pix := make([]uint8, len(img.Pix))
	copy(pix, img.Pix)
	return &Image{W: img.W, H: img.H, Pix: pix}
}

// SameSize reports whether both images have identical dimensions.
func (img *Image) SameSize(o *Image) bool {
	return img.W == o.W && img.H == o.H
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.W, img.H)
}

// rgb32 is a float working copy of an Image.
type rgb32 struct {
	W, H int
	Pix  []float32 // Interleaved RGB in [0,255], len = W*H*3
}

func newRGB32(img *Image) rgb32 {
	buf := rgb32{W: img.W, H: img.H, Pix: make([]float32, len(img.Pix))}
	for i, v := range img.Pix {
		buf.Pix[i] = float32(v)
	}
	return buf
}

func (buf rgb32) toImage() *Image {
	img := NewImage(buf.W, buf.H)
	for i, v := range buf.Pix {
		img.Pix[i] = roundUint8(float64(v))
	}
	return img
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 3
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundUint8 rounds to nearest and saturates to [0,255].
func roundUint8(v float64) uint8 {
	return uint8(max(0, min(255, v+0.5)))
}
