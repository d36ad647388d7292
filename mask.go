package celshade

import (
	"fmt"
	"image"
)

// Mask flags the pixels of the class currently being processed.
type Mask struct {
	W, H int
	Bits []bool // len = W*H
}

func newMask(w, h int) Mask {
	return Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

func (m Mask) At(x, y int) bool {
	return m.Bits[y*m.W+x]
}

// Count returns the number of flagged pixels.
func (m Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// BoundingBox is an inclusive pixel rectangle. A box with MinX > MaxX or
// MinY > MaxY is empty and loops over it do not run.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY int
}

// FullBox covers a whole w×h image.
func FullBox(w, h int) BoundingBox {
	return BoundingBox{MinX: 0, MinY: 0, MaxX: w - 1, MaxY: h - 1}
}

// EmptyBox is the starting value for min/max accumulation over a w×h image.
func EmptyBox(w, h int) BoundingBox {
	return BoundingBox{MinX: w, MinY: h, MaxX: -1, MaxY: -1}
}

func (b BoundingBox) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Rect converts to a half-open image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	if b.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}

func (b BoundingBox) String() string {
	if b.Empty() {
		return "empty"
	}
	return fmt.Sprintf("[%d,%d]-[%d,%d]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

func (b *BoundingBox) include(x, y int) {
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
}

// nonWhiteBounds returns the box of all pixels that are not White.
func nonWhiteBounds(img *Image) BoundingBox {
	box := EmptyBox(img.W, img.H)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			if img.At(x, y) != White {
				box.include(x, y)
			}
		}
	}
	return box
}

// TrackClass builds the mask of pixels matched by m and the bounding box of
// the flagged pixels, scanning only region. When m matches White the scan
// region and the returned box are both the full image: white may be anywhere.
func TrackClass(img *Image, m *Matcher, region BoundingBox) (Mask, BoundingBox) {
	mask := newMask(img.W, img.H)
	if m.Match(White) {
		full := FullBox(img.W, img.H)
		scanBox(img, m, full, mask)
		return mask, full
	}

	region = BoundingBox{
		MinX: max(region.MinX, 0),
		MinY: max(region.MinY, 0),
		MaxX: min(region.MaxX, img.W-1),
		MaxY: min(region.MaxY, img.H-1),
	}
	return mask, scanBox(img, m, region, mask)
}

func scanBox(img *Image, m *Matcher, region BoundingBox, mask Mask) BoundingBox {
	box := EmptyBox(img.W, img.H)
	for y := region.MinY; y <= region.MaxY; y++ {
		for x := region.MinX; x <= region.MaxX; x++ {
			if m.Match(img.At(x, y)) {
				mask.Bits[y*img.W+x] = true
				box.include(x, y)
			}
		}
	}
	return box
}
