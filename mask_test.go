package celshade

import (
	"image"
	"testing"
)

func TestTrackClassBox(t *testing.T) {
	a, b := RGB(10, 10, 10), RGB(50, 60, 70)
	img := NewFilledImage(5, 4, a)
	img.Set(1, 2, b)
	img.Set(3, 1, b)

	mask, box := TrackClass(img, NewMatcher(Exact(b)...), FullBox(img.W, img.H))
	want := BoundingBox{MinX: 1, MinY: 1, MaxX: 3, MaxY: 2}
	if box != want {
		t.Errorf("box = %v, want %v", box, want)
	}
	if mask.Count() != 2 {
		t.Errorf("mask.Count() = %d, want 2", mask.Count())
	}
	if !mask.At(1, 2) || !mask.At(3, 1) || mask.At(0, 0) {
		t.Error("mask flags wrong pixels")
	}
	if got := box.Rect(); got != image.Rect(1, 1, 4, 3) {
		t.Errorf("Rect() = %v, want (1,1)-(4,3)", got)
	}
}

func TestTrackClassEmptyMask(t *testing.T) {
	img := NewFilledImage(1, 1, RGB(1, 1, 1))
	mask, box := TrackClass(img, NewMatcher(Exact(RGB(2, 2, 2))...), FullBox(1, 1))
	if !box.Empty() {
		t.Fatalf("box = %v, want empty", box)
	}
	if box.MinX <= box.MaxX {
		t.Errorf("empty box must be inverted, got %v", box)
	}
	if mask.Count() != 0 {
		t.Errorf("mask.Count() = %d, want 0", mask.Count())
	}
	iterations := 0
	for y := box.MinY; y <= box.MaxY; y++ {
		for x := box.MinX; x <= box.MaxX; x++ {
			iterations++
		}
	}
	if iterations != 0 {
		t.Errorf("loop over empty box ran %d times", iterations)
	}
	if !box.Rect().Empty() {
		t.Errorf("Rect() of empty box = %v", box.Rect())
	}
}

func TestTrackClassWhiteForcesFullBox(t *testing.T) {
	c := RGB(30, 30, 30)
	img := NewFilledImage(6, 5, RGB(1, 1, 1))
	img.Set(2, 2, c)

	m := NewMatcher(Exact(c, White)...)
	mask, box := TrackClass(img, m, BoundingBox{MinX: 2, MinY: 2, MaxX: 2, MaxY: 2})
	if box != FullBox(6, 5) {
		t.Errorf("box = %v, want full image", box)
	}
	if mask.Count() != 1 {
		t.Errorf("mask.Count() = %d, want 1", mask.Count())
	}
}

func TestTrackClassRespectsRegion(t *testing.T) {
	c := RGB(30, 30, 30)
	img := NewFilledImage(4, 4, c)

	mask, box := TrackClass(img, NewMatcher(Exact(c)...), BoundingBox{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2})
	if box != (BoundingBox{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}) {
		t.Errorf("box = %v", box)
	}
	if mask.Count() != 4 {
		t.Errorf("mask.Count() = %d, want 4", mask.Count())
	}
	if mask.At(0, 0) {
		t.Error("pixel outside region must not be flagged")
	}
}

func TestTrackClassEmptyRegion(t *testing.T) {
	img := NewFilledImage(3, 3, RGB(5, 5, 5))
	_, box := TrackClass(img, NewMatcher(Exact(RGB(5, 5, 5))...), EmptyBox(3, 3))
	if !box.Empty() {
		t.Errorf("box = %v, want empty", box)
	}
}

func TestNonWhiteBounds(t *testing.T) {
	img := NewFilledImage(5, 5, White)
	if box := nonWhiteBounds(img); !box.Empty() {
		t.Errorf("all-white image: box = %v, want empty", box)
	}
	img.Set(4, 0, RGB(0, 0, 0))
	img.Set(1, 3, RGB(0, 0, 0))
	want := BoundingBox{MinX: 1, MinY: 0, MaxX: 4, MaxY: 3}
	if box := nonWhiteBounds(img); box != want {
		t.Errorf("box = %v, want %v", box, want)
	}
}
