package celshade

import "fmt"

// Color is an 8-bit RGB pixel value.
type Color struct {
	R, G, B uint8
}

// White is the pure white sentinel. Compositing treats it as transparent and
// classes containing it are never pruned to a bounding box.
var White = Color{R: 255, G: 255, B: 255}

// RGB is shorthand for Color{R: r, G: g, B: b}.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Key packs the channels into a single integer, R in the low byte.
func (c Color) Key() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// ColorSpec is a representative color with a per-channel tolerance.
// A zero Tolerance means exact match.
type ColorSpec struct {
	Color
	Tolerance uint8
}

// Exact returns specs with zero tolerance for the given colors.
func Exact(colors ...Color) []ColorSpec {
	specs := make([]ColorSpec, len(colors))
	for i, c := range colors {
		specs[i] = ColorSpec{Color: c}
	}
	return specs
}

// ColorClass is a named set of representative colors, e.g. "hair".
type ColorClass struct {
	Name   string
	Colors []ColorSpec
}

// NewColorClass creates a class whose members match the given colors exactly.
func NewColorClass(name string, colors ...Color) ColorClass {
	return ColorClass{Name: name, Colors: Exact(colors...)}
}

// Matcher answers class membership for pixel colors. Exact representatives
// are looked up in a set keyed by Color.Key; tolerant ones are scanned.
type Matcher struct {
	exact    map[uint32]struct{}
	tolerant []ColorSpec
	n        int
}

// NewMatcher builds a matcher from representative colors.
func NewMatcher(specs ...ColorSpec) *Matcher {
	m := &Matcher{
		exact: make(map[uint32]struct{}, len(specs)),
		n:     len(specs),
	}
	for _, s := range specs {
		if s.Tolerance == 0 {
			m.exact[s.Key()] = struct{}{}
			continue
		}
		m.tolerant = append(m.tolerant, s)
	}
	return m
}

// Match reports whether c belongs to the matcher's set.
func (m *Matcher) Match(c Color) bool {
	if m == nil {
		return false
	}
	if _, ok := m.exact[c.Key()]; ok {
		return true
	}
	for _, s := range m.tolerant {
		if within(c.R, s.R, s.Tolerance) && within(c.G, s.G, s.Tolerance) && within(c.B, s.B, s.Tolerance) {
			return true
		}
	}
	return false
}

// Len returns the number of representative colors, duplicates included.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return m.n
}

func within(v, ref, tol uint8) bool {
	d := int(v) - int(ref)
	if d < 0 {
		d = -d
	}
	return d <= int(tol)
}
