package celshade

import (
	"fmt"
	"time"
)

// Filter is one image transform. Apply never modifies src.
type Filter interface {
	Apply(src *Image) (*Image, error)
	Kind() FilterKind
}

// FilterKind identifies the filter variants shipped with the package.
type FilterKind int

const (
	KindCellBlur FilterKind = iota
	KindLineRemover
	KindLineOnly
	KindLinear
	KindSobelAbsXY
	KindComposite
)

func (k FilterKind) String() string {
	switch k {
	case KindCellBlur:
		return "cellblur"
	case KindLineRemover:
		return "lineremover"
	case KindLineOnly:
		return "lineonly"
	case KindLinear:
		return "linear"
	case KindSobelAbsXY:
		return "sobelabsxy"
	case KindComposite:
		return "composite"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// Pipeline applies its filters in order, each reading the previous output.
type Pipeline []Filter

func (p Pipeline) Apply(src *Image) (*Image, error) {
	return ApplyFilters(src, p...)
}

// ApplyFilters runs filters over src in order. With no filters it returns a
// copy of src.
func ApplyFilters(src *Image, filters ...Filter) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	logger := Logger()
	img := src.Clone()
	for i, f := range filters {
		start := time.Now()
		out, err := f.Apply(img)
		if err != nil {
			return nil, fmt.Errorf("celshade: filter %d (%s): %w", i, f.Kind(), err)
		}
		logger.Debug("filter applied",
			"step", i,
			"filter", f.Kind().String(),
			"elapsed", time.Since(start))
		img = out
	}
	return img, nil
}
