package celshade

import (
	"fmt"
	"image"
)

// RoundMode selects which buffer neighbor colors are read from during a
// propagation round.
type RoundMode int

const (
	// RoundStart reads every neighbor from the snapshot taken when the round
	// began. Each round grows repaints by exactly one pixel and the result does
	// not depend on worklist order.
	RoundStart RoundMode = iota
	// InRound reads from the buffer being written, so a coordinate can copy a
	// color repainted earlier in the same round. Long runs clear in fewer
	// rounds, but the result depends on scan order.
	InRound
)

func (m RoundMode) String() string {
	switch m {
	case InRound:
		return "in-round"
	default:
		return "round-start"
	}
}

type LineRemoverOption func(*LineRemover)

// WithRoundMode overrides the default RoundStart mode.
func WithRoundMode(mode RoundMode) LineRemoverOption {
	return func(lr *LineRemover) { lr.Mode = mode }
}

// LineRemover erases key-colored line pixels by repeatedly copying an
// eligible 8-neighbor color into them.
//
// A neighbor is eligible when it matches neither the line colors nor the
// excluded colors. Pixels that never find one within MaxRounds keep their
// last color; that is reported, not treated as an error.
type LineRemover struct {
	MaxRounds int
	Mode      RoundMode

	lines    *Matcher
	excluded *Matcher
}

// Report describes one line removal run.
type Report struct {
	Found      int  // line pixels found by the initial scan
	Rounds     int  // propagation rounds executed
	Repainted  int  // pixels that received a neighbor color
	Unresolved int  // pixels still waiting when the run stopped
	Converged  bool // worklist drained before the round budget ran out
}

func NewLineRemover(lineColors, excludedColors []ColorSpec, maxRounds int, opts ...LineRemoverOption) (*LineRemover, error) {
	if len(lineColors) == 0 {
		return nil, fmt.Errorf("celshade: %w", ErrNoLineColors)
	}
	if maxRounds < 0 {
		return nil, fmt.Errorf("celshade: %w: %d", ErrNegativeRounds, maxRounds)
	}
	lr := &LineRemover{
		MaxRounds: maxRounds,
		lines:     NewMatcher(lineColors...),
		excluded:  NewMatcher(excludedColors...),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr, nil
}

func (lr *LineRemover) Kind() FilterKind { return KindLineRemover }

// Apply returns a copy of src with line pixels repainted.
func (lr *LineRemover) Apply(src *Image) (*Image, error) {
	img, _, err := lr.Remove(src)
	return img, err
}

// Remove is Apply with a report of how the run ended.
func (lr *LineRemover) Remove(src *Image) (*Image, Report, error) {
	if src == nil {
		return nil, Report{}, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	work := lr.collectLinePositions(src)
	rep := Report{Found: len(work)}

	out := src.Clone()
	snapshot := out
	if lr.Mode == RoundStart {
		snapshot = out.Clone()
	}

	for rep.Rounds < lr.MaxRounds && len(work) > 0 {
		read := out
		if lr.Mode == RoundStart {
			copy(snapshot.Pix, out.Pix)
			read = snapshot
		}
		n := len(work)
		work = lr.propagate(read, out, work)
		rep.Repainted += n - len(work)
		rep.Rounds++
	}
	rep.Unresolved = len(work)
	rep.Converged = len(work) == 0

	Logger().Debug("line removal",
		"mode", lr.Mode.String(),
		"found", rep.Found,
		"rounds", rep.Rounds,
		"unresolved", rep.Unresolved,
		"converged", rep.Converged)
	return out, rep, nil
}

// collectLinePositions scans column by column, top to bottom.
func (lr *LineRemover) collectLinePositions(img *Image) []image.Point {
	var positions []image.Point
	for x := 0; x < img.W; x++ {
		for y := 0; y < img.H; y++ {
			if lr.lines.Match(img.At(x, y)) {
				positions = append(positions, image.Point{X: x, Y: y})
			}
		}
	}
	return positions
}

// propagate runs one round and returns the positions still unresolved.
// The returned slice reuses work's backing array.
func (lr *LineRemover) propagate(read, out *Image, work []image.Point) []image.Point {
	remaining := work[:0]
	for _, p := range work {
		c, ok := lr.repaintColor(read, p)
		if !ok {
			remaining = append(remaining, p)
			continue
		}
		out.Set(p.X, p.Y, c)
	}
	return remaining
}

// repaintColor returns the first eligible neighbor color, scanning rows top
// to bottom and each row left to right.
func (lr *LineRemover) repaintColor(img *Image, p image.Point) (Color, bool) {
	for dy := -1; dy <= 1; dy++ {
		sy := p.Y + dy
		if sy < 0 || sy >= img.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			sx := p.X + dx
			if (dx == 0 && dy == 0) || sx < 0 || sx >= img.W {
				continue
			}
			c := img.At(sx, sy)
			if !lr.lines.Match(c) && !lr.excluded.Match(c) {
				return c, true
			}
		}
	}
	return Color{}, false
}

// LineOnly keeps the line-colored pixels and turns everything else White,
// producing an overlay layer for Composite.
type LineOnly struct {
	lines *Matcher
}

func NewLineOnly(lineColors ...ColorSpec) (*LineOnly, error) {
	if len(lineColors) == 0 {
		return nil, fmt.Errorf("celshade: %w", ErrNoLineColors)
	}
	return &LineOnly{lines: NewMatcher(lineColors...)}, nil
}

func (lo *LineOnly) Kind() FilterKind { return KindLineOnly }

func (lo *LineOnly) Apply(src *Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("celshade: %w", ErrNilImage)
	}
	dst := NewFilledImage(src.W, src.H, White)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			if c := src.At(x, y); lo.lines.Match(c) {
				dst.Set(x, y, c)
			}
		}
	}
	return dst, nil
}
