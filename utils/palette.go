package utils

import (
	"cmp"
	"image/color"
	"log"
	"math"
	"slices"
	"strconv"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/celshade"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

type ClassOptions struct {
	// Number of classes to discover. Cel-shaded frames typically need 4-8.
	K int
	// Palette extraction used to seed the classes.
	Method PaletteMethod
	// Colors covering fewer pixels are ignored (anti-aliasing noise, stray
	// pixels). 0 keeps every color.
	MinPixels int
	// Keep White as a class member. Off by default: a class containing White
	// is never pruned to a bounding box, which makes every pass full-frame.
	KeepWhite bool
	// Colors never assigned to a class, typically the line colors.
	Exclude []celshade.Color
}

func DefaultClassOptions() ClassOptions {
	return ClassOptions{
		K:         6,
		Method:    PaletteMethodDominantColor,
		MinPixels: 4,
	}
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		return cmp.Compare(luminance(a), luminance(b))
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ExtractClasses discovers color classes in img. A palette of opt.K colors is
// extracted, then every distinct exact color of the image is assigned to its
// nearest palette entry in Lab space. Classes come out darkest first, and
// each class lists its colors by decreasing pixel count. Empty classes are
// dropped.
func ExtractClasses(img *celshade.Image, opt ClassOptions) []celshade.ColorClass {
	palette := ExtractPalette(img, opt.K, opt.Method)
	if len(palette) == 0 {
		return nil
	}
	SortPaletteByBrightness(palette)

	counts := make(map[celshade.Color]int)
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			counts[img.At(x, y)]++
		}
	}
	skip := make(map[celshade.Color]bool, len(opt.Exclude)+1)
	for _, c := range opt.Exclude {
		skip[c] = true
	}
	if !opt.KeepWhite {
		skip[celshade.White] = true
	}

	type member struct {
		c celshade.Color
		n int
	}
	buckets := make([][]member, len(palette))
	for c, n := range counts {
		if skip[c] || n < opt.MinPixels {
			continue
		}
		col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		best, bestD := 0, math.MaxFloat64
		for i, p := range palette {
			if d := col.DistanceLab(p); d < bestD {
				best, bestD = i, d
			}
		}
		buckets[best] = append(buckets[best], member{c, n})
	}

	classes := make([]celshade.ColorClass, 0, len(palette))
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		slices.SortFunc(bucket, func(a, b member) int {
			if a.n != b.n {
				return b.n - a.n
			}
			return cmp.Compare(a.c.Key(), b.c.Key())
		})
		colors := make([]celshade.Color, len(bucket))
		for j, m := range bucket {
			colors[j] = m.c
		}
		classes = append(classes, celshade.NewColorClass("class"+strconv.Itoa(i), colors...))
	}
	return classes
}

func ExtractPalette(img *celshade.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

func ExtractDominantPalette(img *celshade.Image, k int) []colorful.Color {
	if k <= 0 || img.W == 0 || img.H == 0 {
		return nil
	}

	candidates := dominantcolor.FindWeight(img.NRGBA(), max(24, k*8))
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return selectDiverse(weighted, k)
}

func ExtractKMeansPalette(img *celshade.Image, k int) []colorful.Color {
	if k <= 0 || img.W == 0 || img.H == 0 {
		return nil
	}

	// Subsample so partitioning stays tractable on large frames.
	const maxSamples = 12000
	step := 1
	if img.W*img.H > maxSamples {
		step = int(math.Sqrt(float64(img.W*img.H)/maxSamples)) + 1
	}

	dataset := make(clusters.Observations, 0, min(img.W*img.H, maxSamples))
	for y := 0; y < img.H; y += step {
		for x := 0; x < img.W; x += step {
			c := img.At(x, y)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return selectDiverse(weighted, k)
}

// selectDiverse greedily picks k colors: the heaviest first, then each time
// the candidate farthest in Lab from everything picked so far, scaled by its
// weight.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	labs := make([][3]float64, len(cands))
	maxW := 0.0
	seed := 0
	for i, c := range cands {
		l, a, b := c.Col.Lab()
		labs[i] = [3]float64{l, a, b}
		if c.Weight > maxW {
			maxW = c.Weight
			seed = i
		}
	}
	if maxW <= 0 {
		maxW = 1
	}

	picked := []int{seed}
	taken := make([]bool, len(cands))
	taken[seed] = true
	for len(picked) < k {
		bestIdx, bestScore := -1, -1.0
		for i := range cands {
			if taken[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range picked {
				d0 := labs[i][0] - labs[s][0]
				d1 := labs[i][1] - labs[s][1]
				d2 := labs[i][2] - labs[s][2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(cands[i].Weight/maxW))
			if score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx < 0 {
			break
		}
		taken[bestIdx] = true
		picked = append(picked, bestIdx)
	}

	out := make([]colorful.Color, len(picked))
	for i, idx := range picked {
		out[i] = cands[idx].Col
	}
	return out
}
