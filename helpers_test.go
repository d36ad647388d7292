package celshade

// Test helpers shared across celshade tests.

// createTestImage builds an image from rows of colors; rows[y][x].
func createTestImage(rows [][]Color) *Image {
	img := NewImage(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			img.Set(x, y, c)
		}
	}
	return img
}

func imagesEqual(a, b *Image) bool {
	if !a.SameSize(b) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// colorApproxEqual compares two colors channel by channel with tolerance.
func colorApproxEqual(a, b Color, tolerance int) bool {
	return absi(int(a.R)-int(b.R)) <= tolerance &&
		absi(int(a.G)-int(b.G)) <= tolerance &&
		absi(int(a.B)-int(b.B)) <= tolerance
}

func absi(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
