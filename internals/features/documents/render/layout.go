package render

import "math"

// Rect is a tile on the page, in the page's unit.
type Rect struct {
	X, Y, W, H float64
}

// GridFor returns columns × rows for a copies-per-page layout.
// Unsupported layouts fall back to a single copy.
func GridFor(layout int) (cols, rows int) {
	switch layout {
	case 2:
		return 1, 2
	case 4:
		return 2, 2
	case 9:
		return 3, 3
	default:
		return 1, 1
	}
}

// TileRects splits the page inside margin into an equal grid, row by row,
// with margin as the gap between tiles.
func TileRects(layout int, pageW, pageH, margin float64) []Rect {
	cols, rows := GridFor(layout)
	margin = math.Max(margin, 0)
	cellW := (pageW - margin*float64(cols+1)) / float64(cols)
	cellH := (pageH - margin*float64(rows+1)) / float64(rows)

	out := make([]Rect, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, Rect{
				X: margin + float64(c)*(cellW+margin),
				Y: margin + float64(r)*(cellH+margin),
				W: cellW,
				H: cellH,
			})
		}
	}
	return out
}

// Fit scales a srcW×srcH box into r keeping its aspect ratio and centres it.
// Returns the scale factor and the placed rectangle.
func Fit(srcW, srcH float64, r Rect) (float64, Rect) {
	if srcW <= 0 || srcH <= 0 {
		return 1, r
	}
	s := math.Min(r.W/srcW, r.H/srcH)
	w, h := srcW*s, srcH*s
	return s, Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}
