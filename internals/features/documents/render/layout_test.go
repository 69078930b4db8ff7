package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileRectsCounts(t *testing.T) {
	for layout, want := range map[int]int{1: 1, 2: 2, 4: 4, 9: 9, 0: 1, 3: 1, 16: 1} {
		assert.Len(t, TileRects(layout, 210, 297, 5), want, "layout %d", layout)
	}
}

func TestTileRectsStayOnPageWithoutOverlap(t *testing.T) {
	const pw, ph, m = 210.0, 297.0, 6.0
	for _, layout := range []int{1, 2, 4, 9} {
		rects := TileRects(layout, pw, ph, m)
		for i, a := range rects {
			assert.GreaterOrEqual(t, a.X, m-1e-9)
			assert.GreaterOrEqual(t, a.Y, m-1e-9)
			assert.LessOrEqual(t, a.X+a.W, pw-m+1e-9)
			assert.LessOrEqual(t, a.Y+a.H, ph-m+1e-9)
			for _, b := range rects[i+1:] {
				overlapX := a.X < b.X+b.W-1e-9 && b.X < a.X+a.W-1e-9
				overlapY := a.Y < b.Y+b.H-1e-9 && b.Y < a.Y+a.H-1e-9
				assert.False(t, overlapX && overlapY, "layout %d tiles overlap", layout)
			}
		}
	}
}

func TestTileRectsFourUp(t *testing.T) {
	r := TileRects(4, 210, 297, 10)
	assert.InDelta(t, 90, r[0].W, 1e-9)
	assert.InDelta(t, 133.5, r[0].H, 1e-9)
	assert.InDelta(t, 110, r[1].X, 1e-9)
	assert.InDelta(t, 153.5, r[2].Y, 1e-9)
}

func TestFitKeepsAspect(t *testing.T) {
	s, placed := Fit(210, 297, Rect{X: 0, Y: 0, W: 210, H: 148.5})
	assert.InDelta(t, 0.5, s, 1e-9)
	assert.InDelta(t, 105, placed.W, 1e-9)
	assert.InDelta(t, 52.5, placed.X, 1e-9)
}
