package face

import "math"

// Point is a display coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned display rectangle.
type Rect struct {
	X, Y, W, H int
}

// Inset shrinks r by n on every edge. An inset past the middle collapses
// the rect to its center.
func (r Rect) Inset(n int) Rect {
	half := min(r.W, r.H) / 2
	if n > half {
		n = half
	}
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Square returns the square of side r.H horizontally centered on r.
func (r Rect) Square() Rect {
	sq := r
	sq.W = sq.H
	sq.X -= (sq.W - r.W) / 2
	return sq
}

// PointFromPolar projects an angle (degrees clockwise from 12 o'clock) onto
// the circle inscribed in r.
//
// The center and radius are taken at half-pixel precision so that a 180px
// rect is centered at 89.5; the result is rounded to the nearest pixel.
func PointFromPolar(r Rect, angle int) Point {
	d := min(r.W, r.H)
	if d <= 1 {
		return Point{X: r.X, Y: r.Y}
	}
	cx := float64(2*r.X+r.W-1) / 2
	cy := float64(2*r.Y+r.H-1) / 2
	radius := float64(d-1) / 2

	rad := float64(angle) * math.Pi / 180
	return Point{
		X: int(math.Round(cx + radius*math.Sin(rad))),
		Y: int(math.Round(cy - radius*math.Cos(rad))),
	}
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
