package snakesvg

import (
	"math"

	"github.com/brensch/snek2svg/game"
)

// interpolationTolerance is how close (in cells, per axis) a point must be to
// the midpoint of its neighbours to count as redundant.
const interpolationTolerance = 0.01

// TimedPoint is a cell position at a normalized time T in [0,1) of the loop.
type TimedPoint struct {
	X int32
	Y int32
	T float64
}

// Timed stamps a position history with T = i/len(history).
func Timed(history []game.Point) []TimedPoint {
	out := make([]TimedPoint, len(history))
	n := float64(len(history))
	for i, p := range history {
		out[i] = TimedPoint{X: p.X, Y: p.Y, T: float64(i) / n}
	}
	return out
}

// RemoveInterpolated drops interior points that sit at the midpoint of their
// two neighbours, since a linear player lands on them anyway. The first and
// last points are always kept.
//
// Each point is compared against its neighbours in the input, not in the
// output, and the input is walked once. A point that would only become
// redundant after another removal is kept.
func RemoveInterpolated(points []TimedPoint) []TimedPoint {
	out := make([]TimedPoint, 0, len(points))
	for i, p := range points {
		if i == 0 || i == len(points)-1 {
			out = append(out, p)
			continue
		}
		a, b := points[i-1], points[i+1]
		ex := (float64(a.X) + float64(b.X)) / 2
		ey := (float64(a.Y) + float64(b.Y)) / 2
		if math.Abs(ex-float64(p.X)) < interpolationTolerance && math.Abs(ey-float64(p.Y)) < interpolationTolerance {
			continue
		}
		out = append(out, p)
	}
	return out
}
