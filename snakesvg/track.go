package snakesvg

import (
	"math"
	"time"

	"github.com/brensch/snek2svg/game"
)

// Timing is the CSS timing function every track is played with.
//
// Tracks are only correct under linear playback: RemoveInterpolated drops
// the points a linear player reproduces on its own. Anything that replays a
// MotionTrack must interpolate the way PositionAt does.
const Timing = "linear"

// MotionTrack is the compressed animation of one segment.
type MotionTrack struct {
	SegmentID string
	// Base is the segment's position in the first frame. It is the static
	// placement before the animation applies and the position the loop
	// returns to at T=1.
	Base      game.Point
	Keyframes []TimedPoint
	Loop      time.Duration
}

// BuildTrack compresses one segment's position history into a track.
func BuildTrack(segmentID string, history []game.Point, loop time.Duration) MotionTrack {
	track := MotionTrack{
		SegmentID: segmentID,
		Keyframes: RemoveInterpolated(Timed(history)),
		Loop:      loop,
	}
	if len(history) > 0 {
		track.Base = history[0]
	}
	return track
}

// PositionAt plays the track linearly at normalized time t, in cells.
// Times outside [0,1) wrap. After the last keyframe the segment moves back
// towards Base, reached at t=1.
func (m MotionTrack) PositionAt(t float64) (x, y float64) {
	if len(m.Keyframes) == 0 {
		return float64(m.Base.X), float64(m.Base.Y)
	}
	t -= math.Floor(t)

	j := 0
	for j+1 < len(m.Keyframes) && m.Keyframes[j+1].T <= t {
		j++
	}
	from := m.Keyframes[j]
	toX, toY, toT := float64(m.Base.X), float64(m.Base.Y), 1.0
	if j+1 < len(m.Keyframes) {
		next := m.Keyframes[j+1]
		toX, toY, toT = float64(next.X), float64(next.Y), next.T
	}

	if t <= from.T || toT <= from.T {
		return float64(from.X), float64(from.Y)
	}
	k := (t - from.T) / (toT - from.T)
	return Lerp(k, float64(from.X), toX), Lerp(k, float64(from.Y), toY)
}
