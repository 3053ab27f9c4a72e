// Package snakesvg turns a snake chain into an animated SVG.
//
// Every body segment becomes one rect sized by its rank (the head is the
// largest) and one CSS keyframe animation that moves it through the cells it
// occupied. Frames where a segment just keeps moving in a straight line at
// constant speed are dropped from its keyframes, since linear playback
// produces them anyway.
//
// Animate is pure and safe to call concurrently.
package snakesvg

import (
	"time"

	"github.com/brensch/snek2svg/game"
)

// Animation is the output bundle for one chain.
type Animation struct {
	Options  Options
	Duration time.Duration
	Frames   int

	Shapes []ShapeDescriptor
	Tracks []MotionTrack

	// Style is the CSS for Shapes: one shared rule for all segments, then a
	// @keyframes rule and an id rule per segment.
	Style string
}

// Stats summarises how much compression removed.
type Stats struct {
	Segments      int
	Frames        int
	RawKeyframes  int
	KeptKeyframes int
}

// Animate draws chain with opts, looping every duration.
// An empty chain yields an animation with no segments. A chain whose states
// differ in length, or invalid options or duration, yield an error matching
// game.ErrInvalidChain.
func Animate(chain game.Chain, opts Options, duration time.Duration) (*Animation, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, &game.InvalidChainError{Frame: -1, Reason: "duration must be positive, got " + duration.String()}
	}

	table, err := game.NewSegmentTable(chain)
	if err != nil {
		return nil, err
	}

	n := table.Segments()
	a := &Animation{
		Options:  opts,
		Duration: duration,
		Frames:   table.Frames(),
		Shapes:   make([]ShapeDescriptor, 0, n),
		Tracks:   make([]MotionTrack, 0, n),
	}
	for i := 0; i < n; i++ {
		a.Shapes = append(a.Shapes, SegmentProfile(i, n, opts.SizeDot, opts.SizeCell))
		a.Tracks = append(a.Tracks, BuildTrack(SegmentID(i), table.History(i), duration))
	}
	a.Style = buildStyle(opts, a.Tracks)
	return a, nil
}

// Stats counts keyframes before and after compression.
func (a *Animation) Stats() Stats {
	s := Stats{
		Segments: len(a.Tracks),
		Frames:   a.Frames,
	}
	s.RawKeyframes = s.Segments * s.Frames
	for _, t := range a.Tracks {
		s.KeptKeyframes += len(t.Keyframes)
	}
	return s
}
