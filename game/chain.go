package game

import (
	"errors"
	"fmt"
)

// SnakeState is the body of one snake in one frame, head first.
type SnakeState []Point

// Chain is a snake's body over time, one state per animation frame in
// playback order. Every state must have the length of the first one.
type Chain []SnakeState

// ErrInvalidChain is matched by every *InvalidChainError.
var ErrInvalidChain = errors.New("invalid chain")

// InvalidChainError reports input the renderer refuses to draw.
// Frame is -1 when the problem is not tied to a frame.
type InvalidChainError struct {
	Frame  int
	Reason string
}

func (e *InvalidChainError) Error() string {
	if e.Frame < 0 {
		return "invalid chain: " + e.Reason
	}
	return fmt.Sprintf("invalid chain: frame %d: %s", e.Frame, e.Reason)
}

func (e *InvalidChainError) Is(target error) bool {
	return target == ErrInvalidChain
}

// SegmentCount is the length of the first state, or 0 for an empty chain.
func (c Chain) SegmentCount() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Validate checks that every state has the length of the first one.
func (c Chain) Validate() error {
	n := c.SegmentCount()
	for i, s := range c {
		if len(s) != n {
			return &InvalidChainError{
				Frame:  i,
				Reason: fmt.Sprintf("state has %d segments, want %d", len(s), n),
			}
		}
	}
	return nil
}

// Bounds returns the grid size needed to hold every point of the chain,
// i.e. max coordinate + 1 on each axis. Negative coordinates are ignored.
func (c Chain) Bounds() (width, height int32) {
	for _, s := range c {
		for _, p := range s {
			if p.X+1 > width {
				width = p.X + 1
			}
			if p.Y+1 > height {
				height = p.Y + 1
			}
		}
	}
	return width, height
}

// SegmentTable is the transposed chain: a fixed segments × frames arena.
// Row i is the position history of segment i.
type SegmentTable struct {
	segments int
	frames   int
	cells    []Point
}

// NewSegmentTable validates the chain and transposes it.
func NewSegmentTable(c Chain) (*SegmentTable, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	t := &SegmentTable{
		segments: c.SegmentCount(),
		frames:   len(c),
	}
	t.cells = make([]Point, t.segments*t.frames)
	for f, state := range c {
		for s, p := range state {
			t.cells[s*t.frames+f] = p
		}
	}
	return t, nil
}

func (t *SegmentTable) Segments() int { return t.segments }
func (t *SegmentTable) Frames() int { return t.frames }

// History returns segment i's position across all frames. The slice aliases
// the table and must not be modified.
func (t *SegmentTable) History(i int) []Point {
	return t.cells[i*t.frames : (i+1)*t.frames : (i+1)*t.frames]
}

// PadChain returns a copy of c where every state is extended to the longest
// state's length by repeating its tail. This is how a snake that grows during
// a game is drawn: the new segment sits stacked on the tail until it moves.
// States with no points cannot be padded and are kept empty, so Validate
// still rejects them.
func PadChain(c Chain) Chain {
	n := 0
	for _, s := range c {
		if len(s) > n {
			n = len(s)
		}
	}
	out := make(Chain, len(c))
	for i, s := range c {
		padded := make(SnakeState, len(s), n)
		copy(padded, s)
		if len(s) > 0 {
			tail := s[len(s)-1]
			for len(padded) < n {
				padded = append(padded, tail)
			}
		}
		out[i] = padded
	}
	return out
}

// FlipY mirrors the chain vertically on a board of the given height,
// converting bottom-left engine coordinates to top-left screen coordinates.
func FlipY(c Chain, height int32) Chain {
	out := make(Chain, len(c))
	for i, s := range c {
		flipped := make(SnakeState, len(s))
		for j, p := range s {
			flipped[j] = Point{X: p.X, Y: height - 1 - p.Y}
		}
		out[i] = flipped
	}
	return out
}

// ChainFor pulls the body of one snake out of a sequence of game states.
// The chain ends at the first state where the snake is missing or has an
// empty body, which is how eliminated snakes show up in recorded games.
func ChainFor(states []GameState, snakeID string) Chain {
	var out Chain
	for i := range states {
		s := states[i].SnakeByID(snakeID)
		if s == nil || len(s.Body) == 0 {
			break
		}
		body := make(SnakeState, len(s.Body))
		copy(body, s.Body)
		out = append(out, body)
	}
	return out
}
