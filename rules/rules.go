// Package rules moves a single snake across the board.
//
// It is not a game engine: there is no food, health or collision, only the
// body update a move causes. Walk is what turns a move string into a chain
// for the renderer.
package rules

import (
	"fmt"
	"strings"

	"github.com/brensch/snek2svg/game"
)

type Move int

const (
	MoveUp    Move = 0
	MoveDown  Move = 1
	MoveLeft  Move = 2
	MoveRight Move = 3
)

// Step is one turn of a walk. Grow keeps the tail in place for that turn,
// the same as eating food.
type Step struct {
	Move Move
	Grow bool
}

// ParseMoves reads a move string such as "uurrDd".
// u/d/l/r are up/down/left/right; an upper-case letter grows the snake on
// that turn. Whitespace and commas are ignored.
func ParseMoves(s string) ([]Step, error) {
	steps := make([]Step, 0, len(s))
	for i, r := range s {
		switch r {
		case ' ', '\t', '\n', ',':
			continue
		}
		var m Move
		switch strings.ToLower(string(r)) {
		case "u":
			m = MoveUp
		case "d":
			m = MoveDown
		case "l":
			m = MoveLeft
		case "r":
			m = MoveRight
		default:
			return nil, fmt.Errorf("move %q at offset %d: want one of u,d,l,r", r, i)
		}
		steps = append(steps, Step{Move: m, Grow: r >= 'A' && r <= 'Z'})
	}
	return steps, nil
}

// NextBody returns the body after applying move. The head advances one cell
// and every other segment takes the place of the one before it. When grow is
// set the old tail stays, so the body is one longer.
func NextBody(body game.SnakeState, move Move, grow bool) game.SnakeState {
	if len(body) == 0 {
		return nil
	}

	head := body[0]
	switch move {
	case MoveUp:
		head.Y++
	case MoveDown:
		head.Y--
	case MoveLeft:
		head.X--
	case MoveRight:
		head.X++
	}

	n := len(body)
	if grow {
		n++
	}
	out := make(game.SnakeState, 0, n)
	out = append(out, head)
	out = append(out, body[:n-1]...)
	return out
}

// Walk plays steps from start and returns every body along the way, start
// included. Moves that leave the width × height board or reverse into the
// neck are rejected.
func Walk(start game.SnakeState, steps []Step, width, height int32) (game.Chain, error) {
	if len(start) == 0 {
		return nil, fmt.Errorf("start body is empty")
	}
	for i, p := range start {
		if !inBounds(p, width, height) {
			return nil, fmt.Errorf("start segment %d at (%d,%d) is off the %dx%d board", i, p.X, p.Y, width, height)
		}
	}

	chain := make(game.Chain, 0, len(steps)+1)
	body := append(game.SnakeState(nil), start...)
	chain = append(chain, body)

	for turn, st := range steps {
		next := NextBody(body, st.Move, st.Grow)
		head := next[0]
		if !inBounds(head, width, height) {
			return nil, fmt.Errorf("turn %d: head leaves the board at (%d,%d)", turn+1, head.X, head.Y)
		}
		if len(body) > 1 && head == body[1] && body[0] != body[1] {
			return nil, fmt.Errorf("turn %d: move reverses into the neck", turn+1)
		}
		chain = append(chain, next)
		body = next
	}
	return chain, nil
}

func inBounds(p game.Point, width, height int32) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}
