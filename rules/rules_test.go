package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brensch/snek2svg/game"
)

func dumpBody(body game.SnakeState) string {
	var b strings.Builder
	for _, p := range body {
		fmt.Fprintf(&b, " (%d,%d)", p.X, p.Y)
	}
	return b.String()
}

func logWalk(t *testing.T, chain game.Chain) {
	t.Helper()
	var b strings.Builder
	for i, body := range chain {
		fmt.Fprintf(&b, "turn %d:%s\n", i, dumpBody(body))
	}
	t.Logf("walk:\n%s", b.String())
}

func TestParseMoves(t *testing.T) {
	steps, err := ParseMoves("u r, D l")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	want := []Step{
		{Move: MoveUp},
		{Move: MoveRight},
		{Move: MoveDown, Grow: true},
		{Move: MoveLeft},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step[%d]=%+v want=%+v", i, steps[i], want[i])
		}
	}

	if _, err := ParseMoves("ux"); err == nil {
		t.Fatalf("expected error for unknown move")
	}
}

func TestNextBody_NormalMove(t *testing.T) {
	body := game.SnakeState{{X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1}}
	got := NextBody(body, MoveUp, false)
	want := game.SnakeState{{X: 3, Y: 4}, {X: 3, Y: 3}, {X: 3, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestNextBody_GrowKeepsTail(t *testing.T) {
	body := game.SnakeState{{X: 3, Y: 3}, {X: 3, Y: 2}}
	got := NextBody(body, MoveRight, true)
	want := game.SnakeState{{X: 4, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d (%s)", len(got), len(want), dumpBody(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestWalk(t *testing.T) {
	steps, _ := ParseMoves("rrU")
	start := game.SnakeState{{X: 0, Y: 0}, {X: 0, Y: 0}}

	chain, err := Walk(start, steps, 5, 5)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	logWalk(t, chain)

	if len(chain) != 4 {
		t.Fatalf("chain has %d frames want 4", len(chain))
	}
	if got := chain[3]; len(got) != 3 || got[0] != (game.Point{X: 2, Y: 1}) {
		t.Fatalf("last body =%s", dumpBody(got))
	}
	// Growth makes the chain ragged until it is padded.
	if err := chain.Validate(); err == nil {
		t.Fatalf("expected ragged chain")
	}
	if err := game.PadChain(chain).Validate(); err != nil {
		t.Fatalf("padded chain: %v", err)
	}
}

func TestWalkRejectsIllegalMoves(t *testing.T) {
	tests := []struct {
		name  string
		start game.SnakeState
		moves string
	}{
		{name: "off board", start: game.SnakeState{{X: 0, Y: 0}}, moves: "l"},
		{name: "neck", start: game.SnakeState{{X: 1, Y: 1}, {X: 1, Y: 0}}, moves: "d"},
		{name: "start off board", start: game.SnakeState{{X: 9, Y: 9}}, moves: "u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := ParseMoves(tt.moves)
			if err != nil {
				t.Fatalf("ParseMoves: %v", err)
			}
			if _, err := Walk(tt.start, steps, 3, 3); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
