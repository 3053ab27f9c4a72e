package snakesvg

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brensch/snek2svg/game"
)

func chainOf(states ...[]game.Point) game.Chain {
	c := make(game.Chain, len(states))
	for i, s := range states {
		c[i] = game.SnakeState(s)
	}
	return c
}

func scenarioChain() game.Chain {
	return chainOf(
		history(0, 0, 0, 1),
		history(1, 0, 0, 0),
		history(2, 0, 1, 0),
	)
}

func TestAnimate_Scenario(t *testing.T) {
	a, err := Animate(scenarioChain(), DefaultOptions(), 900*time.Millisecond)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if len(a.Shapes) != 2 || len(a.Tracks) != 2 {
		t.Fatalf("got %d shapes %d tracks want 2/2", len(a.Shapes), len(a.Tracks))
	}

	head := a.Tracks[0]
	if len(head.Keyframes) != 2 {
		t.Fatalf("head keyframes=%+v want first and last frame only", head.Keyframes)
	}
	if head.Keyframes[0] != (TimedPoint{X: 0, Y: 0, T: 0}) || head.Keyframes[1] != (TimedPoint{X: 2, Y: 0, T: 2.0 / 3}) {
		t.Fatalf("head keyframes=%+v", head.Keyframes)
	}

	tail := a.Tracks[1]
	if len(tail.Keyframes) != 3 {
		t.Fatalf("tail keyframes=%+v want all 3", tail.Keyframes)
	}
	if tail.Base != (game.Point{X: 0, Y: 1}) {
		t.Fatalf("tail base=%v want (0,1)", tail.Base)
	}

	if s := a.Stats(); s.RawKeyframes != 6 || s.KeptKeyframes != 5 || s.Frames != 3 || s.Segments != 2 {
		t.Fatalf("stats=%+v", s)
	}
}

func TestAnimate_Style(t *testing.T) {
	a, err := Animate(scenarioChain(), DefaultOptions(), 900*time.Millisecond)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}

	want := strings.Join([]string{
		"rect.s{shape-rendering:geometricPrecision;fill:purple}",
		"@keyframes as0{0.00%{transform:translate(0px,0px)}66.67%{transform:translate(32px,0px)}}",
		"#s0{transform:translate(0px,0px);animation:as0 linear 900ms infinite}",
		"@keyframes as1{0.00%{transform:translate(0px,16px)}33.33%{transform:translate(0px,0px)}66.67%{transform:translate(16px,0px)}}",
		"#s1{transform:translate(0px,16px);animation:as1 linear 900ms infinite}",
	}, "\n")
	if a.Style != want {
		t.Fatalf("style:\n%s\nwant:\n%s", a.Style, want)
	}
}

func TestAnimate_SingleFrame(t *testing.T) {
	a, err := Animate(chainOf(history(3, 3, 3, 4, 3, 5)), DefaultOptions(), time.Second)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	for i, tr := range a.Tracks {
		if len(tr.Keyframes) != 1 {
			t.Fatalf("segment %d has %d keyframes want 1", i, len(tr.Keyframes))
		}
		if want := (game.Point{X: 3, Y: int32(3 + i)}); tr.Base != want {
			t.Fatalf("segment %d base=%v want %v", i, tr.Base, want)
		}
	}
}

func TestAnimate_EmptyChain(t *testing.T) {
	a, err := Animate(nil, DefaultOptions(), time.Second)
	if err != nil {
		t.Fatalf("Animate(nil): %v", err)
	}
	if len(a.Shapes) != 0 || len(a.Tracks) != 0 {
		t.Fatalf("expected no segments, got %d shapes %d tracks", len(a.Shapes), len(a.Tracks))
	}
	if strings.Contains(a.Style, "@keyframes") {
		t.Fatalf("unexpected keyframes in %q", a.Style)
	}
}

func TestAnimate_Rejects(t *testing.T) {
	badOpts := DefaultOptions()
	badOpts.SizeDot = 0

	tests := []struct {
		name     string
		chain    game.Chain
		opts     Options
		duration time.Duration
	}{
		{name: "ragged chain", chain: chainOf(history(0, 0, 0, 1), history(1, 0)), opts: DefaultOptions(), duration: time.Second},
		{name: "zero duration", chain: scenarioChain(), opts: DefaultOptions(), duration: 0},
		{name: "negative duration", chain: scenarioChain(), opts: DefaultOptions(), duration: -time.Second},
		{name: "zero dot", chain: scenarioChain(), opts: badOpts, duration: time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Animate(tt.chain, tt.opts, tt.duration)
			if !errors.Is(err, game.ErrInvalidChain) {
				t.Fatalf("expected ErrInvalidChain, got %v", err)
			}
			if a != nil {
				t.Fatalf("expected nil animation on error")
			}
		})
	}
}

func TestAnimate_FractionalDuration(t *testing.T) {
	a, err := Animate(scenarioChain(), DefaultOptions(), 1500*time.Microsecond)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	if !strings.Contains(a.Style, "linear 1.5ms infinite") {
		t.Fatalf("style does not carry 1.5ms: %s", a.Style)
	}
}
