package preview

import (
	"strings"
	"testing"
	"time"

	"github.com/brensch/snek2svg/game"
	"github.com/brensch/snek2svg/snakesvg"
	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) Model {
	t.Helper()
	chain := game.Chain{
		{{X: 0, Y: 0}, {X: 0, Y: 1}},
		{{X: 1, Y: 0}, {X: 0, Y: 0}},
		{{X: 2, Y: 0}, {X: 1, Y: 0}},
	}
	anim, err := snakesvg.Animate(chain, snakesvg.DefaultOptions(), 300*time.Millisecond)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	return New(chain, anim, 3, 2)
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStepping(t *testing.T) {
	m := testModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Frame() != 1 {
		t.Fatalf("frame=%d want 1", m.Frame())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Frame() != 2 {
		t.Fatalf("frame=%d want 2 after wrapping back", m.Frame())
	}
	m, _ = press(m, runes("g"))
	if m.Frame() != 0 {
		t.Fatalf("frame=%d want 0", m.Frame())
	}
}

func TestPlayback(t *testing.T) {
	m := testModel(t)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatalf("expected a tick command when playing")
	}
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Frame() != 1 || cmd == nil {
		t.Fatalf("tick while playing: frame=%d cmd=%v", m.Frame(), cmd)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	next, cmd = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Frame() != 1 || cmd != nil {
		t.Fatalf("tick while paused: frame=%d cmd=%v", m.Frame(), cmd)
	}
}

func TestQuit(t *testing.T) {
	_, cmd := press(testModel(t), runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	m := testModel(t)
	view := m.View()
	for _, want := range []string{"frame 1/3", "keyframes 5/6", "keyframes at this frame: 2/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	// Frame 2 (index 1) only has the tail's keyframe.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if view := m.View(); !strings.Contains(view, "keyframes at this frame: 1/2") {
		t.Errorf("frame 2 view:\n%s", view)
	}
}
