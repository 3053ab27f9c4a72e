// Package preview is a terminal player for a chain and its animation.
//
// It steps through the frames on the board and marks, per frame, how many
// segments still carry a keyframe there, which makes it easy to see what
// compression dropped.
package preview

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brensch/snek2svg/game"
	"github.com/brensch/snek2svg/snakesvg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

type TickMsg time.Time

type Model struct {
	chain  game.Chain
	anim   *snakesvg.Animation
	width  int32
	height int32

	frame   int
	playing bool

	// keyed[f] is the number of segments with a keyframe at frame f.
	keyed []int
}

// New builds a preview of chain on a width × height board. chain must be the
// chain anim was built from.
func New(chain game.Chain, anim *snakesvg.Animation, width, height int32) Model {
	m := Model{
		chain:  chain,
		anim:   anim,
		width:  width,
		height: height,
		keyed:  make([]int, len(chain)),
	}
	n := float64(len(chain))
	for _, t := range anim.Tracks {
		for _, k := range t.Keyframes {
			f := int(math.Round(k.T * n))
			if f >= 0 && f < len(m.keyed) {
				m.keyed[f]++
			}
		}
	}
	return m
}

// Frame is the frame currently shown.
func (m Model) Frame() int { return m.frame }

func (m Model) interval() time.Duration {
	if len(m.chain) == 0 {
		return time.Second
	}
	d := m.anim.Duration / time.Duration(len(m.chain))
	if d < 10*time.Millisecond {
		d = 10 * time.Millisecond
	}
	return d
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.playing = false
			m.step(1)
		case "left", "h":
			m.playing = false
			m.step(-1)
		case "home", "g":
			m.playing = false
			m.frame = 0
		case " ", "p":
			m.playing = !m.playing
			if m.playing {
				return m, m.tickCmd()
			}
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		m.step(1)
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) step(d int) {
	n := len(m.chain)
	if n == 0 {
		return
	}
	m.frame = ((m.frame+d)%n + n) % n
}

func (m Model) View() string {
	var b strings.Builder
	stats := m.anim.Stats()
	b.WriteString(titleStyle.Render(fmt.Sprintf("frame %d/%d", m.frame+1, len(m.chain))))
	b.WriteString(fmt.Sprintf("  segments %d  keyframes %d/%d  loop %s\n\n",
		stats.Segments, stats.KeptKeyframes, stats.RawKeyframes, m.anim.Duration))

	if len(m.chain) > 0 {
		m.writeBoard(&b, m.chain[m.frame])
		b.WriteString(fmt.Sprintf("\nkeyframes at this frame: %d/%d\n", m.keyed[m.frame], stats.Segments))
	} else {
		b.WriteString("(empty chain)\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ step · space play/pause · g start · q quit"))
	b.WriteString("\n")
	return b.String()
}

// writeBoard draws rows top to bottom; chains are already in screen
// coordinates.
func (m Model) writeBoard(b *strings.Builder, body game.SnakeState) {
	cells := make(map[game.Point]int, len(body))
	for i := len(body) - 1; i >= 0; i-- {
		cells[body[i]] = i
	}
	for y := int32(0); y < m.height; y++ {
		for x := int32(0); x < m.width; x++ {
			i, ok := cells[game.Point{X: x, Y: y}]
			switch {
			case ok && i == 0:
				b.WriteString(headStyle.Render("H"))
			case ok:
				b.WriteString(bodyStyle.Render("o"))
			default:
				b.WriteString(emptyStyle.Render("."))
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
}

// Run shows the preview until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
