package snakesvg

import (
	"strconv"
	"strings"
	"time"

	"github.com/brensch/snek2svg/game"
)

func buildStyle(opts Options, tracks []MotionTrack) string {
	var b strings.Builder
	b.WriteString("rect.s{shape-rendering:geometricPrecision;fill:")
	b.WriteString(opts.ColorSnake)
	b.WriteString("}")

	for _, t := range tracks {
		name := "a" + t.SegmentID

		b.WriteString("\n@keyframes ")
		b.WriteString(name)
		b.WriteString("{")
		for _, k := range t.Keyframes {
			b.WriteString(Percent(k.T))
			b.WriteString("%{")
			b.WriteString(translate(game.Point{X: k.X, Y: k.Y}, opts.SizeCell))
			b.WriteString("}")
		}
		b.WriteString("}")

		b.WriteString("\n#")
		b.WriteString(t.SegmentID)
		b.WriteString("{")
		b.WriteString(translate(t.Base, opts.SizeCell))
		b.WriteString(";animation:")
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(Timing)
		b.WriteString(" ")
		b.WriteString(milliseconds(t.Loop))
		b.WriteString(" infinite}")
	}
	return b.String()
}

func translate(p game.Point, sizeCell float64) string {
	return "transform:translate(" +
		formatNumber(float64(p.X)*sizeCell) + "px," +
		formatNumber(float64(p.Y)*sizeCell) + "px)"
}

func milliseconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', -1, 64) + "ms"
}
