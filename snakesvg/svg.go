package snakesvg

import (
	"fmt"
	"io"
	"strings"
)

// WriteDocument writes a standalone SVG of a width × height cell board with
// the animation on top. When Options.ColorEmpty is set every cell also gets
// an empty dot underneath the snake.
func WriteDocument(w io.Writer, a *Animation, width, height int32) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid board size %dx%d", width, height)
	}
	opts := a.Options
	pw := formatNumber(float64(width) * opts.SizeCell)
	ph := formatNumber(float64(height) * opts.SizeCell)

	var b strings.Builder
	b.WriteString(`<svg viewBox="0 0 ` + pw + ` ` + ph + `" width="` + pw + `" height="` + ph + `" xmlns="http://www.w3.org/2000/svg">`)
	b.WriteString("<style>")
	if opts.ColorEmpty != "" {
		b.WriteString("rect.c{fill:" + opts.ColorEmpty)
		if opts.ColorBorder != "" {
			b.WriteString(";stroke:" + opts.ColorBorder + ";stroke-width:1px")
		}
		b.WriteString("}\n")
	}
	b.WriteString(a.Style)
	b.WriteString("</style>")

	if opts.ColorEmpty != "" {
		writeGrid(&b, opts, width, height)
	}
	for _, s := range a.Shapes {
		b.WriteString(s.Element())
	}
	b.WriteString("</svg>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func writeGrid(b *strings.Builder, opts Options, width, height int32) {
	m := (opts.SizeCell - opts.SizeDot) / 2
	size := formatNumber(opts.SizeDot)
	r := formatNumber(opts.SizeBorderRadius)
	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			fmt.Fprintf(b, `<rect class="c" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s"/>`,
				formatNumber(float64(x)*opts.SizeCell+m),
				formatNumber(float64(y)*opts.SizeCell+m),
				size, size, r, r)
		}
	}
}
