package snakesvg

import (
	"fmt"
	"os"
	"strings"

	"github.com/brensch/snek2svg/game"
	"github.com/goccy/go-json"
	"github.com/lucasb-eyer/go-colorful"
)

// Options is the drawing theme. Sizes are in pixels.
type Options struct {
	SizeCell   float64 `json:"sizeCell"`
	SizeDot    float64 `json:"sizeDot"`
	ColorSnake string  `json:"colorSnake"`

	// Background grid. Empty ColorEmpty disables it.
	ColorEmpty       string  `json:"colorEmpty,omitempty"`
	ColorBorder      string  `json:"colorBorder,omitempty"`
	SizeBorderRadius float64 `json:"sizeBorderRadius,omitempty"`
}

// DefaultOptions returns the stock light theme.
func DefaultOptions() Options {
	return Options{
		SizeCell:         16,
		SizeDot:          12,
		ColorSnake:       "purple",
		ColorEmpty:       "#ebedf0",
		ColorBorder:      "#1b1f230a",
		SizeBorderRadius: 2,
	}
}

// LoadOptions reads a JSON theme file. Fields missing from the file keep
// their DefaultOptions value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	if err := json.Unmarshal(b, &opts); err != nil {
		return Options{}, fmt.Errorf("decode options %s: %w", path, err)
	}
	return opts.normalized()
}

// Validate reports the first problem that would stop Animate.
func (o Options) Validate() error {
	_, err := o.normalized()
	return err
}

func (o Options) normalized() (Options, error) {
	if o.SizeCell <= 0 {
		return Options{}, optionError("sizeCell must be positive, got %v", o.SizeCell)
	}
	if o.SizeDot <= 0 {
		return Options{}, optionError("sizeDot must be positive, got %v", o.SizeDot)
	}
	if o.SizeBorderRadius < 0 {
		return Options{}, optionError("sizeBorderRadius must not be negative, got %v", o.SizeBorderRadius)
	}

	var err error
	if o.ColorSnake, err = normalizeColor(o.ColorSnake); err != nil {
		return Options{}, optionError("colorSnake: %v", err)
	}
	if o.ColorSnake == "" {
		return Options{}, optionError("colorSnake is required")
	}
	if o.ColorEmpty, err = normalizeColor(o.ColorEmpty); err != nil {
		return Options{}, optionError("colorEmpty: %v", err)
	}
	if o.ColorBorder, err = normalizeColor(o.ColorBorder); err != nil {
		return Options{}, optionError("colorBorder: %v", err)
	}
	return o, nil
}

// normalizeColor rewrites #rgb and #rrggbb colors to lower-case #rrggbb.
// Anything else (named colors, #rrggbbaa, rgb()) is passed through trimmed,
// since the browser is the authority on CSS color syntax.
func normalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ";{}<>\"") {
		return "", fmt.Errorf("%q is not a color", s)
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return s, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%q: %w", s, err)
	}
	return c.Hex(), nil
}

func optionError(format string, args ...any) error {
	return &game.InvalidChainError{Frame: -1, Reason: fmt.Sprintf(format, args...)}
}
