// Package logging holds the slog setup shared by the commands.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// PrettyJSONHandler is a slog.Handler that writes each record as an indented
// JSON object. Groups become nested objects. It is meant for a person
// watching a terminal, not for log shipping.
type PrettyJSONHandler struct {
	w    io.Writer
	mu   *sync.Mutex
	opts slog.HandlerOptions

	// preformatted attrs from WithAttrs, each under the groups open at the
	// time they were added
	attrs []groupedAttr
	group []string
}

type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyJSONHandler {
	h := &PrettyJSONHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *PrettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *PrettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload := map[string]any{
		slog.TimeKey:    when.Format(time.RFC3339Nano),
		slog.LevelKey:   r.Level.String(),
		slog.MessageKey: r.Message,
	}
	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			payload[slog.SourceKey] = src.File + ":" + strconv.Itoa(src.Line)
		}
	}

	for _, ga := range h.attrs {
		h.put(payload, ga.groups, ga.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.put(payload, h.group, a)
		return true
	})

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Keep the message even if an attribute can't be encoded.
		b = []byte(`{"msg":` + strconv.Quote(r.Message) + `,"log_error":` + strconv.Quote(err.Error()) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *PrettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]groupedAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, groupedAttr{groups: h.group, attr: a})
	}
	return &clone
}

func (h *PrettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = append(append([]string(nil), h.group...), name)
	return &clone
}

func (h *PrettyJSONHandler) put(root map[string]any, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	dst := root
	for _, g := range groups {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}

	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		if len(members) == 0 {
			return
		}
		sub := groups
		if a.Key != "" {
			sub = append(append([]string(nil), groups...), a.Key)
		}
		for _, m := range members {
			h.put(root, sub, m)
		}
		return
	}
	dst[a.Key] = value(a.Value)
}

func value(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}

// New returns a logger writing to stderr: indented JSON when pretty is set,
// slog's text format otherwise.
func New(pretty bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if pretty {
		return slog.New(NewPrettyJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
