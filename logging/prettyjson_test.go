package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("decode: %v\n%s", err, buf.String())
		}
		out = append(out, m)
	}
	return out
}

func TestPrettyJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&buf, nil))

	logger.With("game_id", "g1").WithGroup("track").Info("compressed",
		"segment", "s0",
		"kept", 2,
		slog.Group("frames", "raw", 3),
	)
	logger.Debug("hidden")
	logger.Warn("failed", "err", errors.New("boom"))

	if !strings.Contains(buf.String(), "\n  \"") {
		t.Fatalf("expected indented output:\n%s", buf.String())
	}

	recs := decodeRecords(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("got %d records want 2 (debug filtered)", len(recs))
	}

	first := recs[0]
	if first["msg"] != "compressed" || first["level"] != "INFO" {
		t.Fatalf("unexpected record %v", first)
	}
	if first["game_id"] != "g1" {
		t.Fatalf("attr added before the group must stay top-level: %v", first)
	}
	track, ok := first["track"].(map[string]any)
	if !ok {
		t.Fatalf("missing track group: %v", first)
	}
	if track["segment"] != "s0" || track["kept"] != float64(2) {
		t.Fatalf("track group=%v", track)
	}
	frames, ok := track["frames"].(map[string]any)
	if !ok || frames["raw"] != float64(3) {
		t.Fatalf("nested group=%v", track["frames"])
	}

	if recs[1]["err"] != "boom" {
		t.Fatalf("error attr=%v", recs[1]["err"])
	}
}

func TestPrettyJSONHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("shown")
	if recs := decodeRecords(t, &buf); len(recs) != 1 {
		t.Fatalf("got %d records want 1", len(recs))
	}
}
