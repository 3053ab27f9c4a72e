// Package store reads and writes recorded games as parquet archives.
//
// The layout is one row per (game, turn) with the snakes nested in the row,
// the archive_turn_v1 schema the scraper writes. Only the columns needed to
// rebuild bodies are declared here; parquet-go skips the rest on read.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/brensch/snek2svg/game"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const archiveSchema = "archive_turn_v1"

// ArchiveTurnRow is a single (game, turn) snapshot.
// Coordinates follow engine conventions: (0,0) is bottom-left.
type ArchiveTurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	Width  int32  `parquet:"width"`
	Height int32  `parquet:"height"`

	Snakes []ArchiveSnake `parquet:"snakes"`

	Source string `parquet:"source,dict"`
}

type ArchiveSnake struct {
	ID     string `parquet:"id,dict"`
	Alive  bool   `parquet:"alive"`
	Health int32  `parquet:"health"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`
}

// ErrGameNotFound is returned when an archive has no rows for a game.
var ErrGameNotFound = errors.New("game not found in archive")

// RowsFromStates converts a recorded game into archive rows.
func RowsFromStates(gameID, source string, states []game.GameState) []ArchiveTurnRow {
	rows := make([]ArchiveTurnRow, 0, len(states))
	for _, st := range states {
		row := ArchiveTurnRow{
			GameID: gameID,
			Turn:   st.Turn,
			Width:  st.Width,
			Height: st.Height,
			Snakes: make([]ArchiveSnake, 0, len(st.Snakes)),
			Source: source,
		}
		for _, s := range st.Snakes {
			as := ArchiveSnake{
				ID:     s.Id,
				Alive:  s.Health > 0 && len(s.Body) > 0,
				Health: s.Health,
				BodyX:  make([]int32, len(s.Body)),
				BodyY:  make([]int32, len(s.Body)),
			}
			for i, p := range s.Body {
				as.BodyX[i] = p.X
				as.BodyY[i] = p.Y
			}
			row.Snakes = append(row.Snakes, as)
		}
		rows = append(rows, row)
	}
	return rows
}

// StateFromRow rebuilds the game state of one row. Dead snakes are left out,
// so a snake's chain ends at the turn it was eliminated.
func StateFromRow(row ArchiveTurnRow) (game.GameState, error) {
	st := game.GameState{
		Width:  row.Width,
		Height: row.Height,
		Turn:   row.Turn,
	}
	for _, s := range row.Snakes {
		if !s.Alive {
			continue
		}
		if len(s.BodyX) != len(s.BodyY) {
			return game.GameState{}, fmt.Errorf("game %s turn %d snake %s: body_x has %d entries, body_y %d",
				row.GameID, row.Turn, s.ID, len(s.BodyX), len(s.BodyY))
		}
		body := make([]game.Point, len(s.BodyX))
		for i := range s.BodyX {
			body[i] = game.Point{X: s.BodyX[i], Y: s.BodyY[i]}
		}
		st.Snakes = append(st.Snakes, game.Snake{Id: s.ID, Health: s.Health, Body: body})
	}
	return st, nil
}

// ReadGame loads every turn of gameID from an archive file, ordered by turn.
// An empty gameID selects the first game in the file.
func ReadGame(path, gameID string) ([]game.GameState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[ArchiveTurnRow](f)
	defer reader.Close()

	var rows []ArchiveTurnRow
	for {
		// Fresh buffer per read: kept rows hold slices the reader would
		// otherwise reuse.
		buf := make([]ArchiveTurnRow, 256)
		n, err := reader.Read(buf)
		for i := 0; i < n; i++ {
			if gameID == "" {
				gameID = buf[i].GameID
			}
			if buf[i].GameID == gameID {
				rows = append(rows, buf[i])
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read archive %s: %w", path, err)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %q: %w", path, gameID, ErrGameNotFound)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Turn < rows[j].Turn })

	states := make([]game.GameState, 0, len(rows))
	for _, row := range rows {
		st, err := StateFromRow(row)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

// WriteArchive writes rows to outPath through a temp file and an atomic
// rename, so readers never see a partial archive.
func WriteArchive(outPath string, rows []ArchiveTurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", archiveSchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
