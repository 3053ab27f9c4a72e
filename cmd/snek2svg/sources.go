package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brensch/snek2svg/engine"
	"github.com/brensch/snek2svg/game"
	"github.com/brensch/snek2svg/rules"
	"github.com/brensch/snek2svg/store"
	"github.com/goccy/go-json"
)

const defaultBoard = "11x11"

// sourceConfig selects where the chain comes from. Exactly one of Moves,
// ChainFile, Archive or EngineGame must be set.
type sourceConfig struct {
	Moves  string
	Start  string
	Length int
	Board  string

	ChainFile string

	Archive string
	GameID  string

	EngineGame  string
	Engine      engine.Config
	SaveArchive string

	SnakeID string
}

// loadedChain is a chain in screen coordinates plus the board it lives on.
type loadedChain struct {
	chain  game.Chain
	width  int32
	height int32
	label  string
}

func loadChain(ctx context.Context, cfg sourceConfig, logger *slog.Logger) (loadedChain, error) {
	set := 0
	for _, s := range []string{cfg.Moves, cfg.ChainFile, cfg.Archive, cfg.EngineGame} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return loadedChain{}, fmt.Errorf("pick exactly one of -moves, -chain, -archive, -engine-game")
	}

	switch {
	case cfg.Moves != "":
		return chainFromMoves(cfg)
	case cfg.ChainFile != "":
		return chainFromFile(cfg)
	case cfg.Archive != "":
		states, err := store.ReadGame(cfg.Archive, cfg.GameID)
		if err != nil {
			return loadedChain{}, err
		}
		return chainFromStates(states, cfg.SnakeID, "archive "+cfg.Archive)
	default:
		g, err := engine.NewClient(cfg.Engine, logger).Download(ctx, cfg.EngineGame)
		if err != nil {
			return loadedChain{}, fmt.Errorf("download %s: %w", cfg.EngineGame, err)
		}
		if cfg.SaveArchive != "" {
			if err := store.WriteArchive(cfg.SaveArchive, store.RowsFromStates(g.ID, "engine", g.States)); err != nil {
				return loadedChain{}, fmt.Errorf("save archive: %w", err)
			}
			logger.Info("saved archive", "path", cfg.SaveArchive, "turns", len(g.States))
		}
		lc, err := chainFromStates(g.States, cfg.SnakeID, "game "+g.ID)
		if err == nil && g.Names[cfg.SnakeID] != "" {
			lc.label = g.Names[cfg.SnakeID] + " in " + lc.label
		}
		return lc, err
	}
}

// chainFromMoves walks a snake stacked on its start cell, the way snakes
// enter a game.
func chainFromMoves(cfg sourceConfig) (loadedChain, error) {
	board := cfg.Board
	if board == "" {
		board = defaultBoard
	}
	w, h, err := parseBoard(board)
	if err != nil {
		return loadedChain{}, err
	}
	start, err := parsePoint(cfg.Start)
	if err != nil {
		return loadedChain{}, err
	}
	if cfg.Length <= 0 {
		return loadedChain{}, fmt.Errorf("length must be positive, got %d", cfg.Length)
	}
	steps, err := rules.ParseMoves(cfg.Moves)
	if err != nil {
		return loadedChain{}, err
	}

	body := make(game.SnakeState, cfg.Length)
	for i := range body {
		body[i] = start
	}
	chain, err := rules.Walk(body, steps, w, h)
	if err != nil {
		return loadedChain{}, err
	}
	return loadedChain{chain: game.FlipY(chain, h), width: w, height: h, label: "moves"}, nil
}

// chainFromFile reads a JSON array of bodies, each an array of {"x","y"}
// points in screen coordinates.
func chainFromFile(cfg sourceConfig) (loadedChain, error) {
	b, err := os.ReadFile(cfg.ChainFile)
	if err != nil {
		return loadedChain{}, fmt.Errorf("read chain: %w", err)
	}
	var chain game.Chain
	if err := json.Unmarshal(b, &chain); err != nil {
		return loadedChain{}, fmt.Errorf("decode chain %s: %w", cfg.ChainFile, err)
	}

	w, h := chain.Bounds()
	if cfg.Board != "" {
		if w, h, err = parseBoard(cfg.Board); err != nil {
			return loadedChain{}, err
		}
	}
	return loadedChain{chain: chain, width: w, height: h, label: cfg.ChainFile}, nil
}

func chainFromStates(states []game.GameState, snakeID, label string) (loadedChain, error) {
	if len(states) == 0 {
		return loadedChain{}, fmt.Errorf("%s has no turns", label)
	}
	if snakeID == "" {
		if len(states[0].Snakes) == 0 {
			return loadedChain{}, fmt.Errorf("%s has no snakes", label)
		}
		snakeID = states[0].Snakes[0].Id
	}

	chain := game.ChainFor(states, snakeID)
	if len(chain) == 0 {
		return loadedChain{}, fmt.Errorf("snake %q not found in %s", snakeID, label)
	}

	w, h := states[0].Width, states[0].Height
	if w <= 0 || h <= 0 {
		w, h = chain.Bounds()
	}
	return loadedChain{chain: game.FlipY(chain, h), width: w, height: h, label: label}, nil
}

func parseBoard(s string) (int32, int32, error) {
	var w, h int32
	if _, err := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("board %q: want WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

func parsePoint(s string) (game.Point, error) {
	var p game.Point
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d,%d", &p.X, &p.Y); err != nil {
		return game.Point{}, fmt.Errorf("point %q: want X,Y", s)
	}
	return p, nil
}
