// Package engine downloads recorded games from the game engine's websocket
// event stream.
//
// The engine replays a finished game as a "game_info" event followed by one
// "frame" event per turn and a "game_end" event.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brensch/snek2svg/game"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Config tells a Client where the engine lives and how long to wait on it.
type Config struct {
	EngineURL      string // WebSocket URL template, %s is the game id
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// DefaultConfig points at the public engine.
func DefaultConfig() Config {
	return Config{
		EngineURL:      "wss://engine.battlesnake.com/games/%s/events",
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    30 * time.Second,
	}
}

// Client downloads games one at a time.
type Client struct {
	config Config
	logger *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{config: config, logger: logger}
}

// GameEvent represents an event from the WebSocket stream
type GameEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// FrameData from "frame" events
type FrameData struct {
	Turn   int         `json:"turn"`
	Snakes []SnakeData `json:"snakes"`
	Board  BoardData   `json:"board,omitempty"`
}

type SnakeData struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Health int     `json:"health"`
	Body   []Coord `json:"body"`
	Death  *Death  `json:"death,omitempty"`
}

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type BoardData struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Death struct {
	Cause string `json:"cause"`
	Turn  int    `json:"turn"`
}

// Game is a downloaded game.
type Game struct {
	ID     string
	States []game.GameState
	// Names maps snake ids to display names.
	Names map[string]string
}

// Download connects to the game's event stream and collects every frame.
// A read error after at least one frame ends the download with what was
// received, since the engine sometimes drops the socket instead of closing it.
func (c *Client) Download(ctx context.Context, gameID string) (*Game, error) {
	url := fmt.Sprintf(c.config.EngineURL, gameID)

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.ConnectTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the caller gives up.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	g := &Game{ID: gameID, Names: map[string]string{}}

read:
	for {
		if c.config.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			if len(g.States) > 0 {
				c.logger.Warn("event stream ended early", "game_id", gameID, "frames", len(g.States), "err", err)
				break
			}
			return nil, fmt.Errorf("read error: %w", err)
		}

		var event GameEvent
		if err := json.Unmarshal(message, &event); err != nil {
			c.logger.Warn("failed to parse event", "game_id", gameID, "err", err)
			continue
		}

		switch event.Type {
		case "frame":
			var frame FrameData
			if err := json.Unmarshal(event.Data, &frame); err != nil {
				c.logger.Warn("failed to parse frame", "game_id", gameID, "err", err)
				continue
			}
			g.States = append(g.States, frame.State())
			for _, s := range frame.Snakes {
				if s.Name != "" {
					g.Names[s.ID] = s.Name
				}
			}

		case "game_end":
			break read
		}
	}

	if len(g.States) == 0 {
		return nil, fmt.Errorf("game %s: no frames received", gameID)
	}
	c.logger.Info("downloaded game", "game_id", gameID, "frames", len(g.States))
	return g, nil
}

// State converts a frame into a game state. Eliminated snakes are dropped.
func (f FrameData) State() game.GameState {
	st := game.GameState{
		Width:  int32(f.Board.Width),
		Height: int32(f.Board.Height),
		Turn:   int32(f.Turn),
	}
	for _, s := range f.Snakes {
		if s.Death != nil || len(s.Body) == 0 {
			continue
		}
		body := make([]game.Point, len(s.Body))
		for i, p := range s.Body {
			body[i] = game.Point{X: int32(p.X), Y: int32(p.Y)}
		}
		st.Snakes = append(st.Snakes, game.Snake{Id: s.ID, Health: int32(s.Health), Body: body})
	}
	return st
}
