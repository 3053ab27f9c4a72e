// Command snek2svg renders one snake of a recorded game as a looping SVG
// animation.
//
// The chain comes from a move string, a JSON file, a parquet archive or the
// game engine; see -h for the flags of each source.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brensch/snek2svg/engine"
	"github.com/brensch/snek2svg/game"
	"github.com/brensch/snek2svg/logging"
	"github.com/brensch/snek2svg/preview"
	"github.com/brensch/snek2svg/snakesvg"
)

func main() {
	outPath := flag.String("out", getEnvOrDefault("OUT", "snake.svg"), "Output SVG path")
	themePath := flag.String("theme", getEnvOrDefault("THEME", ""), "Optional JSON theme file (sizeCell, sizeDot, colorSnake, ...)")
	frameDuration := flag.Duration("frame", getEnvDurationOrDefault("FRAME_DURATION", 100*time.Millisecond), "Time per frame; the loop lasts frames × this")
	loopDuration := flag.Duration("duration", getEnvDurationOrDefault("DURATION", 0), "Total loop duration (overrides -frame)")
	pad := flag.Bool("pad", getEnvBoolOrDefault("PAD", true), "Stack the tail so a growing snake has the same length in every frame")
	grid := flag.Bool("grid", getEnvBoolOrDefault("GRID", true), "Draw the empty board under the snake")
	showPreview := flag.Bool("preview", getEnvBoolOrDefault("PREVIEW", false), "Open a terminal preview after writing the SVG")
	logJSON := flag.Bool("log-json", getEnvBoolOrDefault("LOG_JSON", false), "Log as indented JSON")

	var src sourceConfig
	flag.StringVar(&src.Moves, "moves", "", "Move string (u/d/l/r, upper case grows), e.g. rrrUUllD")
	flag.StringVar(&src.Start, "start", "5,5", "Start cell X,Y for -moves (bottom-left origin)")
	flag.IntVar(&src.Length, "length", getEnvIntOrDefault("LENGTH", 3), "Start length for -moves")
	flag.StringVar(&src.Board, "board", "", "Board size WIDTHxHEIGHT (default 11x11 for -moves, the chain's bounds for -chain)")
	flag.StringVar(&src.ChainFile, "chain", "", "JSON file with an array of bodies ([[{\"x\":0,\"y\":0}, ...], ...])")
	flag.StringVar(&src.Archive, "archive", "", "Parquet archive to read the game from")
	flag.StringVar(&src.GameID, "game", "", "Game id inside -archive (default: first game)")
	flag.StringVar(&src.EngineGame, "engine-game", "", "Game id to download from the engine")
	flag.StringVar(&src.Engine.EngineURL, "engine-url", getEnvOrDefault("ENGINE_URL", engine.DefaultConfig().EngineURL), "Engine websocket URL template")
	flag.StringVar(&src.SaveArchive, "save-archive", "", "Also write the downloaded game to this parquet archive")
	flag.StringVar(&src.SnakeID, "snake", "", "Snake id to render (default: first snake)")
	flag.Parse()

	logger := logging.New(*logJSON, slog.LevelInfo)

	opts := snakesvg.DefaultOptions()
	if *themePath != "" {
		var err error
		if opts, err = snakesvg.LoadOptions(*themePath); err != nil {
			log.Fatalf("Failed to load theme: %v", err)
		}
	}
	if !*grid {
		opts.ColorEmpty = ""
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src.Engine.ConnectTimeout = engine.DefaultConfig().ConnectTimeout
	src.Engine.ReadTimeout = engine.DefaultConfig().ReadTimeout

	loaded, err := loadChain(ctx, src, logger)
	if err != nil {
		log.Fatalf("Failed to load chain: %v", err)
	}
	chain := loaded.chain
	if *pad {
		chain = game.PadChain(chain)
	}

	duration := *loopDuration
	if duration <= 0 {
		duration = *frameDuration * time.Duration(max(len(chain), 1))
	}

	anim, err := snakesvg.Animate(chain, opts, duration)
	if err != nil {
		log.Fatalf("Failed to animate %s: %v", loaded.label, err)
	}

	if err := writeSVG(*outPath, anim, loaded.width, loaded.height); err != nil {
		log.Fatalf("Failed to write SVG: %v", err)
	}

	stats := anim.Stats()
	logger.Info("wrote animation",
		"source", loaded.label,
		"path", *outPath,
		"frames", stats.Frames,
		"segments", stats.Segments,
		"keyframes_raw", stats.RawKeyframes,
		"keyframes_kept", stats.KeptKeyframes,
		"duration", duration,
	)

	if *showPreview {
		if err := preview.Run(preview.New(chain, anim, loaded.width, loaded.height)); err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
	}
}

// writeSVG writes through a temp file and renames it into place.
func writeSVG(path string, anim *snakesvg.Animation, width, height int32) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	if err := snakesvg.WriteDocument(f, anim, width, height); err != nil {
		f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
