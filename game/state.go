// Package game defines the board and chain types shared by the sources and
// the renderer.
//
// A Chain is the renderer's input: one SnakeState per animation frame, all of
// the same length. GameState is what the sources (archives, the engine) hand
// back before a single snake's chain is pulled out of it.
package game

// Point is a board coordinate.
// Engine coordinates have (0,0) bottom-left; rendered chains use top-left
// (see FlipY).
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type Snake struct {
	Id     string
	Health int32
	Body   []Point
}

// GameState is one turn of a recorded game.
type GameState struct {
	Width  int32
	Height int32
	Turn   int32
	Snakes []Snake
}

// SnakeByID returns the snake with the given id, or nil.
func (s *GameState) SnakeByID(id string) *Snake {
	if s == nil {
		return nil
	}
	for i := range s.Snakes {
		if s.Snakes[i].Id == id {
			return &s.Snakes[i]
		}
	}
	return nil
}
