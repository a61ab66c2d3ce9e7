package server

import (
	"codeberg.org/tslocum/bgengine"
)

// gameRecord is a finished game as listed by /games.json.
type gameRecord struct {
	ID      int
	Started int64
	Ended   int64
	Winner  bgengine.Player
}
