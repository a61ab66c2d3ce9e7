package bgengine

import "strings"

// Player identifies a side of the board. The zero value is NoPlayer.
type Player int8

const (
	NoPlayer Player = iota
	White
	Black
)

// ParsePlayer parses a player name or its first letter.
func ParsePlayer(s string) Player {
	switch strings.ToLower(s) {
	case "w", "white":
		return White
	case "b", "black":
		return Black
	default:
		return NoPlayer
	}
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoPlayer
	}
}

// Direction returns the index delta of a single pip of movement.
func (p Player) Direction() int {
	if p == Black {
		return -1
	}
	return 1
}

// HomeRange returns the first and last point of the player's home quadrant.
func (p Player) HomeRange() (from int, to int) {
	if p == Black {
		return 0, 5
	}
	return 18, 23
}

// InHome returns whether the point lies in the player's home quadrant.
func (p Player) InHome(point int) bool {
	from, to := p.HomeRange()
	return point >= from && point <= to
}

// EntryPoint returns the point a checker entering from the bar reaches
// with the provided die value.
func (p Player) EntryPoint(die int) int {
	if p == Black {
		return NumPoints - die
	}
	return die - 1
}

func (p Player) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Letter returns the single letter used in replays and position IDs.
func (p Player) Letter() string {
	switch p {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

func (p Player) valid() bool {
	return p == White || p == Black
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	*p = ParsePlayer(string(text))
	return nil
}
