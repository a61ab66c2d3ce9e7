package bgengine

import (
	"fmt"
	"strconv"
	"strings"
)

// PositionID encodes the board as text: 24 comma-separated points (empty, or
// a color letter followed by a count) then the white,black bar counts and the
// white,black home counts, separated by '|'.
//
// The starting position is encoded as
//
//	w2,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|0,0|0,0
func (b *Board) PositionID() string {
	var sb strings.Builder
	for point, p := range b.Points {
		if point != 0 {
			sb.WriteByte(',')
		}
		if p.Checkers == 0 {
			continue
		}
		sb.WriteString(p.Color.Letter())
		sb.WriteString(strconv.Itoa(p.Checkers))
	}
	fmt.Fprintf(&sb, "|%d,%d|%d,%d", b.Bar[0], b.Bar[1], b.Home[0], b.Home[1])
	return sb.String()
}

// ParsePositionID decodes a position ID and validates the resulting board.
func ParsePositionID(id string) (*Board, error) {
	sections := strings.Split(strings.TrimSpace(id), "|")
	if len(sections) != 3 {
		return nil, fmt.Errorf("invalid position ID: expected 3 sections, got %d", len(sections))
	}
	points := strings.Split(sections[0], ",")
	if len(points) != NumPoints {
		return nil, fmt.Errorf("invalid position ID: expected %d points, got %d", NumPoints, len(points))
	}

	b := &Board{}
	for point, v := range points {
		if v == "" {
			continue
		}
		color := ParsePlayer(v[:1])
		if color == NoPlayer {
			return nil, fmt.Errorf("invalid position ID: unknown color at point %d", point+1)
		}
		count, err := strconv.Atoi(v[1:])
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("invalid position ID: invalid count at point %d", point+1)
		}
		err = b.AddCheckers(point, color, count)
		if err != nil {
			return nil, fmt.Errorf("invalid position ID: %w", err)
		}
	}

	parsePair := func(s string, target *[2]int) error {
		pair := strings.Split(s, ",")
		if len(pair) != 2 {
			return fmt.Errorf("invalid position ID: expected pair, got %q", s)
		}
		for i := range pair {
			v, err := strconv.Atoi(pair[i])
			if err != nil || v < 0 {
				return fmt.Errorf("invalid position ID: invalid count %q", pair[i])
			}
			target[i] = v
		}
		return nil
	}
	if err := parsePair(sections[1], &b.Bar); err != nil {
		return nil, err
	}
	if err := parsePair(sections[2], &b.Home); err != nil {
		return nil, err
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid position ID: %w", err)
	}
	return b, nil
}
