package server

import (
	"bytes"
	"fmt"
	"strconv"

	"codeberg.org/tslocum/bgengine"
)

// serverGame is the game shared by every client, along with its replay log.
//
// The replay holds one line per turn, beginning with the letter of the player
// to move followed by space separated actions:
//
//	w r 5-3 1/6 12/15
//	b r 6-6 p
//	w r 4-2 1/5 u 12/16 12/14
//
// "r" records a roll, "p" a turn passed without a legal move and "u" an
// undo. An undo restoring the previous player's turn continues that player's
// line or begins a new one. Once the game is won the header line
// "i <started> <winner>" is prepended.
type serverGame struct {
	*bgengine.Game

	replay     [][]byte
	line       []byte
	linePlayer bgengine.Player
}

func newServerGame() *serverGame {
	return &serverGame{
		Game: bgengine.NewGame(),
	}
}

func (g *serverGame) reset() {
	g.Game.Reset()
	g.replay = nil
	g.line = nil
	g.linePlayer = bgengine.NoPlayer
}

// record appends an action to the replay. A new line is started when the
// player changes or when newLine is set.
func (g *serverGame) record(player bgengine.Player, action string, newLine bool) {
	if newLine || g.line == nil || player != g.linePlayer {
		g.flushReplay()
		g.line = []byte(player.Letter())
		g.linePlayer = player
	}
	g.line = append(g.line, ' ')
	g.line = append(g.line, action...)
}

func (g *serverGame) recordRoll(player bgengine.Player, roll1 int, roll2 int) {
	g.record(player, fmt.Sprintf("r %d-%d", roll1, roll2), true)
}

func (g *serverGame) recordMoves(player bgengine.Player, moves []bgengine.Move) {
	for _, m := range moves {
		g.record(player, m.String(), false)
	}
}

func (g *serverGame) flushReplay() {
	if g.line == nil {
		return
	}
	g.replay = append(g.replay, g.line)
	g.line = nil
}

// replayLines returns the replay recorded so far, including the current turn.
func (g *serverGame) replayLines() []string {
	lines := make([]string, 0, len(g.replay)+1)
	for _, line := range g.replay {
		lines = append(lines, string(line))
	}
	if g.line != nil {
		lines = append(lines, string(g.line))
	}
	return lines
}

func (g *serverGame) addReplayHeader() {
	g.flushReplay()
	header := []byte("i " + strconv.FormatInt(g.Started().Unix(), 10) + " " + g.Winner().Letter())
	g.replay = append([][]byte{header}, g.replay...)
}

func (g *serverGame) replayText() []byte {
	var buf bytes.Buffer
	for _, line := range g.replayLines() {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func (g *serverGame) sendBoard(client *serverClient) {
	client.sendEvent(&bgengine.EventBoard{
		GameState: *g.Snapshot(),
	})
}
