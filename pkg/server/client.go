package server

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"codeberg.org/tslocum/bgengine"
	"codeberg.org/tslocum/gotext"
)

type serverClient struct {
	id          int
	json        bool
	language    string
	address     string
	connected   int64
	active      int64
	commands    chan []byte
	seated      [2]bool // White, black.
	terminating atomic.Bool
	bgengine.Client
}

func (c *serverClient) sendEvent(e interface{}) {
	// JSON formatted messages.
	if c.json {
		switch ev := e.(type) {
		case *bgengine.EventWelcome:
			ev.Type = bgengine.EventTypeWelcome
		case *bgengine.EventHelp:
			ev.Type = bgengine.EventTypeHelp
		case *bgengine.EventNotice:
			ev.Type = bgengine.EventTypeNotice
		case *bgengine.EventBoard:
			ev.Type = bgengine.EventTypeBoard
		case *bgengine.EventRolled:
			ev.Type = bgengine.EventTypeRolled
		case *bgengine.EventFailedRoll:
			ev.Type = bgengine.EventTypeFailedRoll
		case *bgengine.EventPassed:
			ev.Type = bgengine.EventTypePassed
		case *bgengine.EventMoved:
			ev.Type = bgengine.EventTypeMoved
		case *bgengine.EventFailedMove:
			ev.Type = bgengine.EventTypeFailedMove
		case *bgengine.EventUndone:
			ev.Type = bgengine.EventTypeUndone
		case *bgengine.EventFailedUndo:
			ev.Type = bgengine.EventTypeFailedUndo
		case *bgengine.EventWin:
			ev.Type = bgengine.EventTypeWin
		case *bgengine.EventReplay:
			ev.Type = bgengine.EventTypeReplay
		default:
			log.Panicf("unknown event type %+v", ev)
		}

		buf, err := json.Marshal(e)
		if err != nil {
			panic(err)
		}
		c.Write(buf)
		return
	}

	// Human-readable messages.
	switch ev := e.(type) {
	case *bgengine.EventWelcome:
		c.Write([]byte(fmt.Sprintf("welcome %s", gotext.GetD(c.language, "There are %d clients connected. Send 'help' for a list of commands.", ev.Clients))))
	case *bgengine.EventHelp:
		c.Write([]byte("helpstart " + gotext.GetD(c.language, "Help text:")))
		for _, line := range strings.Split(ev.Message, "\n") {
			c.Write([]byte(fmt.Sprintf("help %s", line)))
		}
		c.Write([]byte("helpend " + gotext.GetD(c.language, "End of help text.")))
	case *bgengine.EventNotice:
		c.Write([]byte(fmt.Sprintf("notice %s", ev.Message)))
	case *bgengine.EventBoard:
		for _, line := range renderBoard(&ev.GameState) {
			c.Write([]byte(fmt.Sprintf("board %s", line)))
		}
	case *bgengine.EventRolled:
		c.Write([]byte(fmt.Sprintf("rolled %s %d %d", ev.Player, ev.Roll1, ev.Roll2)))
	case *bgengine.EventFailedRoll:
		c.Write([]byte(fmt.Sprintf("failedroll %s", ev.Reason)))
	case *bgengine.EventPassed:
		c.Write([]byte(fmt.Sprintf("passed %s %d %d", ev.Player, ev.Roll1, ev.Roll2)))
	case *bgengine.EventMoved:
		msg := fmt.Sprintf("moved %s %s", ev.Player, bgengine.FormatMoves(ev.Moves))
		if ev.Hit {
			msg += " hit"
		}
		c.Write([]byte(msg))
	case *bgengine.EventFailedMove:
		if ev.From < 0 || ev.To < 0 {
			c.Write([]byte(fmt.Sprintf("failedmove %s", ev.Reason)))
			return
		}
		c.Write([]byte(fmt.Sprintf("failedmove %s/%s %s", bgengine.FormatSpace(ev.From), bgengine.FormatSpace(ev.To), ev.Reason)))
	case *bgengine.EventUndone:
		c.Write([]byte(fmt.Sprintf("undone %s", ev.Player)))
	case *bgengine.EventFailedUndo:
		c.Write([]byte(fmt.Sprintf("failedundo %s", ev.Reason)))
	case *bgengine.EventWin:
		c.Write([]byte(fmt.Sprintf("win %s", gotext.GetD(c.language, "%s wins!", ev.Player))))
	case *bgengine.EventReplay:
		c.Write([]byte("replaystart " + gotext.GetD(c.language, "Replay:")))
		for _, line := range ev.Lines {
			c.Write([]byte(fmt.Sprintf("replay %s", line)))
		}
		c.Write([]byte("replayend " + gotext.GetD(c.language, "End of replay.")))
	default:
		log.Printf("warning: skipped sending unknown event to non-json client: %+v", ev)
	}
}

func (c *serverClient) sendNotice(message string) {
	c.sendEvent(&bgengine.EventNotice{
		Message: message,
	})
}

// seatedAs returns whether the client may act for the player.
func (c *serverClient) seatedAs(player bgengine.Player) bool {
	return player != bgengine.NoPlayer && c.seated[player-1]
}

func (c *serverClient) label() string {
	return strconv.Itoa(c.id)
}

func (c *serverClient) Terminate(reason string) {
	if c.Terminated() || c.terminating.Swap(true) {
		return
	}

	var extra string
	if reason != "" {
		extra = ": " + reason
	}
	c.sendNotice(gotext.GetD(c.language, "Connection terminated") + extra)

	go func() {
		time.Sleep(time.Second)
		c.Client.Terminate(reason)
	}()
}

func logClientRead(msg []byte) {
	log.Printf("<- %s", msg)
}
