package bgengine

import (
	"encoding/json"
	"fmt"
)

// Events are always received FROM the server.

const (
	EventTypeWelcome    = "welcome"
	EventTypeHelp       = "help"
	EventTypeNotice     = "notice"
	EventTypeBoard      = "board"
	EventTypeRolled     = "rolled"
	EventTypeFailedRoll = "failedroll"
	EventTypePassed     = "passed"
	EventTypeMoved      = "moved"
	EventTypeFailedMove = "failedmove"
	EventTypeUndone     = "undone"
	EventTypeFailedUndo = "failedundo"
	EventTypeWin        = "win"
	EventTypeReplay     = "replay"
)

type Event struct {
	Type   string
	Player Player
}

type EventWelcome struct {
	Event
	Clients int
}

type EventHelp struct {
	Event
	Topic   string
	Message string
}

type EventNotice struct {
	Event
	Message string
}

type EventBoard struct {
	Event
	GameState
}

type EventRolled struct {
	Event
	Roll1 int
	Roll2 int
}

type EventFailedRoll struct {
	Event
	Reason string
}

// EventPassed is sent when a player has no legal move and the turn passes to
// the opponent.
type EventPassed struct {
	Event
	Roll1 int
	Roll2 int
}

type EventMoved struct {
	Event
	Moves []Move
	Hit   bool
}

type EventFailedMove struct {
	Event
	From   int
	To     int
	Die    int
	Reason string
}

type EventUndone struct {
	Event
}

type EventFailedUndo struct {
	Event
	Reason string
}

type EventWin struct {
	Event
}

type EventReplay struct {
	Event
	Lines []string
}

// DecodeEvent decodes a JSON formatted event.
func DecodeEvent(message []byte) (interface{}, error) {
	e := &Event{}
	err := json.Unmarshal(message, e)
	if err != nil {
		return nil, err
	}

	var ev interface{}
	switch e.Type {
	case EventTypeWelcome:
		ev = &EventWelcome{}
	case EventTypeHelp:
		ev = &EventHelp{}
	case EventTypeNotice:
		ev = &EventNotice{}
	case EventTypeBoard:
		ev = &EventBoard{}
	case EventTypeRolled:
		ev = &EventRolled{}
	case EventTypeFailedRoll:
		ev = &EventFailedRoll{}
	case EventTypePassed:
		ev = &EventPassed{}
	case EventTypeMoved:
		ev = &EventMoved{}
	case EventTypeFailedMove:
		ev = &EventFailedMove{}
	case EventTypeUndone:
		ev = &EventUndone{}
	case EventTypeFailedUndo:
		ev = &EventFailedUndo{}
	case EventTypeWin:
		ev = &EventWin{}
	case EventTypeReplay:
		ev = &EventReplay{}
	default:
		return nil, fmt.Errorf("failed to decode event: unknown event type: %s", e.Type)
	}
	err = json.Unmarshal(message, ev)
	if err != nil {
		return nil, err
	}
	return ev, nil
}
