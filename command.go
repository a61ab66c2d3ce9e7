package bgengine

// Commands are always sent TO the server.

const (
	CommandHelp       = "help"
	CommandJSON       = "json"
	CommandSet        = "set"
	CommandSit        = "sit"
	CommandBoard      = "board"
	CommandMoves      = "moves"
	CommandRoll       = "roll"
	CommandMove       = "move"
	CommandUndo       = "undo"
	CommandReset      = "reset"
	CommandReplay     = "replay"
	CommandSetup      = "setup"
	CommandDice       = "dice"
	CommandDisconnect = "disconnect"
)

// HelpText describes each command.
var HelpText = map[string]string{
	CommandHelp:       "[command] - Request help for all commands, or optionally a specific command.",
	CommandJSON:       "<on/off> - Turn JSON formatted messages on or off.",
	CommandSet:        "language <tag> - Select the language of server messages.",
	CommandSit:        "<white/black/both> - Take a seat. Only the player seated as the player to move may roll, move or undo.",
	CommandBoard:      "- Print the current board.",
	CommandMoves:      "- List the moves available to the player to move.",
	CommandRoll:       "- Roll the dice. When no move is possible the turn passes automatically.",
	CommandMove:       "<from/to> [die] - Move a checker. Points are numbered 1-24, use 'bar' to enter and 'off' to bear off. Example: move 1/4 3",
	CommandUndo:       "- Undo the last move.",
	CommandReset:      "- Start a new game.",
	CommandReplay:     "- Print the replay log of the current game.",
	CommandSetup:      "<position> <player> - Load a position ID. Only available when debug commands are enabled.",
	CommandDice:       "<die> <die> - Force the values of the next roll. Only available when debug commands are enabled.",
	CommandDisconnect: "- Disconnect from the server.",
}
