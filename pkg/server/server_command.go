package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"codeberg.org/tslocum/bgengine"
	"codeberg.org/tslocum/gotext"
)

func (s *server) handleCommands() {
	var cmd serverCommand
COMMANDS:
	for cmd = range s.commands {
		if cmd.client == nil {
			log.Panicf("nil client with command %s", cmd.command)
		} else if cmd.client.terminating.Load() || cmd.client.Terminated() {
			continue
		}

		cmd.command = bytes.TrimSpace(cmd.command)

		firstSpace := bytes.IndexByte(cmd.command, ' ')
		var keyword string
		var startParameters int
		if firstSpace == -1 {
			keyword = string(cmd.command)
			startParameters = len(cmd.command)
		} else {
			keyword = string(cmd.command[:firstSpace])
			startParameters = firstSpace + 1
		}
		if keyword == "" {
			continue
		}
		keyword = strings.ToLower(keyword)
		params := bytes.Fields(cmd.command[startParameters:])

		g := s.game

		switch keyword {
		case bgengine.CommandHelp, "h":
			if len(params) > 0 {
				command := string(bytes.ToLower(bytes.Join(params, []byte(" "))))
				commandHelp := bgengine.HelpText[command]
				if commandHelp == "" {
					cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Unknown command: %s", command))
					continue
				}
				cmd.client.sendEvent(&bgengine.EventHelp{
					Topic:   command,
					Message: command + " " + commandHelp,
				})
				continue
			}

			var message []string
			for _, command := range s.sortedCommands {
				message = append(message, command+" "+bgengine.HelpText[command])
			}
			cmd.client.sendEvent(&bgengine.EventHelp{
				Message: strings.Join(message, "\n"),
			})
		case bgengine.CommandJSON:
			sendUsage := func() {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "To enable JSON formatted messages, send 'json on'. To disable JSON formatted messages, send 'json off'."))
			}
			if len(params) != 1 {
				sendUsage()
				continue
			}
			paramLower := strings.ToLower(string(params[0]))
			switch paramLower {
			case "on":
				cmd.client.json = true
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "JSON formatted messages enabled."))
			case "off":
				cmd.client.json = false
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "JSON formatted messages disabled."))
			default:
				sendUsage()
			}
		case bgengine.CommandSet:
			if len(params) != 2 || !bytes.EqualFold(params[0], []byte("language")) {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Please specify the language as follows: set language <tag>"))
				continue
			}
			identifier := s.matchLanguage(params[1])
			cmd.client.language = "bgengine-" + string(identifier)
			cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Language set to %s.", identifier))
		case bgengine.CommandSit:
			sendUsage := func() {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Please specify your seat as follows: sit <white/black/both>"))
			}
			if len(params) != 1 {
				sendUsage()
				continue
			}
			seat := strings.ToLower(string(params[0]))
			seats := []bgengine.Player{bgengine.ParsePlayer(seat)}
			if seat == "both" {
				seats = []bgengine.Player{bgengine.White, bgengine.Black}
			} else if seats[0] == bgengine.NoPlayer {
				sendUsage()
				continue
			} else {
				seat = seats[0].String()
			}
			for _, player := range seats {
				if holder := s.seatHolder(player); holder != nil && holder != cmd.client {
					cmd.client.sendNotice(gotext.GetD(cmd.client.language, "The %s seat is taken.", player))
					continue COMMANDS
				}
			}
			cmd.client.seated = [2]bool{}
			for _, player := range seats {
				cmd.client.seated[player-1] = true
			}
			cmd.client.sendNotice(gotext.GetD(cmd.client.language, "You are seated as %s.", seat))
		case bgengine.CommandBoard, "b":
			g.sendBoard(cmd.client)
		case bgengine.CommandMoves:
			if cmd.client.json {
				g.sendBoard(cmd.client)
				continue
			}
			moves := g.LegalMoves()
			if len(moves) == 0 {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "There are no legal moves."))
				continue
			}
			formatted := make([]string, len(moves))
			for i, m := range moves {
				formatted[i] = fmt.Sprintf("%s (%d)", m, m.Die)
			}
			cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Legal moves: %s", strings.Join(formatted, ", ")))
		case bgengine.CommandRoll, "r":
			player := g.Turn()
			if !g.GameOver() && !cmd.client.seatedAs(player) {
				cmd.client.sendEvent(&bgengine.EventFailedRoll{
					Reason: gotext.GetD(cmd.client.language, "It is not your turn."),
				})
				continue
			}
			err := g.Roll()
			if err != nil {
				reason := gotext.GetD(cmd.client.language, "You must finish moving before rolling again.")
				if errors.Is(err, bgengine.ErrGameOver) {
					reason = gotext.GetD(cmd.client.language, "The game is over.")
				}
				cmd.client.sendEvent(&bgengine.EventFailedRoll{
					Reason: reason,
				})
				continue
			}

			roll1, roll2 := g.LastRoll()
			g.recordRoll(player, roll1, roll2)
			s.eachClient(func(client *serverClient) {
				ev := &bgengine.EventRolled{
					Roll1: roll1,
					Roll2: roll2,
				}
				ev.Player = player
				client.sendEvent(ev)
			})

			if g.Passed() {
				g.record(player, "p", false)
				s.sendPassed(player, roll1, roll2)
			}

			s.eachClient(g.sendBoard)
		case bgengine.CommandMove, "m", "mv":
			sendFailure := func(from int, to int, die int, reason string) {
				cmd.client.sendEvent(&bgengine.EventFailedMove{
					From:   from,
					To:     to,
					Die:    die,
					Reason: reason,
				})
			}
			sendUsage := func() {
				sendFailure(-1, -1, 0, gotext.GetD(cmd.client.language, "Specify one or more moves in the form FROM/TO, each optionally followed by the die to use. For example: 1/4 3 12/17"))
			}

			if g.GameOver() {
				sendFailure(-1, -1, 0, gotext.GetD(cmd.client.language, "The game is over."))
				continue
			} else if !cmd.client.seatedAs(g.Turn()) {
				sendFailure(-1, -1, 0, gotext.GetD(cmd.client.language, "It is not your turn."))
				continue
			} else if len(params) == 0 {
				sendUsage()
				continue
			} else if g.State() != bgengine.StateMoving {
				sendFailure(-1, -1, 0, gotext.GetD(cmd.client.language, "You must roll before moving."))
				continue
			}

			var requested []bgengine.Move
			for _, param := range params {
				if !bytes.ContainsRune(param, '/') {
					die, err := strconv.Atoi(string(param))
					if err != nil || len(requested) == 0 || requested[len(requested)-1].Die != 0 {
						sendUsage()
						continue COMMANDS
					}
					requested[len(requested)-1].Die = die
					continue
				}
				from, to, err := bgengine.ParseMove(string(param))
				if err != nil {
					sendUsage()
					continue COMMANDS
				}
				requested = append(requested, bgengine.Move{From: from, To: to})
			}

			player := g.Turn()
			roll1, roll2 := g.Dice()
			var applied []bgengine.Move
			var hit bool
			for _, m := range requested {
				fail := func(reason string) {
					for range applied {
						if err := g.Undo(); err != nil {
							log.Panicf("failed to roll back move: %s", err)
						}
					}
					sendFailure(m.From, m.To, m.Die, reason)
				}

				if g.Turn() != player || len(g.RemainingMoves()) == 0 {
					fail(gotext.GetD(cmd.client.language, "No moves remain this turn."))
					continue COMMANDS
				}
				if m.Die == 0 {
					m.Die = g.DieFor(m.From, m.To)
					if m.Die == 0 {
						fail(gotext.GetD(cmd.client.language, "Illegal move."))
						continue COMMANDS
					}
				}

				wouldHit := m.To != bgengine.SpaceOff && g.WouldHit(m.To)
				err := g.ApplyMove(m.From, m.To, m.Die)
				if err != nil {
					reason := gotext.GetD(cmd.client.language, "Illegal move.")
					if !slices.Contains(g.RemainingMoves(), m.Die) {
						reason = gotext.GetD(cmd.client.language, "%d is not an available move.", m.Die)
					}
					fail(reason)
					continue COMMANDS
				}
				applied = append(applied, m)
				hit = hit || wouldHit

				if g.GameOver() {
					break
				}
			}

			g.recordMoves(player, applied)
			s.eachClient(func(client *serverClient) {
				ev := &bgengine.EventMoved{
					Moves: applied,
					Hit:   hit,
				}
				ev.Player = player
				client.sendEvent(ev)
			})

			if g.Passed() {
				g.record(player, "p", false)
				s.sendPassed(player, roll1, roll2)
			}

			if !s.handleWin() {
				s.eachClient(g.sendBoard)
			}
		case bgengine.CommandUndo, "u":
			sendFailure := func(reason string) {
				cmd.client.sendEvent(&bgengine.EventFailedUndo{
					Reason: reason,
				})
			}
			if restores := g.UndoTurn(); !g.GameOver() && restores != bgengine.NoPlayer {
				if !cmd.client.seatedAs(restores) {
					sendFailure(gotext.GetD(cmd.client.language, "It is not your turn."))
					continue
				} else if g.UndoDiscardsRoll() {
					sendFailure(gotext.GetD(cmd.client.language, "Moves may not be undone once the dice have been rolled again."))
					continue
				}
			}
			err := g.Undo()
			if err != nil {
				reason := gotext.GetD(cmd.client.language, "There are no moves to undo.")
				if errors.Is(err, bgengine.ErrGameOver) {
					reason = gotext.GetD(cmd.client.language, "The game is over.")
				}
				sendFailure(reason)
				continue
			}

			player := g.Turn()
			g.record(player, "u", false)
			s.eachClient(func(client *serverClient) {
				ev := &bgengine.EventUndone{}
				ev.Player = player
				client.sendEvent(ev)
				g.sendBoard(client)
			})
		case bgengine.CommandReset:
			g.reset()
			s.eachClient(func(client *serverClient) {
				client.sendNotice(gotext.GetD(client.language, "A new game has started."))
				g.sendBoard(client)
			})
		case bgengine.CommandReplay:
			var lines []string
			if len(params) == 0 {
				lines = g.replayLines()
			} else {
				id, err := strconv.Atoi(string(params[0]))
				if err != nil || id <= 0 {
					cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Invalid replay ID provided."))
					continue
				}
				replay, err := replayByID(id)
				if err != nil {
					log.Printf("failed to retrieve replay %d: %s", id, err)
				}
				if len(replay) != 0 {
					lines = strings.Split(strings.TrimSpace(string(replay)), "\n")
				}
			}
			if len(lines) == 0 {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "No replay was recorded for that game."))
				continue
			}
			cmd.client.sendEvent(&bgengine.EventReplay{
				Lines: lines,
			})
		case bgengine.CommandSetup:
			if !s.debugCommands {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "You are not allowed to use that command."))
				continue
			} else if len(params) != 2 {
				cmd.client.sendNotice("Please specify the position as follows: setup <position> <player>")
				continue
			}

			b, err := bgengine.ParsePositionID(string(params[0]))
			if err != nil {
				cmd.client.sendNotice(fmt.Sprintf("Failed to set up position: %s", err))
				continue
			}
			player := bgengine.ParsePlayer(string(params[1]))
			err = g.SetPosition(b, player)
			if err != nil {
				cmd.client.sendNotice(fmt.Sprintf("Failed to set up position: %s", err))
				continue
			}
			g.flushReplay()

			s.eachClient(g.sendBoard)
		case bgengine.CommandDice:
			if !s.debugCommands {
				cmd.client.sendNotice(gotext.GetD(cmd.client.language, "You are not allowed to use that command."))
				continue
			} else if len(params) != 2 {
				cmd.client.sendNotice("Please specify the dice as follows: dice <die> <die>")
				continue
			}

			var values []int
			for _, param := range params {
				v, err := strconv.Atoi(string(param))
				if err != nil || v < 1 || v > 6 {
					cmd.client.sendNotice("Die values must be between 1 and 6.")
					continue COMMANDS
				}
				values = append(values, v)
			}
			g.SetDiceSource(&bgengine.FixedDice{
				Values:   values,
				Fallback: bgengine.RandomDice(),
			})
			cmd.client.sendNotice(fmt.Sprintf("The next roll will be %d-%d.", values[0], values[1]))
		case bgengine.CommandDisconnect:
			cmd.client.Terminate(gotext.GetD(cmd.client.language, "Client disconnected"))
		default:
			log.Printf("Received unknown command from client %s: %s", cmd.client.label(), cmd.command)
			cmd.client.sendNotice(gotext.GetD(cmd.client.language, "Unknown command: %s", cmd.command))
		}

		s.publishState()
	}
}

// seatHolder returns the connected client seated as the player.
func (s *server) seatHolder(player bgengine.Player) *serverClient {
	var holder *serverClient
	s.eachClient(func(client *serverClient) {
		if holder == nil && client.seatedAs(player) {
			holder = client
		}
	})
	return holder
}

func (s *server) sendPassed(player bgengine.Player, roll1 int, roll2 int) {
	s.eachClient(func(client *serverClient) {
		ev := &bgengine.EventPassed{
			Roll1: roll1,
			Roll2: roll2,
		}
		ev.Player = player
		client.sendEvent(ev)
	})
}

// handleWin records and announces a finished game. It returns false when the
// game has not been won.
func (s *server) handleWin() bool {
	g := s.game
	if !g.GameOver() {
		return false
	}

	g.addReplayHeader()
	err := recordGameResult(g.Started(), g.Ended(), g.Winner(), bytes.Join(g.replay, []byte("\n")))
	if err != nil {
		log.Printf("failed to record game result: %s", err)
	}

	winner := g.Winner()
	s.eachClient(func(client *serverClient) {
		ev := &bgengine.EventWin{}
		ev.Player = winner
		client.sendEvent(ev)
		g.sendBoard(client)
	})
	return true
}

// publishState updates the game state served over HTTP.
func (s *server) publishState() {
	g := s.game

	board, err := json.Marshal(g.Snapshot())
	if err != nil {
		log.Fatalf("failed to marshal game state: %s", err)
	}
	legalMoves := g.LegalMoves()
	if legalMoves == nil {
		legalMoves = []bgengine.Move{}
	}
	moves, err := json.Marshal(legalMoves)
	if err != nil {
		log.Fatalf("failed to marshal legal moves: %s", err)
	}
	replay := g.replayText()

	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	s.boardCache, s.movesCache, s.replayCache = board, moves, replay
}
