package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

const gamesListLimit = 50

func (s *server) listenWebSocket(address string) {
	log.Printf("Listening for WebSocket connections on %s...", address)

	err := http.ListenAndServe(address, s.router())
	log.Fatalf("failed to listen on %s: %s", address, err)
}

func (s *server) addCORSHeader(f func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		f(w, r)
	}
}

func (s *server) router() *mux.Router {
	m := mux.NewRouter()
	handle := func(path string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
		return m.HandleFunc(path, s.addCORSHeader(f))
	}

	handle("/board.json", s.handleBoard)
	handle("/moves.json", s.handleMoves)
	handle("/replay.txt", s.handleReplay)
	handle("/games.json", s.handleListGames)
	handle("/game/{id:[0-9]+}", s.handleGame)
	m.HandleFunc("/", s.handleWebSocket)
	return m
}

func (s *server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(s.boardCache)
}

func (s *server) handleMoves(w http.ResponseWriter, r *http.Request) {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(s.movesCache)
}

func (s *server) handleReplay(w http.ResponseWriter, r *http.Request) {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()

	w.Header().Set("Content-Type", "text/plain")
	w.Write(s.replayCache)
}

func (s *server) cachedGames() []byte {
	s.gamesCacheLock.Lock()
	defer s.gamesCacheLock.Unlock()

	if s.gamesCache != nil && time.Since(s.gamesCacheTime) < 5*time.Second {
		return s.gamesCache
	}

	games, err := gameRecords(gamesListLimit)
	if err != nil {
		log.Printf("failed to list games: %s", err)
	}

	s.gamesCacheTime = time.Now()
	if len(games) == 0 {
		s.gamesCache = []byte("[]")
		return s.gamesCache
	}
	s.gamesCache, err = json.Marshal(games)
	if err != nil {
		log.Fatalf("failed to marshal %+v: %s", games, err)
	}
	return s.gamesCache
}

func (s *server) handleListGames(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(s.cachedGames())
}

func (s *server) handleGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	replay, err := replayByID(id)
	if err != nil {
		log.Printf("failed to retrieve game %d: %s", id, err)
	}
	if len(replay) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="game_%d.txt"`, id))
	w.Write(replay)
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	const bufferSize = 8
	commands := make(chan []byte, bufferSize)
	events := make(chan []byte, bufferSize)

	wsClient := newWebSocketClient(r, w, commands, events, s.verbose)
	if wsClient == nil {
		return
	}

	now := time.Now().Unix()

	c := &serverClient{
		id:        <-s.newClientIDs,
		json:      true,
		language:  s.defaultLanguage,
		address:   s.hashIP(r.RemoteAddr),
		connected: now,
		active:    now,
		commands:  commands,
		Client:    wsClient,
	}
	s.handleClient(c)
}
