package server

//go:generate xgotext -no-locations -default bgengine -in . -out locales

import (
	"embed"
	"fmt"
	"log"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"codeberg.org/tslocum/bgengine"
	"codeberg.org/tslocum/gotext"
	"golang.org/x/crypto/sha3"
	"golang.org/x/text/language"
)

// clientTimeout is the amount of time a remote client may remain idle.
const clientTimeout = 10 * time.Minute

//go:embed locales
var assetFS embed.FS

var englishIdentifier = []byte("en")

func init() {
	gotext.SetDomain("bgengine-en")
}

// Options configures a server.
type Options struct {
	// DataSource is a PostgreSQL connection string or the path to a SQLite
	// database. Game results are stored only when the server is built with
	// the database tag.
	DataSource string

	// IPAddressSalt is appended to client addresses before they are hashed.
	IPAddressSalt string

	// Language is the default language of server messages.
	Language string

	Verbose       bool
	DebugCommands bool
}

type serverCommand struct {
	client  *serverClient
	command []byte
}

type server struct {
	clients      []*serverClient
	game         *serverGame
	listeners    []net.Listener
	newClientIDs chan int
	commands     chan serverCommand

	clientsLock sync.Mutex

	// Game state shared with HTTP handlers. Updated by handleCommands.
	boardCache  []byte
	movesCache  []byte
	replayCache []byte
	stateLock   sync.RWMutex

	gamesCache     []byte
	gamesCacheTime time.Time
	gamesCacheLock sync.Mutex

	sortedCommands []string

	defaultLanguage string
	languageTags    []language.Tag
	languageNames   [][]byte

	ipSalt        string
	verbose       bool
	debugCommands bool
}

// NewServer returns a server hosting a single game shared by every client.
func NewServer(op *Options) *server {
	if op == nil {
		op = &Options{}
	}
	const bufferSize = 10
	s := &server{
		game:          newServerGame(),
		newClientIDs:  make(chan int),
		commands:      make(chan serverCommand, bufferSize),
		ipSalt:        op.IPAddressSalt,
		verbose:       op.Verbose,
		debugCommands: op.DebugCommands,
	}
	s.loadLocales()
	s.defaultLanguage = "bgengine-" + string(s.matchLanguage([]byte(op.Language)))

	for command := range bgengine.HelpText {
		if !s.debugCommands && (command == bgengine.CommandSetup || command == bgengine.CommandDice) {
			continue
		}
		s.sortedCommands = append(s.sortedCommands, command)
	}
	sort.Strings(s.sortedCommands)

	if op.DataSource != "" {
		err := connectDB(op.DataSource)
		if err != nil {
			log.Fatalf("failed to connect to database: %s", err)
		}

		err = testDBConnection()
		if err != nil {
			log.Fatalf("failed to test database connection: %s", err)
		}

		initDB()

		log.Println("Connected to database successfully")
	}

	s.publishState()

	go s.handleNewClientIDs()
	go s.handleCommands()
	return s
}

func (s *server) loadLocales() {
	entries, err := assetFS.ReadDir("locales")
	if err != nil {
		log.Fatalf("failed to list files in locales directory: %s", err)
	}

	var availableTags = []language.Tag{
		language.MustParse("en_US"),
	}
	var availableNames = [][]byte{
		[]byte("en"),
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		availableTags = append(availableTags, language.MustParse(entry.Name()))
		availableNames = append(availableNames, []byte(entry.Name()))

		b, err := assetFS.ReadFile(fmt.Sprintf("locales/%s/%s.po", entry.Name(), entry.Name()))
		if err != nil {
			log.Fatalf("failed to read locale %s: %s", entry.Name(), err)
		}

		po := gotext.NewPo()
		po.Parse(b)
		gotext.GetStorage().AddTranslator(fmt.Sprintf("bgengine-%s", entry.Name()), po)
	}
	s.languageTags = availableTags
	s.languageNames = availableNames
}

func (s *server) matchLanguage(identifier []byte) []byte {
	if len(identifier) == 0 {
		return englishIdentifier
	}

	tag, err := language.Parse(string(identifier))
	if err != nil {
		return englishIdentifier
	}
	var preferred = []language.Tag{tag}

	useLanguage, index, confidence := language.NewMatcher(s.languageTags).Match(preferred...)
	useLanguageCode := useLanguage.String()
	if index < 0 || confidence == language.No || useLanguageCode == "" || strings.HasPrefix(useLanguageCode, "en") {
		return englishIdentifier
	}
	return s.languageNames[index]
}

// Listen accepts connections on the provided network and address. The
// network "ws" serves WebSocket clients and the HTTP routes.
func (s *server) Listen(network string, address string) {
	if strings.ToLower(network) == "ws" {
		go s.listenWebSocket(address)
		return
	}

	log.Printf("Listening for %s connections on %s...", strings.ToUpper(network), address)
	listener, err := net.Listen(network, address)
	if err != nil {
		log.Fatalf("failed to listen on %s: %s", address, err)
	}
	go s.handleListener(listener)
	s.listeners = append(s.listeners, listener)
}

func (s *server) handleListener(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Fatalf("failed to accept connection: %s", err)
		}
		go s.handleConnection(conn, clientTimeout)
	}
}

// ListenLocal returns a channel of in-memory connections to the server.
func (s *server) ListenLocal() chan net.Conn {
	conns := make(chan net.Conn)
	go s.handleLocal(conns)
	return conns
}

func (s *server) handleLocal(conns chan net.Conn) {
	for {
		local, remote := net.Pipe()

		conns <- local
		go s.handleConnection(remote, 0)
	}
}

func (s *server) addClient(c *serverClient) {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()

	s.clients = append(s.clients, c)
}

func (s *server) removeClient(c *serverClient) {
	c.Terminate("")

	close(c.commands)

	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()

	for i, sc := range s.clients {
		if sc == c {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return
		}
	}
}

func (s *server) clientCount() int {
	s.clientsLock.Lock()
	defer s.clientsLock.Unlock()

	return len(s.clients)
}

// eachClient calls f for every connected client.
func (s *server) eachClient(f func(client *serverClient)) {
	s.clientsLock.Lock()
	clients := make([]*serverClient, len(s.clients))
	copy(clients, s.clients)
	s.clientsLock.Unlock()

	for _, c := range clients {
		if c.terminating.Load() || c.Terminated() {
			continue
		}
		f(c)
	}
}

func (s *server) handleClient(c *serverClient) {
	s.addClient(c)

	log.Printf("Client %s connected from %.16s", c.label(), c.address)

	go s.handleClientCommands(c)

	s.sendWelcome(c)

	c.HandleReadWrite()

	// Remove client.
	s.removeClient(c)

	log.Printf("Client %s disconnected", c.label())
}

func (s *server) handleConnection(conn net.Conn, timeout time.Duration) {
	const bufferSize = 8
	commands := make(chan []byte, bufferSize)
	events := make(chan []byte, bufferSize)

	now := time.Now().Unix()

	c := &serverClient{
		id:        <-s.newClientIDs,
		language:  s.defaultLanguage,
		address:   s.hashIP(conn.RemoteAddr().String()),
		connected: now,
		active:    now,
		commands:  commands,
		Client:    newSocketClient(conn, commands, events, timeout, s.verbose),
	}
	s.handleClient(c)
}

func (s *server) handleClientCommands(c *serverClient) {
	var command []byte
	for command = range c.commands {
		s.commands <- serverCommand{
			client:  c,
			command: command,
		}
	}
}

func (s *server) handleNewClientIDs() {
	clientID := 1
	for {
		s.newClientIDs <- clientID
		clientID++
	}
}

func (s *server) sendWelcome(c *serverClient) {
	c.sendEvent(&bgengine.EventWelcome{
		Clients: s.clientCount(),
	})
}

// hashIP returns a salted hash of the host portion of an address, so client
// addresses never appear in logs.
func (s *server) hashIP(address string) string {
	leftBracket, rightBracket := strings.IndexByte(address, '['), strings.IndexByte(address, ']')
	if leftBracket != -1 && rightBracket != -1 && rightBracket > leftBracket {
		address = address[leftBracket+1 : rightBracket]
	} else if strings.IndexByte(address, '.') != -1 {
		colon := strings.IndexByte(address, ':')
		if colon != -1 {
			address = address[:colon]
		}
	}

	buf := []byte(address + s.ipSalt)
	h := make([]byte, 32)
	sha3.ShakeSum256(h, buf)
	return fmt.Sprintf("%x", h)
}
