package server

import (
	"log"
	"sync/atomic"
)

// clientConn is the outgoing event queue shared by socket and WebSocket
// clients. Events queued after the writer exits are dropped.
type clientConn struct {
	events     chan []byte
	commands   chan<- []byte
	done       chan struct{}
	terminated atomic.Bool
	verbose    bool
}

func newClientConn(commands chan<- []byte, events chan []byte, verbose bool) *clientConn {
	return &clientConn{
		events:   events,
		commands: commands,
		done:     make(chan struct{}),
		verbose:  verbose,
	}
}

func (c *clientConn) Write(message []byte) {
	if c.terminated.Load() {
		return
	}
	select {
	case c.events <- message:
	case <-c.done:
	}
}

func (c *clientConn) Terminated() bool {
	return c.terminated.Load()
}

// handleReadWrite writes queued events until read returns.
func (c *clientConn) handleReadWrite(read func(), write func(event []byte) error, terminate func(reason string)) {
	closeWrite := make(chan struct{})
	go c.writeEvents(closeWrite, write, terminate)
	read()
	close(closeWrite)
}

func (c *clientConn) writeEvents(closeWrite <-chan struct{}, write func(event []byte) error, terminate func(reason string)) {
	defer close(c.done)

	var event []byte
	for {
		select {
		case <-closeWrite:
			return
		case event = <-c.events:
		}

		if c.terminated.Load() {
			continue
		}

		err := write(event)
		if err != nil {
			terminate(err.Error())
			continue
		}

		if c.verbose {
			log.Printf("-> %s", event)
		}
	}
}

// queueCommand passes a command read from the client to the server.
func (c *clientConn) queueCommand(command []byte) {
	buf := make([]byte, len(command))
	copy(buf, command)
	c.commands <- buf

	if c.verbose {
		logClientRead(command)
	}
}
