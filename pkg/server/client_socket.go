package server

import (
	"bufio"
	"net"
	"time"

	"codeberg.org/tslocum/bgengine"
)

var _ bgengine.Client = &socketClient{}

// socketClient reads newline-terminated commands from a net.Conn, either a
// TCP connection or one end of an in-memory pipe.
type socketClient struct {
	*clientConn
	conn    net.Conn
	timeout time.Duration
}

// newSocketClient returns a client reading line commands from conn. A zero
// timeout allows the client to remain idle indefinitely.
func newSocketClient(conn net.Conn, commands chan<- []byte, events chan []byte, timeout time.Duration, verbose bool) *socketClient {
	return &socketClient{
		clientConn: newClientConn(commands, events, verbose),
		conn:       conn,
		timeout:    timeout,
	}
}

func (c *socketClient) HandleReadWrite() {
	c.handleReadWrite(c.readCommands, c.writeEvent, c.Terminate)
}

func (c *socketClient) deadline() time.Time {
	if c.timeout == 0 {
		return time.Time{}
	}
	return time.Now().Add(c.timeout)
}

func (c *socketClient) readCommands() {
	scanner := bufio.NewScanner(c.conn)
	for {
		err := c.conn.SetReadDeadline(c.deadline())
		if err != nil {
			c.Terminate(err.Error())
			return
		}
		if !scanner.Scan() {
			break
		} else if c.terminated.Load() {
			return
		}
		c.queueCommand(scanner.Bytes())
	}

	reason := ""
	if err := scanner.Err(); err != nil {
		reason = err.Error()
	}
	c.Terminate(reason)
}

func (c *socketClient) writeEvent(event []byte) error {
	err := c.conn.SetWriteDeadline(c.deadline())
	if err != nil {
		return err
	}
	_, err = c.conn.Write(append(event, '\n'))
	return err
}

func (c *socketClient) Terminate(reason string) {
	if c.terminated.Swap(true) {
		return
	}
	c.conn.Close()
}
