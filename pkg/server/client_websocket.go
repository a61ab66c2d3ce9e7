package server

import (
	"context"
	"net/http"
	"strings"

	"codeberg.org/tslocum/bgengine"
	"github.com/coder/websocket"
)

// maxCloseReason is the longest reason which fits in a close frame.
const maxCloseReason = 123

var acceptOptions = &websocket.AcceptOptions{
	InsecureSkipVerify: true,
	CompressionMode:    websocket.CompressionContextTakeover,
}

var _ bgengine.Client = &webSocketClient{}

// webSocketClient reads one command per text message. Events are sent as
// text messages without a trailing newline.
type webSocketClient struct {
	*clientConn
	conn *websocket.Conn
}

func newWebSocketClient(r *http.Request, w http.ResponseWriter, commands chan<- []byte, events chan []byte, verbose bool) *webSocketClient {
	conn, err := websocket.Accept(w, r, acceptOptions)
	if err != nil {
		return nil
	}
	return &webSocketClient{
		clientConn: newClientConn(commands, events, verbose),
		conn:       conn,
	}
}

func (c *webSocketClient) HandleReadWrite() {
	c.handleReadWrite(c.readCommands, c.writeEvent, c.Terminate)
}

func (c *webSocketClient) readCommands() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		msgType, msg, err := c.conn.Read(ctx)
		cancel()
		if err != nil {
			c.Terminate(err.Error())
			return
		} else if msgType == websocket.MessageText {
			c.queueCommand(msg)
		}
	}
}

func (c *webSocketClient) writeEvent(event []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, event)
}

// Terminate starts the closing handshake. The connection is closed
// immediately when the peer does not respond.
func (c *webSocketClient) Terminate(reason string) {
	if c.terminated.Swap(true) {
		return
	}
	go c.conn.Close(websocket.StatusNormalClosure, closeReason(reason))
}

func closeReason(reason string) string {
	if len(reason) <= maxCloseReason {
		return reason
	}
	return strings.ToValidUTF8(reason[:maxCloseReason], "")
}
