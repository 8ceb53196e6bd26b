package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait = 10 * time.Second
	// Frames are pushed per generated fragment, no batching; the write
	// deadline only guards against a wedged peer.
	maxTurnRequestSize = 64 * 1024
)

// Client wraps one chat websocket connection. All writes go through it so
// deadlines are applied consistently.
type Client struct {
	Conn      *websocket.Conn
	SessionID string
}

func NewClient(conn *websocket.Conn, sessionID string) *Client {
	conn.SetReadLimit(maxTurnRequestSize)
	return &Client{Conn: conn, SessionID: sessionID}
}

// WriteJSON sends one frame with the write deadline applied.
func (c *Client) WriteJSON(v interface{}) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteJSON(v)
}

// ReadJSON blocks for the next inbound frame. No read deadline: a chat
// session may sit idle between turns indefinitely.
func (c *Client) ReadJSON(v interface{}) error {
	return c.Conn.ReadJSON(v)
}
