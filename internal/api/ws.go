package api

import (
	"time"

	"github.com/gorilla/websocket"
)

// wsConn adapts a websocket connection to hub.Conn. The write deadline
// bounds how long one stuck subscriber can hold up a broadcast pass;
// an expired deadline surfaces as a send error and the dispatcher
// prunes the connection.
type wsConn struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func (c *wsConn) Send(payload []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
