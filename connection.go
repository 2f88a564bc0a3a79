package wsendpoint

import (
	"context"
	"io"

	"github.com/coder/websocket"
)

// SessionConnection is the wire side of a session. The server supplies the
// coder/websocket implementation; tests supply fakes.
type SessionConnection interface {
	// NextMessage returns the type and a reader for the next inbound
	// message. The reader streams fragments as they arrive.
	NextMessage(ctx context.Context) (MessageType, io.Reader, error)
	Write(ctx context.Context, messageType MessageType, data []byte) error
	Close(status CloseStatus, reason string) error
}

type wsConnection struct {
	conn *websocket.Conn
}

var _ SessionConnection = &wsConnection{}

func newWSConnection(conn *websocket.Conn) *wsConnection {
	return &wsConnection{conn: conn}
}

func (c *wsConnection) NextMessage(ctx context.Context) (MessageType, io.Reader, error) {
	return c.conn.Reader(ctx)
}

func (c *wsConnection) Write(ctx context.Context, messageType MessageType, data []byte) error {
	return c.conn.Write(ctx, messageType, data)
}

func (c *wsConnection) Close(status CloseStatus, reason string) error {
	return c.conn.Close(status, reason)
}
