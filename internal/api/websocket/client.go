package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 32
)

// Client represents a WebSocket client connection
type Client struct {
	ID     string
	Send   chan ServerMessage
	conn   *websocket.Conn
	hub    *Hub
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new client instance
func NewClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:     id,
		Send:   make(chan ServerMessage, sendBufferSize),
		conn:   conn,
		hub:    hub,
		logger: hub.logger.With(zap.String("client", id)),
	}
}

// ReadPump reads client messages until the connection closes.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return
		}

		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("unexpected close", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case MessageTypeHeartbeat:
			c.TrySend(ServerMessage{Type: MessageTypeHeartbeat, Timestamp: time.Now().UTC()})
		default:
			c.TrySend(ServerMessage{
				Type:      MessageTypeError,
				Payload:   map[string]string{"message": "unknown message type: " + msg.Type},
				Timestamp: time.Now().UTC(),
			})
		}
	}
}

// WritePump writes queued messages and keepalive pings.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Warn("write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues msg without blocking; false means the buffer is full or
// the client is gone.
func (c *Client) TrySend(msg ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}
