package websocket

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const broadcastBuffer = 64

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan ServerMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger *zap.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan ServerMessage, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.Named("hub"),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			close(h.done)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for every client. Messages are dropped when the
// queue is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast buffer full, dropping message", zap.String("type", msg.Type))
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	h.logger.Info("client connected", zap.String("client", c.ID), zap.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closeSend()
		h.logger.Info("client disconnected", zap.String("client", c.ID), zap.Int("total", len(h.clients)))
	}
}

// broadcastMessage disconnects clients whose buffers are full.
func (h *Hub) broadcastMessage(msg ServerMessage) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(msg) {
			h.logger.Warn("client buffer full, disconnecting", zap.String("client", c.ID))
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.logger.Info("shutting down hub", zap.Int("clients", len(h.clients)))
	for c := range h.clients {
		c.closeSend()
		delete(h.clients, c)
	}
}
