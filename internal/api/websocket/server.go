package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server represents the WebSocket server
type Server struct {
	ctx    context.Context
	server *http.Server
	hub    *Hub
	logger *zap.Logger
}

// NewServer creates a new WebSocket server. Client pumps stop when ctx is
// cancelled.
func NewServer(ctx context.Context, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{ctx: ctx, hub: hub, logger: logger.Named("websocket")}
}

// Routes returns the WebSocket HTTP routes.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/games", s.handleGames)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start listens on port until Shutdown.
func (s *Server) Start(port string) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.Routes(),
	}

	s.logger.Info("listening", zap.String("port", port))
	return s.server.ListenAndServe()
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(uuid.NewString(), conn, s.hub)
	s.hub.Register(client)

	go client.WritePump(s.ctx)
	go client.ReadPump(s.ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
