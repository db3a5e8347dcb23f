package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server over the given game source.
func NewServer(port string, games GameSource, logger *zap.Logger, allowedOrigins []string) *Server {
	handler := NewHandler(games)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: NewRouter(handler, logger, allowedOrigins),
		},
	}
}

// NewRouter wires routes and middleware. CORS wraps the router so that
// preflight requests are answered before route method matching.
func NewRouter(handler *Handler, logger *zap.Logger, allowedOrigins []string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(MetricsMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", MetricsHandler()).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/standings/{season}", handler.GetStandings).Methods("GET")
	api.HandleFunc("/h2h", handler.GetHeadToHead).Methods("GET")
	api.HandleFunc("/streaks/{team}", handler.GetLongestStreak).Methods("GET")
	api.HandleFunc("/records", handler.GetRecords).Methods("GET")
	api.HandleFunc("/blowouts", handler.GetBlowouts).Methods("GET")

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(router)
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
