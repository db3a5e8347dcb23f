package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/api/rest"
	"github.com/Haynesmodel/DarlingDraft/internal/api/websocket"
	"github.com/Haynesmodel/DarlingDraft/internal/cache"
	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	serviceName    = "h2h-api"
	serviceVersion = "1.0.0"
)

func main() {
	_ = godotenv.Load()
	config := loadConfig()

	logger, err := logging.New(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting", zap.String("service", serviceName), zap.String("version", serviceVersion))

	snapshot, err := history.OpenSnapshot(config.H2HPath)
	if err != nil {
		logger.Fatal("failed to load store", zap.String("path", config.H2HPath), zap.Error(err))
	}
	logger.Info("loaded store", zap.String("path", config.H2HPath), zap.Int("games", len(snapshot.Games())))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// Stream consumer is optional
	var redisCache *cache.RedisCache
	if config.RedisURL != "" {
		redisCache, err = cache.NewRedisCache(ctx, config.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, live updates disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			consumer := websocket.NewStreamConsumer(redisCache.Client(), snapshot, hub, logger)
			go consumer.Start(ctx)
		}
	}

	restServer := rest.NewServer(config.RESTPort, snapshot, logger.Named("rest"), config.CORSOrigins)
	go func() {
		if err := restServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("REST server error", zap.Error(err))
		}
	}()
	logger.Info("REST API listening", zap.String("port", config.RESTPort))

	wsServer := websocket.NewServer(ctx, hub, logger)
	go func() {
		if err := wsServer.Start(config.WSPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("WebSocket server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("REST API server shutdown error", zap.Error(err))
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("WebSocket server shutdown error", zap.Error(err))
	}

	logger.Info("stopped")
}

type Config struct {
	H2HPath     string
	RedisURL    string
	RESTPort    string
	WSPort      string
	CORSOrigins []string
	LogLevel    string
}

func loadConfig() Config {
	return Config{
		H2HPath:     getEnv("H2H_PATH", "assets/H2H.json"),
		RedisURL:    getEnv("REDIS_URL", ""),
		RESTPort:    getEnv("REST_PORT", "8080"),
		WSPort:      getEnv("WS_PORT", "8081"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
