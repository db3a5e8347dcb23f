package websocket

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/publisher"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	batchSize     = 10
	blockDuration = 5 * time.Second
	retryDelay    = time.Second
)

// Reloader refreshes the records served by the API from Path.
type Reloader interface {
	Reload() error
	Path() string
}

// Broadcaster fans a message out to connected clients.
type Broadcaster interface {
	Broadcast(msg ServerMessage)
}

// StreamConsumer tails the appended-games stream, reloads the snapshot and
// tells connected clients.
type StreamConsumer struct {
	redis    *redis.Client
	stream   string
	reloader Reloader
	hub      Broadcaster
	logger   *zap.Logger
	lastID   string
}

// NewStreamConsumer creates a consumer that starts at new entries only.
func NewStreamConsumer(client *redis.Client, reloader Reloader, hub Broadcaster, logger *zap.Logger) *StreamConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamConsumer{
		redis:    client,
		stream:   publisher.AppendedGamesStream,
		reloader: reloader,
		hub:      hub,
		logger:   logger.Named("consumer"),
		lastID:   "$",
	}
}

// Start blocks reading the stream until ctx is cancelled.
func (sc *StreamConsumer) Start(ctx context.Context) error {
	sc.logger.Info("consuming stream", zap.String("stream", sc.stream))

	for {
		if ctx.Err() != nil {
			return nil
		}

		streams, err := sc.redis.XRead(ctx, &redis.XReadArgs{
			Streams: []string{sc.stream, sc.lastID},
			Count:   batchSize,
			Block:   blockDuration,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			sc.logger.Warn("stream read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryDelay):
			}
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				sc.handle(msg)
			}
		}
	}
}

func (sc *StreamConsumer) handle(msg redis.XMessage) {
	sc.lastID = msg.ID

	event, err := publisher.DecodeSyncEvent(msg.Values)
	if err != nil {
		sc.logger.Warn("skipping malformed event", zap.String("id", msg.ID), zap.Error(err))
		return
	}

	if served := sc.reloader.Path(); event.Output != "" && served != "" && !samePath(event.Output, served) {
		sc.logger.Warn("sync wrote a different file than the one served, reload will not pick it up",
			zap.String("id", msg.ID),
			zap.String("output", event.Output),
			zap.String("served", served),
		)
	}

	if err := sc.reloader.Reload(); err != nil {
		sc.logger.Error("snapshot reload failed", zap.String("id", msg.ID), zap.Error(err))
	}

	sc.logger.Info("games appended",
		zap.String("run", event.RunID),
		zap.Int("season", event.Season),
		zap.Int("appended", event.Appended),
	)

	sc.hub.Broadcast(ServerMessage{
		Type:      MessageTypeGamesAppended,
		Payload:   event,
		Timestamp: time.Now().UTC(),
	})
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
