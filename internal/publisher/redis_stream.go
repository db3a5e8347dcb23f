package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/redis/go-redis/v9"
)

// AppendedGamesStream carries one entry per sync run that appended games.
const AppendedGamesStream = "h2h.games.appended"

var errMissingData = errors.New("stream message has no data field")

// SyncEvent is the payload published after a sync run writes its output.
type SyncEvent struct {
	RunID       string               `json:"run_id"`
	LeagueID    string               `json:"league_id"`
	Season      int                  `json:"season"`
	Appended    int                  `json:"appended"`
	Games       []history.GameRecord `json:"games"`
	Output      string               `json:"output"`
	PublishedAt time.Time            `json:"published_at"`
}

// RedisStreamPublisher publishes sync events to a Redis stream
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStreamPublisher creates a publisher on an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		stream: AppendedGamesStream,
		maxLen: 1000,
	}
}

// PublishAppendedGames adds one entry to the stream and returns its ID
func (p *RedisStreamPublisher) PublishAppendedGames(ctx context.Context, event SyncEvent) (string, error) {
	if event.PublishedAt.IsZero() {
		event.PublishedAt = time.Now().UTC()
	}
	if event.Games == nil {
		event.Games = []history.GameRecord{}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": event.PublishedAt.Unix(),
		},
	}).Result()
}

// DecodeSyncEvent parses the "data" field of a stream message
func DecodeSyncEvent(values map[string]interface{}) (SyncEvent, error) {
	var event SyncEvent

	raw, ok := values["data"].(string)
	if !ok {
		return event, errMissingData
	}
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return event, err
	}
	return event, nil
}
