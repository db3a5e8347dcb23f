package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
)

func TestDecodeSyncEvent(t *testing.T) {
	event := SyncEvent{
		RunID:       "run-1",
		LeagueID:    "L1",
		Season:      2025,
		Appended:    1,
		Games:       []history.GameRecord{history.NewRegularGame(2025, 1, "2025-09-07", "Alpha", "Beta", 88.4, 90.26)},
		Output:      "H2H.json",
		PublishedAt: time.Date(2025, time.September, 8, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	got, err := DecodeSyncEvent(map[string]interface{}{"data": string(data), "timestamp": "1"})
	require.NoError(t, err)
	require.Equal(t, "run-1", got.RunID)
	require.Equal(t, 1, got.Appended)
	require.Len(t, got.Games, 1)
	require.Equal(t, "Alpha", got.Games[0].TeamA)
	require.Equal(t, 90.26, got.Games[0].ScoreB)
	require.True(t, event.PublishedAt.Equal(got.PublishedAt))
}

func TestDecodeSyncEvent_Malformed(t *testing.T) {
	_, err := DecodeSyncEvent(map[string]interface{}{"timestamp": "1"})
	require.ErrorIs(t, err, errMissingData)

	_, err = DecodeSyncEvent(map[string]interface{}{"data": "{"})
	require.Error(t, err)
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), Protocol: 2, DisableIdentity: true})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestPublishAppendedGamesRoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	pub := NewRedisStreamPublisher(client)

	published := time.Date(2025, time.September, 8, 12, 0, 0, 0, time.UTC)
	id, err := pub.PublishAppendedGames(ctx, SyncEvent{
		RunID:       "run-1",
		LeagueID:    "L1",
		Season:      2025,
		Appended:    1,
		Games:       []history.GameRecord{history.NewRegularGame(2025, 1, "2025-09-07", "Alpha", "Beta", 88.4, 90.26)},
		Output:      "out/H2H.json",
		PublishedAt: published,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entries, err := mr.Stream(AppendedGamesStream)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, id, entries[0].ID)

	streams, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{AppendedGamesStream, "0"},
		Count:   10,
		Block:   -1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, streams, 1)
	require.Len(t, streams[0].Messages, 1)

	msg := streams[0].Messages[0]
	require.Equal(t, strconv.FormatInt(published.Unix(), 10), msg.Values["timestamp"])

	got, err := DecodeSyncEvent(msg.Values)
	require.NoError(t, err)
	require.Equal(t, "run-1", got.RunID)
	require.Equal(t, "out/H2H.json", got.Output)
	require.True(t, published.Equal(got.PublishedAt))
	require.Len(t, got.Games, 1)
	require.Equal(t, "Alpha", got.Games[0].TeamA)
	require.Equal(t, 90.26, got.Games[0].ScoreB)
}

func TestPublishAppendedGamesDefaults(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	_, err := NewRedisStreamPublisher(client).PublishAppendedGames(ctx, SyncEvent{RunID: "empty"})
	require.NoError(t, err)

	msgs, err := client.XRange(ctx, AppendedGamesStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	raw, ok := msgs[0].Values["data"].(string)
	require.True(t, ok)
	require.Contains(t, raw, `"games":[]`)

	got, err := DecodeSyncEvent(msgs[0].Values)
	require.NoError(t, err)
	require.Empty(t, got.Games)
	require.False(t, got.PublishedAt.Before(before))
}

func TestPublishAppendedGamesTrimsStream(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	pub := NewRedisStreamPublisher(client)
	pub.maxLen = 2

	for i := 1; i <= 3; i++ {
		_, err := pub.PublishAppendedGames(ctx, SyncEvent{RunID: "run-" + strconv.Itoa(i)})
		require.NoError(t, err)
	}

	entries, err := mr.Stream(AppendedGamesStream)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	msgs, err := client.XRange(ctx, AppendedGamesStream, "-", "+").Result()
	require.NoError(t, err)
	first, err := DecodeSyncEvent(msgs[0].Values)
	require.NoError(t, err)
	require.Equal(t, "run-2", first.RunID)
}
