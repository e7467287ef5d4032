package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher_PublishMatchesComputed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, DefaultChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := NewRedisPublisher(rdb, "")
	require.NoError(t, p.PublishMatchesComputed(ctx, MatchesComputed{
		RunID:          "run-1",
		StudentID:      "s-1",
		TotalMatches:   3,
		OpportunityIDs: []string{"o-1", "o-2"},
		TopScore:       68,
		AnalyzedAt:     at,
	}))

	select {
	case msg := <-sub.Channel():
		var got MatchesComputed
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, TypeMatchesComputed, got.Type)
		assert.Equal(t, "s-1", got.StudentID)
		assert.Equal(t, []string{"o-1", "o-2"}, got.OpportunityIDs)
		assert.Equal(t, 68, got.TopScore)
		assert.True(t, at.Equal(got.AnalyzedAt))
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestRedisPublisher_ReportsFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	err := NewRedisPublisher(rdb, "custom").PublishMatchesComputed(context.Background(), MatchesComputed{StudentID: "s-1"})
	assert.ErrorContains(t, err, "publish MATCHES_COMPUTED")
}
