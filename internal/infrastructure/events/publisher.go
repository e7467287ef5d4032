// Package events publishes pipeline notifications on redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel      = "matches.computed"
	TypeMatchesComputed = "MATCHES_COMPUTED"
)

// MatchesComputed is sent after a run stored its top matches
type MatchesComputed struct {
	Type           string    `json:"type"`
	RunID          string    `json:"runId"`
	StudentID      string    `json:"studentId"`
	TotalMatches   int       `json:"totalMatches"`
	OpportunityIDs []string  `json:"opportunityIds"`
	TopScore       int       `json:"topScore"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
}

type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

func NewRedisPublisher(rdb redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) PublishMatchesComputed(ctx context.Context, event MatchesComputed) error {
	event.Type = TypeMatchesComputed
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Type, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
