// Package cache keeps a short-lived snapshot of the opportunity pool in
// redis in front of the opportunity store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gdugdh24/opportunity-matcher/internal/domain"
	"github.com/gdugdh24/opportunity-matcher/internal/repository"
)

const (
	SnapshotKey = "opportunity-matcher:opportunities:snapshot"
	DefaultTTL  = 60 * time.Second
)

type opportunityCache struct {
	next   repository.OpportunityRepository
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewOpportunityCache wraps next with a redis snapshot. Redis failures are
// logged and the call falls through to next.
func NewOpportunityCache(next repository.OpportunityRepository, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) repository.OpportunityRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &opportunityCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *opportunityCache) List(ctx context.Context) ([]*domain.Opportunity, error) {
	cached, err := c.rdb.Get(ctx, SnapshotKey).Bytes()
	switch {
	case err == nil:
		var opportunities []*domain.Opportunity
		if err := json.Unmarshal(cached, &opportunities); err == nil {
			return opportunities, nil
		}
		c.logger.Warn("discarding unreadable opportunity snapshot")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("reading opportunity snapshot", zap.Error(err))
	}

	opportunities, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(opportunities)
	if err != nil {
		c.logger.Warn("encoding opportunity snapshot", zap.Error(err))
		return opportunities, nil
	}
	if err := c.rdb.Set(ctx, SnapshotKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("writing opportunity snapshot", zap.Error(err))
	}
	return opportunities, nil
}
