package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/db"
	"github.com/thesisdesk/titledex/internal/domain"
)

const (
	statsCacheKeyPrefix = domain.KeyPrefix + "corpus:stats:"
	statsCacheTTL       = 5 * time.Minute
)

// statsCache is the consumer interface for the stats cache (ISP).
type statsCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// WithStatsCache enables revision-keyed caching of the dashboard aggregates.
// Keys embed the corpus revision, so a replace invalidates naturally; the TTL
// only sweeps entries for dead revisions.
func (s *Service) WithStatsCache(cache statsCache) *Service {
	s.statsCache = cache
	return s
}

func statsCacheKey(name, revision string) string {
	return statsCacheKeyPrefix + name + ":" + revision
}

func (s *Service) statsFromCache(ctx context.Context, key string) (Stats, bool) {
	data, err := s.statsCache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to get cached stats", zap.String("key", key), zap.Error(err))
		}
		return Stats{}, false
	}

	var st Stats
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("Failed to parse cached stats", zap.String("key", key), zap.Error(err))
		return Stats{}, false
	}
	return st, true
}

func (s *Service) statsToCache(ctx context.Context, key string, st Stats) {
	data, err := json.Marshal(st)
	if err != nil {
		s.logger.Warn("Failed to encode stats", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.statsCache.SetWithTTL(ctx, key, data, statsCacheTTL); err != nil {
		s.logger.Warn("Failed to cache stats", zap.String("key", key), zap.Error(err))
	}
}
