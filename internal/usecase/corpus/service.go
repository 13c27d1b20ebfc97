// Package corpus implements corpus lifecycle operations: replacing content
// from uploads or published sheets, seeding the stock dataset, and the
// dashboard aggregates.
package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
	"github.com/thesisdesk/titledex/internal/ingest"
	"github.com/thesisdesk/titledex/internal/metrics"
)

// Service handles corpus CRUD and ingestion.
type Service struct {
	repo       Repository
	fetcher    Fetcher
	logger     *zap.Logger
	statsCache statsCache // optional, see WithStatsCache
}

// New creates a corpus service.
func New(repo Repository, fetcher Fetcher, logger *zap.Logger) *Service {
	return &Service{repo: repo, fetcher: fetcher, logger: logger}
}

// Replace validates and stores the full content of a corpus under a fresh
// revision, replacing whatever was there before.
func (s *Service) Replace(ctx context.Context, name string, titles []title.Title) (domcorpus.Corpus, error) {
	return s.replace(ctx, name, titles, "csv")
}

func (s *Service) replace(ctx context.Context, name string, titles []title.Title, source string) (domcorpus.Corpus, error) {
	c, err := domcorpus.New(name, titles, uuid.NewString(), time.Now().UnixMilli())
	if err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("validate corpus: %w", err)
	}

	if err := s.repo.Replace(ctx, c); err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("replace corpus: %w", err)
	}

	metrics.CorpusLoadsTotal.WithLabelValues(name, source).Inc()
	metrics.CorpusSize.WithLabelValues(name).Set(float64(c.Size()))
	s.logger.Info("Corpus replaced",
		zap.String("corpus", name),
		zap.String("revision", c.Revision()),
		zap.String("source", source),
		zap.Int("size", c.Size()),
	)
	return c, nil
}

// Get retrieves a corpus snapshot by name.
func (s *Service) Get(ctx context.Context, name string) (domcorpus.Corpus, error) {
	c, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("get corpus: %w", err)
	}
	return c, nil
}

// Delete removes a corpus.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete corpus: %w", err)
	}
	s.logger.Info("Corpus deleted", zap.String("corpus", name))
	return nil
}

// List returns the names of all stored corpora.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	return names, nil
}

// LoadFromURL fetches a published CSV sheet and replaces the corpus with its
// rows.
func (s *Service) LoadFromURL(ctx context.Context, name, url string) (domcorpus.Corpus, error) {
	titles, err := s.fetcher.FetchCSV(ctx, url)
	if err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("fetch sheet: %w", err)
	}
	return s.replace(ctx, name, titles, "url")
}

// Seed stores the stock fallback dataset under the given name unless a
// corpus with that name already exists. It reports whether seeding happened.
func (s *Service) Seed(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check corpus: %w", err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.replace(ctx, name, ingest.DefaultTitles(), "defaults"); err != nil {
		return false, err
	}
	return true, nil
}

// Stats computes the dashboard aggregates for a corpus. With a cache
// configured, aggregates are reused until the corpus revision changes.
func (s *Service) Stats(ctx context.Context, name string) (Stats, error) {
	c, err := s.repo.Get(ctx, name)
	if err != nil {
		return Stats{}, fmt.Errorf("get corpus: %w", err)
	}

	if s.statsCache == nil {
		return computeStats(&c), nil
	}

	key := statsCacheKey(name, c.Revision())
	if st, ok := s.statsFromCache(ctx, key); ok {
		metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
		return st, nil
	}
	metrics.StatsCacheTotal.WithLabelValues("miss").Inc()

	st := computeStats(&c)
	s.statsToCache(ctx, key, st)
	return st, nil
}
