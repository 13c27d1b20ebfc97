package titledex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/db"
	dbBadger "github.com/thesisdesk/titledex/internal/db/badger"
	dbRedis "github.com/thesisdesk/titledex/internal/db/redis"
	"github.com/thesisdesk/titledex/internal/domain"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/risk"
	domtitle "github.com/thesisdesk/titledex/internal/domain/title"
	"github.com/thesisdesk/titledex/internal/ingest"
	corpusrepo "github.com/thesisdesk/titledex/internal/repository/corpus"
	checkuc "github.com/thesisdesk/titledex/internal/usecase/check"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the use cases.
type checkUseCase interface {
	Check(ctx context.Context, corpusName, query string, topK int) (checkuc.Outcome, error)
}

type corpusUseCase interface {
	Replace(ctx context.Context, name string, titles []domtitle.Title) (domcorpus.Corpus, error)
	Get(ctx context.Context, name string) (domcorpus.Corpus, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	LoadFromURL(ctx context.Context, name, url string) (domcorpus.Corpus, error)
	Stats(ctx context.Context, name string) (corpusuc.Stats, error)
}

// Client is the titledex SDK entry point.
type Client struct {
	store     db.Store
	checkSvc  checkUseCase
	corpusSvc corpusUseCase
	obs       *observer
}

// New creates a titledex Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("titledex: store required (use WithRedis or WithBadger)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("titledex: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("titledex: create redis store: %w", err)
		}
		return s, nil
	case "badger":
		s, err := dbBadger.NewStore(dbBadger.Config{
			Dir:      cfg.badgerDir,
			InMemory: cfg.badgerDir == "",
		})
		if err != nil {
			return nil, fmt.Errorf("titledex: create badger store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("titledex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	// The internal services log via zap; the SDK observer owns user-facing
	// logging, so they stay silent here.
	corpusSvc := corpusuc.New(corpusrepo.New(store), ingest.NewFetcher(zap.NewNop()), zap.NewNop()).WithStatsCache(store)

	checkSvc := checkuc.New(corpusSvc)
	if cfg.highThreshold > 0 || cfg.mediumThreshold > 0 {
		thresholds, err := risk.NewThresholds(cfg.highThreshold, cfg.mediumThreshold)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("titledex: %w", err)
		}
		checkSvc = checkSvc.WithThresholds(thresholds)
	}
	if cfg.defaultTopK > 0 || cfg.maxTopK > 0 {
		checkSvc = checkSvc.WithRankConfig(domain.RankConfig{
			DefaultTopK: cfg.defaultTopK,
			MaxTopK:     cfg.maxTopK,
		})
	}

	return &Client{
		store:     store,
		checkSvc:  checkSvc,
		corpusSvc: corpusSvc,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Check ranks a proposed title against the named corpus and classifies the
// overlap risk of the best match. topK of 0 uses the configured default.
func (c *Client) Check(ctx context.Context, corpus, title string, topK int) (_ CheckResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("check", start, err) }()

	out, err := c.checkSvc.Check(ctx, corpus, title, topK)
	if err != nil {
		return CheckResult{}, fmt.Errorf("check: %w", err)
	}
	return checkResultFromOutcome(out), nil
}

// Corpora returns the corpus management service.
func (c *Client) Corpora() *CorpusService {
	return &CorpusService{svc: c.corpusSvc, obs: c.obs}
}

func checkResultFromOutcome(out checkuc.Outcome) CheckResult {
	matches := out.Report.Matches()
	res := CheckResult{
		Matches:    make([]Match, len(matches)),
		CorpusSize: out.CorpusSize,
	}
	for i := range matches {
		res.Matches[i] = Match{
			Index:    matches[i].CorpusIndex(),
			Score:    matches[i].Score(),
			Title:    matches[i].Title(),
			Metadata: matches[i].Metadata(),
		}
	}
	if best, ok := out.Report.BestScore(); ok {
		res.BestScore = &best
		res.Tier = RiskTier(out.Tier)
	}
	return res
}
