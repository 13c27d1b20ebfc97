package corpus

import (
	"context"
	"time"

	"github.com/thesisdesk/titledex/internal/db"
	"github.com/thesisdesk/titledex/internal/domain"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
)

// mockRepo is a function-field mock over an in-memory corpus map. Tests
// override the fn fields to inject failures.
type mockRepo struct {
	corpora map[string]domcorpus.Corpus

	replaceFn   func(ctx context.Context, c domcorpus.Corpus) error
	getFn       func(ctx context.Context, name string) (domcorpus.Corpus, error)
	existsFn    func(ctx context.Context, name string) (bool, error)
	deleteFn    func(ctx context.Context, name string) error
	listNamesFn func(ctx context.Context) ([]string, error)
}

func newMockRepo() *mockRepo {
	return &mockRepo{corpora: make(map[string]domcorpus.Corpus)}
}

func (m *mockRepo) Replace(ctx context.Context, c domcorpus.Corpus) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, c)
	}
	m.corpora[c.Name()] = c
	return nil
}

func (m *mockRepo) Get(ctx context.Context, name string) (domcorpus.Corpus, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	c, ok := m.corpora[name]
	if !ok {
		return domcorpus.Corpus{}, domain.ErrCorpusNotFound
	}
	return c, nil
}

func (m *mockRepo) Exists(ctx context.Context, name string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, name)
	}
	_, ok := m.corpora[name]
	return ok, nil
}

func (m *mockRepo) Delete(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	if _, ok := m.corpora[name]; !ok {
		return domain.ErrCorpusNotFound
	}
	delete(m.corpora, name)
	return nil
}

func (m *mockRepo) ListNames(ctx context.Context) ([]string, error) {
	if m.listNamesFn != nil {
		return m.listNamesFn(ctx)
	}
	names := make([]string, 0, len(m.corpora))
	for name := range m.corpora {
		names = append(names, name)
	}
	return names, nil
}

// mockFetcher is a function-field mock for Fetcher.
type mockFetcher struct {
	fetchCSVFn func(ctx context.Context, url string) ([]title.Title, error)
}

func (m *mockFetcher) FetchCSV(ctx context.Context, url string) ([]title.Title, error) {
	return m.fetchCSVFn(ctx, url)
}

func mustTitle(t string, meta map[string]string) title.Title {
	return title.Reconstruct(t, meta)
}

// mockStatsCache is an in-memory stats cache with call counters.
type mockStatsCache struct {
	data map[string][]byte
	gets int
	sets int

	getFn func(ctx context.Context, key string) ([]byte, error)
}

func newMockStatsCache() *mockStatsCache {
	return &mockStatsCache{data: make(map[string][]byte)}
}

func (m *mockStatsCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	data, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *mockStatsCache) SetWithTTL(ctx context.Context, key string, value []byte, _ time.Duration) error {
	m.sets++
	m.data[key] = value
	return nil
}
