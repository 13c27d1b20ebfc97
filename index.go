// Package titledex offers a storeless, typed title-similarity index: rank a
// proposed title against an in-memory collection of records without running
// a server or a store. For persistent corpora use pkg/sdk or the HTTP API.
package titledex

import (
	"fmt"

	"github.com/thesisdesk/titledex/internal/domain"
	"github.com/thesisdesk/titledex/internal/domain/risk"
	"github.com/thesisdesk/titledex/internal/similarity"
)

// Sentinel errors returned by Check. Match with errors.Is.
var (
	// ErrInvalidQuery indicates an empty query or one with no usable terms.
	ErrInvalidQuery = domain.ErrInvalidQuery
	// ErrInvalidTopK indicates an out-of-range top-k value.
	ErrInvalidTopK = domain.ErrInvalidTopK
)

// Index is a generic, schema-first similarity index held in memory.
// The title field is inferred from T's struct tags at construction time:
//
//	type Project struct {
//		Name       string `titledex:"title"`
//		Supervisor string
//	}
//
// Tokenization of indexed items happens once; each Check refits term
// weights jointly over the index and the query.
type Index[T any] struct {
	meta  *schemaMeta
	items []T
	docs  [][]string // tokenized titles, parallel to items

	thresholds risk.Thresholds
	rankCfg    domain.RankConfig
}

// NewIndex creates a typed index over the given items. T must be a struct
// with exactly one `titledex:"title"` string field.
func NewIndex[T any](items []T, opts ...IndexOption) (*Index[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}

	cfg := indexConfig{rankCfg: domain.DefaultRankConfig()}
	for _, o := range opts {
		o(&cfg)
	}

	thresholds := risk.Defaults()
	if cfg.highThreshold > 0 || cfg.mediumThreshold > 0 {
		thresholds, err = risk.NewThresholds(cfg.highThreshold, cfg.mediumThreshold)
		if err != nil {
			return nil, fmt.Errorf("titledex: %w", err)
		}
	}
	if cfg.rankCfg.DefaultTopK <= 0 || cfg.rankCfg.MaxTopK < cfg.rankCfg.DefaultTopK {
		return nil, fmt.Errorf("titledex: invalid top-k limits %d/%d", cfg.rankCfg.DefaultTopK, cfg.rankCfg.MaxTopK)
	}

	idx := &Index[T]{meta: meta, thresholds: thresholds, rankCfg: cfg.rankCfg}
	idx.Add(items...)
	return idx, nil
}

// Add appends items to the index.
func (idx *Index[T]) Add(items ...T) {
	for i := range items {
		idx.items = append(idx.items, items[i])
		idx.docs = append(idx.docs, similarity.Tokenize(idx.meta.titleText(items[i])))
	}
}

// Len returns the number of indexed items.
func (idx *Index[T]) Len() int { return len(idx.items) }

// Check returns a fluent builder for ranking the query against the index.
func (idx *Index[T]) Check(query string) *CheckBuilder[T] {
	return &CheckBuilder[T]{idx: idx, query: query}
}
