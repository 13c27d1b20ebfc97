package titledex

import (
	"fmt"
	"strings"

	"github.com/thesisdesk/titledex/internal/similarity"
)

// Tier classifies the best match score.
type Tier string

const (
	// TierHigh indicates heavy overlap with an indexed title.
	TierHigh Tier = "high"
	// TierMedium indicates partial overlap.
	TierMedium Tier = "medium"
	// TierLow indicates little overlap.
	TierLow Tier = "low"
)

// Hit is a typed ranked match.
type Hit[T any] struct {
	// Item is the indexed record.
	Item T
	// Index is the record's position in the index.
	Index int
	// Score is the cosine similarity in [0, 1].
	Score float64
}

// Result is the outcome of one check. BestScore and Tier are only set when
// the index was non-empty.
type Result[T any] struct {
	Hits      []Hit[T]
	BestScore *float64
	Tier      Tier
}

// CheckBuilder is a fluent builder for one similarity check.
type CheckBuilder[T any] struct {
	idx   *Index[T]
	query string
	topK  int
}

// TopK sets how many hits to return. Zero uses the index default.
func (b *CheckBuilder[T]) TopK(k int) *CheckBuilder[T] {
	b.topK = k
	return b
}

// Do runs the check: term weights are fit jointly over the indexed titles
// and the query, hits are ranked by cosine similarity descending (ties keep
// ascending index order), and the best score is classified into a tier.
func (b *CheckBuilder[T]) Do() (Result[T], error) {
	topK := b.topK
	if topK == 0 {
		topK = b.idx.rankCfg.DefaultTopK
	}
	if topK < 1 || topK > b.idx.rankCfg.MaxTopK {
		return Result[T]{}, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidTopK, b.idx.rankCfg.MaxTopK)
	}

	if strings.TrimSpace(b.query) == "" {
		return Result[T]{}, fmt.Errorf("%w: empty title", ErrInvalidQuery)
	}
	queryTokens := similarity.Tokenize(b.query)
	if len(queryTokens) == 0 {
		return Result[T]{}, fmt.Errorf("%w: no terms left after normalization", ErrInvalidQuery)
	}

	if len(b.idx.items) == 0 {
		return Result[T]{}, nil
	}

	all := make([][]string, 0, len(b.idx.docs)+1)
	all = append(all, b.idx.docs...)
	all = append(all, queryTokens)

	model := similarity.Fit(all)
	queryVec := model.Transform(queryTokens)
	corpusVecs := model.TransformAll(b.idx.docs)

	matches := similarity.Rank(queryVec, corpusVecs, topK)

	res := Result[T]{Hits: make([]Hit[T], len(matches))}
	for i, m := range matches {
		res.Hits[i] = Hit[T]{Item: b.idx.items[m.Index], Index: m.Index, Score: m.Score}
	}
	if len(matches) > 0 {
		best := matches[0].Score
		res.BestScore = &best
		res.Tier = Tier(b.idx.thresholds.Classify(best))
	}
	return res, nil
}
