// Package check implements the similarity-check use case: load a corpus
// snapshot, run the lexical ranking pipeline against a query title, and
// classify the overlap risk of the best match.
package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/thesisdesk/titledex/internal/domain"
	"github.com/thesisdesk/titledex/internal/domain/ranking"
	"github.com/thesisdesk/titledex/internal/domain/risk"
	"github.com/thesisdesk/titledex/internal/similarity"
)

// Outcome is the result of one similarity check. Tier is only meaningful
// when the report carries a best score; callers must branch on emptiness
// before rendering it.
type Outcome struct {
	Report         ranking.Report
	Tier           risk.Tier
	CorpusSize     int
	CorpusRevision string
}

// Service handles similarity checks.
type Service struct {
	corpora    CorpusReader
	thresholds risk.Thresholds
	rankCfg    domain.RankConfig
}

// New creates a check service with default risk thresholds and rank limits.
func New(corpora CorpusReader) *Service {
	return &Service{
		corpora:    corpora,
		thresholds: risk.Defaults(),
		rankCfg:    domain.DefaultRankConfig(),
	}
}

// WithThresholds overrides the risk tier boundaries.
func (s *Service) WithThresholds(t risk.Thresholds) *Service {
	s.thresholds = t
	return s
}

// WithRankConfig overrides the top-k defaults and limits.
func (s *Service) WithRankConfig(cfg domain.RankConfig) *Service {
	if cfg.DefaultTopK > 0 {
		s.rankCfg.DefaultTopK = cfg.DefaultTopK
	}
	if cfg.MaxTopK > 0 {
		s.rankCfg.MaxTopK = cfg.MaxTopK
	}
	return s
}

// Thresholds returns the configured risk tier boundaries.
func (s *Service) Thresholds() risk.Thresholds { return s.thresholds }

// Check ranks the query title against the named corpus and classifies the
// best match. topK of 0 means "use the default"; the vocabulary and IDF
// statistics are fit over corpus+query for this request only and discarded.
func (s *Service) Check(ctx context.Context, corpusName, query string, topK int) (Outcome, error) {
	if topK == 0 {
		topK = s.rankCfg.DefaultTopK
	}
	if topK < 1 || topK > s.rankCfg.MaxTopK {
		return Outcome{}, fmt.Errorf("%w: must be between 1 and %d", domain.ErrInvalidTopK, s.rankCfg.MaxTopK)
	}

	if strings.TrimSpace(query) == "" {
		return Outcome{}, fmt.Errorf("%w: empty title", domain.ErrInvalidQuery)
	}
	queryTokens := similarity.Tokenize(query)
	if len(queryTokens) == 0 {
		return Outcome{}, fmt.Errorf("%w: no terms left after normalization", domain.ErrInvalidQuery)
	}

	c, err := s.corpora.Get(ctx, corpusName)
	if err != nil {
		return Outcome{}, fmt.Errorf("get corpus: %w", err)
	}

	titles := c.Titles()
	if len(titles) == 0 {
		// A valid, degenerate outcome: nothing to rank, no tier.
		return Outcome{
			Report:         ranking.NewReport(nil),
			CorpusRevision: c.Revision(),
		}, nil
	}

	texts := make([]string, len(titles))
	for i := range titles {
		texts[i] = titles[i].Text()
	}
	corpusTokens := similarity.TokenizeAll(texts)

	all := make([][]string, 0, len(corpusTokens)+1)
	all = append(all, corpusTokens...)
	all = append(all, queryTokens)

	vectorizer := similarity.Fit(all)
	queryVec := vectorizer.Transform(queryTokens)
	corpusVecs := vectorizer.TransformAll(corpusTokens)

	ranked := similarity.Rank(queryVec, corpusVecs, topK)

	matches := make([]ranking.Match, len(ranked))
	for i, m := range ranked {
		t := &titles[m.Index]
		matches[i] = ranking.NewMatch(m.Index, m.Score, t.Text(), t.Metadata())
	}

	report := ranking.NewReport(matches)
	out := Outcome{
		Report:         report,
		CorpusSize:     len(titles),
		CorpusRevision: c.Revision(),
	}
	if best, ok := report.BestScore(); ok {
		out.Tier = s.thresholds.Classify(best)
	}
	return out, nil
}
