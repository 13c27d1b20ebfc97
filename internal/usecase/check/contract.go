package check

import (
	"context"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
)

// CorpusReader supplies corpus snapshots for ranking.
type CorpusReader interface {
	Get(ctx context.Context, name string) (domcorpus.Corpus, error)
}

// Checker runs one similarity check. Implemented by Service and by the
// instrumented decorator.
type Checker interface {
	Check(ctx context.Context, corpusName, query string, topK int) (Outcome, error)
}
