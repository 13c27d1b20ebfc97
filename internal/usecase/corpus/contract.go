package corpus

import (
	"context"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
)

// Repository is the storage contract for corpora.
type Repository interface {
	Replace(ctx context.Context, c domcorpus.Corpus) error
	Get(ctx context.Context, name string) (domcorpus.Corpus, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
	ListNames(ctx context.Context) ([]string, error)
}

// Fetcher pulls a published CSV sheet and decodes it into titles.
type Fetcher interface {
	FetchCSV(ctx context.Context, url string) ([]title.Title, error)
}
