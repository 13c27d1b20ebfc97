package check

import (
	"context"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
)

// mockCorpusReader is a function-field mock for CorpusReader.
type mockCorpusReader struct {
	getFn func(ctx context.Context, name string) (domcorpus.Corpus, error)
}

func (m *mockCorpusReader) Get(ctx context.Context, name string) (domcorpus.Corpus, error) {
	return m.getFn(ctx, name)
}

// fixedCorpus returns a reader that always serves one corpus built from the
// given title texts.
func fixedCorpus(name string, texts ...string) *mockCorpusReader {
	titles := make([]title.Title, len(texts))
	for i, text := range texts {
		titles[i] = title.Reconstruct(text, map[string]string{"row": text})
	}
	c := domcorpus.Reconstruct(name, titles, "rev-1", 1700000000000)
	return &mockCorpusReader{
		getFn: func(context.Context, string) (domcorpus.Corpus, error) {
			return c, nil
		},
	}
}
