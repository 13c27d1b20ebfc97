package chi

import (
	"context"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
	checkuc "github.com/thesisdesk/titledex/internal/usecase/check"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
	healthuc "github.com/thesisdesk/titledex/internal/usecase/health"
)

// mockChecker is a function-field mock for the check use case.
type mockChecker struct {
	checkFn func(ctx context.Context, corpusName, query string, topK int) (checkuc.Outcome, error)
}

func (m *mockChecker) Check(ctx context.Context, corpusName, query string, topK int) (checkuc.Outcome, error) {
	return m.checkFn(ctx, corpusName, query, topK)
}

// mockCorpora is a function-field mock for CorpusManager.
type mockCorpora struct {
	replaceFn     func(ctx context.Context, name string, titles []title.Title) (domcorpus.Corpus, error)
	getFn         func(ctx context.Context, name string) (domcorpus.Corpus, error)
	deleteFn      func(ctx context.Context, name string) error
	listFn        func(ctx context.Context) ([]string, error)
	loadFromURLFn func(ctx context.Context, name, url string) (domcorpus.Corpus, error)
	statsFn       func(ctx context.Context, name string) (corpusuc.Stats, error)
}

func (m *mockCorpora) Replace(ctx context.Context, name string, titles []title.Title) (domcorpus.Corpus, error) {
	return m.replaceFn(ctx, name, titles)
}

func (m *mockCorpora) Get(ctx context.Context, name string) (domcorpus.Corpus, error) {
	return m.getFn(ctx, name)
}

func (m *mockCorpora) Delete(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

func (m *mockCorpora) List(ctx context.Context) ([]string, error) {
	return m.listFn(ctx)
}

func (m *mockCorpora) LoadFromURL(ctx context.Context, name, url string) (domcorpus.Corpus, error) {
	return m.loadFromURLFn(ctx, name, url)
}

func (m *mockCorpora) Stats(ctx context.Context, name string) (corpusuc.Stats, error) {
	return m.statsFn(ctx, name)
}

// mockHealth is a function-field mock for HealthChecker.
type mockHealth struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealth) Check(ctx context.Context) healthuc.Report {
	if m.checkFn != nil {
		return m.checkFn(ctx)
	}
	return healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}
}
