package titledex

import (
	"context"
	"fmt"
	"io"
	"time"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	domtitle "github.com/thesisdesk/titledex/internal/domain/title"
	"github.com/thesisdesk/titledex/internal/ingest"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
)

// CorpusService manages named title corpora.
type CorpusService struct {
	svc corpusUseCase
	obs *observer
}

// Replace atomically replaces the named corpus with the given titles,
// creating it if absent. Returns the stored corpus info with a fresh revision.
func (s *CorpusService) Replace(ctx context.Context, name string, titles []Title) (_ CorpusInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_replace", start, err) }()

	domTitles, err := titlesToDomain(titles)
	if err != nil {
		return CorpusInfo{}, err
	}
	c, err := s.svc.Replace(ctx, name, domTitles)
	if err != nil {
		return CorpusInfo{}, fmt.Errorf("replace corpus: %w", err)
	}
	return corpusInfoFrom(&c), nil
}

// Get returns the named corpus info and its titles.
func (s *CorpusService) Get(ctx context.Context, name string) (_ CorpusInfo, _ []Title, err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_get", start, err) }()

	c, err := s.svc.Get(ctx, name)
	if err != nil {
		return CorpusInfo{}, nil, fmt.Errorf("get corpus: %w", err)
	}
	return corpusInfoFrom(&c), titlesFromDomain(c.Titles()), nil
}

// Delete removes the named corpus.
func (s *CorpusService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_delete", start, err) }()

	if err = s.svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete corpus: %w", err)
	}
	return nil
}

// List returns the names of all stored corpora.
func (s *CorpusService) List(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_list", start, err) }()

	names, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	return names, nil
}

// LoadCSV replaces the named corpus with titles decoded from CSV data.
// The CSV must carry a recognizable title column header.
func (s *CorpusService) LoadCSV(ctx context.Context, name string, r io.Reader) (_ CorpusInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_load_csv", start, err) }()

	domTitles, err := ingest.DecodeCSV(r)
	if err != nil {
		return CorpusInfo{}, fmt.Errorf("decode csv: %w", err)
	}
	c, err := s.svc.Replace(ctx, name, domTitles)
	if err != nil {
		return CorpusInfo{}, fmt.Errorf("replace corpus: %w", err)
	}
	return corpusInfoFrom(&c), nil
}

// LoadURL replaces the named corpus with titles fetched from a published
// CSV URL, such as a Google Sheets export link.
func (s *CorpusService) LoadURL(ctx context.Context, name, url string) (_ CorpusInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_load_url", start, err) }()

	c, err := s.svc.LoadFromURL(ctx, name, url)
	if err != nil {
		return CorpusInfo{}, fmt.Errorf("load corpus from url: %w", err)
	}
	return corpusInfoFrom(&c), nil
}

// Stats aggregates dashboard statistics over the named corpus.
func (s *CorpusService) Stats(ctx context.Context, name string) (_ Stats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("corpus_stats", start, err) }()

	st, err := s.svc.Stats(ctx, name)
	if err != nil {
		return Stats{}, fmt.Errorf("corpus stats: %w", err)
	}
	return statsFrom(st), nil
}

func titlesToDomain(titles []Title) ([]domtitle.Title, error) {
	out := make([]domtitle.Title, 0, len(titles))
	for i, t := range titles {
		dt, err := domtitle.New(t.Text, t.Metadata)
		if err != nil {
			return nil, fmt.Errorf("title %d: %w", i, err)
		}
		out = append(out, dt)
	}
	return out, nil
}

func titlesFromDomain(titles []domtitle.Title) []Title {
	out := make([]Title, len(titles))
	for i := range titles {
		out[i] = Title{Text: titles[i].Text(), Metadata: titles[i].Metadata()}
	}
	return out
}

func corpusInfoFrom(c *domcorpus.Corpus) CorpusInfo {
	return CorpusInfo{
		Name:      c.Name(),
		Size:      c.Size(),
		Revision:  c.Revision(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func statsFrom(st corpusuc.Stats) Stats {
	top := make([]SupervisorCount, len(st.TopSupervisors))
	for i, s := range st.TopSupervisors {
		top[i] = SupervisorCount{Supervisor: s.Supervisor, Count: s.Count}
	}
	return Stats{
		TotalTitles:         st.TotalTitles,
		DistinctSupervisors: st.DistinctSupervisors,
		ByProgram:           st.ByProgram,
		ByYear:              st.ByYear,
		TopSupervisors:      top,
	}
}
