package corpus

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/domain"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
)

func newTestService(repo *mockRepo, fetcher Fetcher) *Service {
	if fetcher == nil {
		fetcher = &mockFetcher{}
	}
	return New(repo, fetcher, zap.NewNop())
}

func TestReplace_StoresWithFreshRevision(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)

	titles := []title.Title{
		mustTitle("Machine Learning in Healthcare", nil),
		mustTitle("Blockchain Voting Systems", nil),
	}

	c1, err := svc.Replace(context.Background(), "capstones", titles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c1.Size() != 2 {
		t.Errorf("size = %d, want 2", c1.Size())
	}
	if c1.Revision() == "" {
		t.Error("expected a non-empty revision")
	}
	if c1.UpdatedAt() == 0 {
		t.Error("expected updated_at to be set")
	}

	c2, err := svc.Replace(context.Background(), "capstones", titles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c2.Revision() == c1.Revision() {
		t.Error("replacing must mint a new revision")
	}
}

func TestReplace_InvalidName(t *testing.T) {
	svc := newTestService(newMockRepo(), nil)

	for _, name := range []string{"", "has spaces", "bad/slash"} {
		if _, err := svc.Replace(context.Background(), name, nil); err == nil {
			t.Errorf("name %q: expected validation error", name)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), nil)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Errorf("error = %v, want ErrCorpusNotFound", err)
	}
}

func TestDelete_RoundTrip(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Replace(context.Background(), "capstones", []title.Title{mustTitle("Anything", nil)}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := svc.Delete(context.Background(), "capstones"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "capstones"); !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Errorf("second delete error = %v, want ErrCorpusNotFound", err)
	}
}

func TestLoadFromURL_ReplacesFromSheet(t *testing.T) {
	repo := newMockRepo()
	fetched := []title.Title{
		mustTitle("Fetched Title One", map[string]string{"year": "2024"}),
		mustTitle("Fetched Title Two", map[string]string{"year": "2025"}),
	}
	fetcher := &mockFetcher{
		fetchCSVFn: func(_ context.Context, url string) ([]title.Title, error) {
			if url != "https://example.test/sheet.csv" {
				t.Errorf("unexpected url %q", url)
			}
			return fetched, nil
		},
	}
	svc := newTestService(repo, fetcher)

	c, err := svc.LoadFromURL(context.Background(), "capstones", "https://example.test/sheet.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Size() != 2 {
		t.Errorf("size = %d, want 2", c.Size())
	}
}

func TestLoadFromURL_FetchError(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &mockFetcher{
		fetchCSVFn: func(context.Context, string) ([]title.Title, error) {
			return nil, boom
		},
	}
	svc := newTestService(newMockRepo(), fetcher)

	_, err := svc.LoadFromURL(context.Background(), "capstones", "https://example.test/sheet.csv")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped fetch error", err)
	}
}

func TestSeed_OnlyWhenAbsent(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)

	seeded, err := svc.Seed(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seeded {
		t.Fatal("expected first seed to store the defaults")
	}

	c, err := svc.Get(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Size() == 0 {
		t.Error("seeded corpus must not be empty")
	}

	again, err := svc.Seed(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again {
		t.Error("second seed must be a no-op")
	}
}

func TestStats_Aggregates(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)

	titles := []title.Title{
		mustTitle("T1", map[string]string{"program": "CS", "year": "2024", "supervisor": "Rao"}),
		mustTitle("T2", map[string]string{"program": "CS", "year": "2025", "supervisor": "Rao"}),
		mustTitle("T3", map[string]string{"program": "IT", "year": "2025", "supervisor": "Ahmed"}),
		mustTitle("T4", map[string]string{"program": "IT"}),
		mustTitle("T5", nil),
	}
	if _, err := svc.Replace(context.Background(), "capstones", titles); err != nil {
		t.Fatalf("replace: %v", err)
	}

	st, err := svc.Stats(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.TotalTitles != 5 {
		t.Errorf("total = %d, want 5", st.TotalTitles)
	}
	if st.DistinctSupervisors != 2 {
		t.Errorf("distinct supervisors = %d, want 2", st.DistinctSupervisors)
	}
	if st.ByProgram["CS"] != 2 || st.ByProgram["IT"] != 2 {
		t.Errorf("by program = %v", st.ByProgram)
	}
	if st.ByYear["2025"] != 2 || st.ByYear["2024"] != 1 {
		t.Errorf("by year = %v", st.ByYear)
	}
	if len(st.TopSupervisors) != 2 {
		t.Fatalf("top supervisors = %v", st.TopSupervisors)
	}
	if st.TopSupervisors[0].Supervisor != "Rao" || st.TopSupervisors[0].Count != 2 {
		t.Errorf("leaderboard head = %+v, want Rao/2", st.TopSupervisors[0])
	}
}

func TestTopSupervisors_TieBreakAndCap(t *testing.T) {
	counts := map[string]int{}
	for _, name := range []string{"k", "b", "a", "c", "d", "e", "f", "g", "h", "i", "j"} {
		counts[name] = 1
	}
	counts["z"] = 5

	rows := topSupervisors(counts)
	if len(rows) != maxTopSupervisors {
		t.Fatalf("leaderboard length = %d, want %d", len(rows), maxTopSupervisors)
	}
	if rows[0].Supervisor != "z" {
		t.Errorf("head = %q, want z", rows[0].Supervisor)
	}
	for i := 2; i < len(rows); i++ {
		if rows[i-1].Supervisor > rows[i].Supervisor {
			t.Errorf("ties not name-ordered at %d: %q > %q", i, rows[i-1].Supervisor, rows[i].Supervisor)
		}
	}
}

func TestReplace_RepoErrorPropagates(t *testing.T) {
	repo := newMockRepo()
	boom := errors.New("store down")
	repo.replaceFn = func(context.Context, domcorpus.Corpus) error {
		return boom
	}
	svc := newTestService(repo, nil)

	_, err := svc.Replace(context.Background(), "capstones", []title.Title{mustTitle("Anything", nil)})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestStats_CacheHitSkipsRecompute(t *testing.T) {
	repo := newMockRepo()
	cache := newMockStatsCache()
	svc := newTestService(repo, nil).WithStatsCache(cache)

	titles := []title.Title{
		mustTitle("T1", map[string]string{"supervisor": "Rao"}),
	}
	if _, err := svc.Replace(context.Background(), "capstones", titles); err != nil {
		t.Fatalf("replace: %v", err)
	}

	first, err := svc.Stats(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1 after a miss", cache.sets)
	}

	second, err := svc.Stats(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want no write on a hit", cache.sets)
	}
	if cache.gets != 2 {
		t.Errorf("cache gets = %d, want 2", cache.gets)
	}
	if second.TotalTitles != first.TotalTitles || second.DistinctSupervisors != first.DistinctSupervisors {
		t.Errorf("cached stats = %+v, want %+v", second, first)
	}
}

func TestStats_ReplaceInvalidatesViaRevision(t *testing.T) {
	repo := newMockRepo()
	cache := newMockStatsCache()
	svc := newTestService(repo, nil).WithStatsCache(cache)

	seed := []title.Title{mustTitle("T1", nil)}
	if _, err := svc.Replace(context.Background(), "capstones", seed); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := svc.Stats(context.Background(), "capstones"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grown := []title.Title{mustTitle("T1", nil), mustTitle("T2", nil)}
	if _, err := svc.Replace(context.Background(), "capstones", grown); err != nil {
		t.Fatalf("replace: %v", err)
	}

	st, err := svc.Stats(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalTitles != 2 {
		t.Errorf("total = %d, want 2 after replacement", st.TotalTitles)
	}
	if cache.sets != 2 {
		t.Errorf("cache sets = %d, want a write per revision", cache.sets)
	}
}

func TestStats_CacheFailureFallsBack(t *testing.T) {
	repo := newMockRepo()
	cache := newMockStatsCache()
	cache.getFn = func(context.Context, string) ([]byte, error) {
		return nil, errors.New("store down")
	}
	svc := newTestService(repo, nil).WithStatsCache(cache)

	if _, err := svc.Replace(context.Background(), "capstones", []title.Title{mustTitle("T1", nil)}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	st, err := svc.Stats(context.Background(), "capstones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalTitles != 1 {
		t.Errorf("total = %d, want recompute despite cache failure", st.TotalTitles)
	}
}
