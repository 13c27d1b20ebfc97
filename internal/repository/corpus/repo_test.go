package corpus

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/thesisdesk/titledex/internal/db"
	"github.com/thesisdesk/titledex/internal/domain"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	domtitle "github.com/thesisdesk/titledex/internal/domain/title"
)

func makeCorpus(t *testing.T, name string, texts []string, rev string) domcorpus.Corpus {
	t.Helper()
	titles := make([]domtitle.Title, len(texts))
	for i, text := range texts {
		titles[i] = domtitle.Reconstruct(text, map[string]string{"year": "2024"})
	}
	c, err := domcorpus.New(name, titles, rev, 1700000000000)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	return c
}

func TestReplaceAndGet_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	c := makeCorpus(t, "default", []string{
		"Machine Learning Applications in Healthcare",
		"AI and Blockchain in Supply Chain Management",
	}, "rev-1")

	if err := repo.Replace(ctx, c); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := repo.Get(ctx, "default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Size() != 2 {
		t.Fatalf("expected size 2, got %d", got.Size())
	}
	if got.Revision() != "rev-1" || got.UpdatedAt() != 1700000000000 {
		t.Errorf("meta not carried: %q %d", got.Revision(), got.UpdatedAt())
	}

	titles := got.Titles()
	if titles[0].Text() != "Machine Learning Applications in Healthcare" {
		t.Errorf("entry order not preserved: %q", titles[0].Text())
	}
	if titles[1].Metadata()["year"] != "2024" {
		t.Errorf("metadata not carried: %v", titles[1].Metadata())
	}
}

func TestReplace_ShrinksStaleEntries(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Replace(ctx, makeCorpus(t, "default", []string{"a", "b", "c"}, "rev-1")); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := repo.Replace(ctx, makeCorpus(t, "default", []string{"only"}, "rev-2")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := repo.Get(ctx, "default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Size() != 1 || got.Titles()[0].Text() != "only" {
		t.Fatalf("unexpected corpus after shrink: size %d", got.Size())
	}

	if _, ok := ms.data[entryKey("default", 1)]; ok {
		t.Error("stale entry key 1 not removed")
	}
	if _, ok := ms.data[entryKey("default", 2)]; ok {
		t.Error("stale entry key 2 not removed")
	}
}

func TestReplace_EmptyCorpus(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Replace(ctx, makeCorpus(t, "empty", nil, "rev-1")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := repo.Get(ctx, "empty")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Size() != 0 {
		t.Errorf("expected empty corpus, got size %d", got.Size())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Errorf("expected ErrCorpusNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "default")
	if err != nil || ok {
		t.Fatalf("Exists before Replace = %v, %v", ok, err)
	}

	if err := repo.Replace(ctx, makeCorpus(t, "default", []string{"a"}, "rev-1")); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	ok, err = repo.Exists(ctx, "default")
	if err != nil || !ok {
		t.Fatalf("Exists after Replace = %v, %v", ok, err)
	}
}

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Replace(ctx, makeCorpus(t, "default", []string{"a", "b"}, "rev-1")); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := repo.Delete(ctx, "default"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(ms.data) != 0 {
		t.Errorf("expected all keys removed, got %v", ms.data)
	}

	if err := repo.Delete(ctx, "default"); !errors.Is(err, domain.ErrCorpusNotFound) {
		t.Errorf("expected ErrCorpusNotFound, got %v", err)
	}
}

func TestListNames(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"cs", "business"} {
		if err := repo.Replace(ctx, makeCorpus(t, name, []string{"a"}, "rev-1")); err != nil {
			t.Fatalf("Replace %s: %v", name, err)
		}
	}

	names, err := repo.ListNames(ctx)
	if err != nil {
		t.Fatalf("ListNames: %v", err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "business" || names[1] != "cs" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestReplace_StoreErrorPropagates(t *testing.T) {
	repo, ms := newTestRepo(t)
	boom := errors.New("write failed")
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error { return boom }

	err := repo.Replace(context.Background(), makeCorpus(t, "default", []string{"a"}, "rev-1"))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
