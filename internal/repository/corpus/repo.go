package corpus

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thesisdesk/titledex/internal/db"
	"github.com/thesisdesk/titledex/internal/domain"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	domtitle "github.com/thesisdesk/titledex/internal/domain/title"
)

// store is the consumer interface for corpora (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase corpus storage over hash keys: one meta hash per
// corpus plus one hash per entry, keyed by position so corpus indexes stay
// stable between ingest and ranking.
type Repo struct {
	store store
}

// New creates a corpus repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Replace atomically swaps the stored corpus content: stale entry keys are
// removed, new entries are written in one pipelined batch, then the meta
// hash with the new size and revision.
func (r *Repo) Replace(ctx context.Context, c domcorpus.Corpus) error {
	name := c.Name()

	oldSize, err := r.size(ctx, name)
	if err != nil {
		return err
	}

	// Drop stale entries beyond the new size before writing, so readers
	// never see a longer corpus than the meta records.
	for i := c.Size(); i < oldSize; i++ {
		if err := r.store.Del(ctx, entryKey(name, i)); err != nil {
			return fmt.Errorf("del stale entry %d: %w", i, err)
		}
	}

	titles := c.Titles()
	items := make([]db.HashSetItem, len(titles))
	for i := range titles {
		// Del then set: HSET merges fields, and metadata columns may
		// differ between uploads.
		if i < oldSize {
			if err := r.store.Del(ctx, entryKey(name, i)); err != nil {
				return fmt.Errorf("del entry %d: %w", i, err)
			}
		}
		items[i] = db.HashSetItem{Key: entryKey(name, i), Fields: titleToHash(&titles[i])}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset corpus %s entries: %w", name, err)
	}

	meta := map[string]string{
		"name":       name,
		"size":       strconv.Itoa(c.Size()),
		"revision":   c.Revision(),
		"updated_at": strconv.FormatInt(c.UpdatedAt(), 10),
	}
	if err := r.store.HSet(ctx, metaKey(name), meta); err != nil {
		return fmt.Errorf("hset corpus %s meta: %w", name, err)
	}
	return nil
}

// Get returns a corpus snapshot by name.
func (r *Repo) Get(ctx context.Context, name string) (domcorpus.Corpus, error) {
	meta, err := r.store.HGetAll(ctx, metaKey(name))
	if err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("hgetall corpus %s meta: %w", name, err)
	}
	if len(meta) == 0 {
		return domcorpus.Corpus{}, domain.ErrCorpusNotFound
	}

	size, err := strconv.Atoi(meta["size"])
	if err != nil {
		return domcorpus.Corpus{}, fmt.Errorf("corpus %s: invalid size %q: %w", name, meta["size"], err)
	}

	updatedAt, _ := strconv.ParseInt(meta["updated_at"], 10, 64)

	titles := make([]domtitle.Title, 0, size)
	if size > 0 {
		keys := make([]string, size)
		for i := 0; i < size; i++ {
			keys[i] = entryKey(name, i)
		}
		maps, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return domcorpus.Corpus{}, fmt.Errorf("hgetall corpus %s entries: %w", name, err)
		}
		for _, m := range maps {
			titles = append(titles, titleFromHash(m))
		}
	}

	return domcorpus.Reconstruct(name, titles, meta["revision"], updatedAt), nil
}

// Exists checks whether a corpus is stored.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	meta, err := r.store.HGetAll(ctx, metaKey(name))
	if err != nil {
		return false, fmt.Errorf("hgetall corpus %s meta: %w", name, err)
	}
	return len(meta) > 0, nil
}

// Delete removes a corpus and all its entries.
func (r *Repo) Delete(ctx context.Context, name string) error {
	size, err := r.size(ctx, name)
	if err != nil {
		return err
	}
	if size < 0 {
		return domain.ErrCorpusNotFound
	}

	for i := 0; i < size; i++ {
		if err := r.store.Del(ctx, entryKey(name, i)); err != nil {
			return fmt.Errorf("del entry %d: %w", i, err)
		}
	}
	if err := r.store.Del(ctx, metaKey(name)); err != nil {
		return fmt.Errorf("del corpus %s meta: %w", name, err)
	}
	return nil
}

// ListNames returns the names of all stored corpora.
func (r *Repo) ListNames(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%scorpus:meta:*", domain.KeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("scan corpora: %w", err)
	}
	names := make([]string, 0, len(keys))
	prefix := fmt.Sprintf("%scorpus:meta:", domain.KeyPrefix)
	for _, k := range keys {
		names = append(names, k[len(prefix):])
	}
	return names, nil
}

// size returns the stored entry count, or -1 when the corpus is missing.
func (r *Repo) size(ctx context.Context, name string) (int, error) {
	meta, err := r.store.HGetAll(ctx, metaKey(name))
	if err != nil {
		return 0, fmt.Errorf("hgetall corpus %s meta: %w", name, err)
	}
	if len(meta) == 0 {
		return -1, nil
	}
	size, err := strconv.Atoi(meta["size"])
	if err != nil {
		return 0, fmt.Errorf("corpus %s: invalid size %q: %w", name, meta["size"], err)
	}
	return size, nil
}

func metaKey(name string) string {
	return fmt.Sprintf("%scorpus:meta:%s", domain.KeyPrefix, name)
}

func entryKey(name string, i int) string {
	return fmt.Sprintf("%scorpus:%s:title:%d", domain.KeyPrefix, name, i)
}
