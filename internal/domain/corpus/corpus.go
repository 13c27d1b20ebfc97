package corpus

import (
	"fmt"
	"regexp"

	"github.com/thesisdesk/titledex/internal/domain/title"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxNameLength is the maximum corpus name length.
const MaxNameLength = 64

// Corpus is a named, ordered set of prior titles (immutable value object).
// Entry order is significant only for index-based metadata lookup; the
// revision changes whenever the corpus content is replaced.
type Corpus struct {
	name      string
	titles    []title.Title
	revision  string
	updatedAt int64
}

// New validates and creates a Corpus.
// Name: ^[a-zA-Z0-9_-]+$, 1-64 chars. An empty title list is valid.
func New(name string, titles []title.Title, revision string, updatedAt int64) (Corpus, error) {
	if name == "" {
		return Corpus{}, fmt.Errorf("corpus name is required")
	}
	if len(name) > MaxNameLength {
		return Corpus{}, fmt.Errorf("corpus name too long (max %d)", MaxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return Corpus{}, fmt.Errorf("corpus name must be alphanumeric with underscores and hyphens")
	}
	return Corpus{name: name, titles: titles, revision: revision, updatedAt: updatedAt}, nil
}

// Reconstruct creates a Corpus without validation (storage hydration).
func Reconstruct(name string, titles []title.Title, revision string, updatedAt int64) Corpus {
	return Corpus{name: name, titles: titles, revision: revision, updatedAt: updatedAt}
}

// Name returns the corpus name.
func (c *Corpus) Name() string { return c.name }

// Titles returns the ordered corpus entries.
func (c *Corpus) Titles() []title.Title { return c.titles }

// Size returns the number of entries.
func (c *Corpus) Size() int { return len(c.titles) }

// Revision returns the content revision identifier.
func (c *Corpus) Revision() string { return c.revision }

// UpdatedAt returns the last replacement time (unix millis).
func (c *Corpus) UpdatedAt() int64 { return c.updatedAt }
