package title

import (
	"fmt"
	"strings"
)

// MaxTitleSize is the maximum title length in bytes.
const MaxTitleSize = 1024

// Title is a corpus entry (immutable value object): the raw title text plus
// opaque metadata carried through ranking untouched (student name, program,
// year, supervisor in the stock sheet layout).
type Title struct {
	text     string
	metadata map[string]string
}

// New validates and creates a Title. The text must be non-empty after
// trimming and within MaxTitleSize.
func New(text string, metadata map[string]string) (Title, error) {
	if strings.TrimSpace(text) == "" {
		return Title{}, fmt.Errorf("title text is required")
	}
	if len(text) > MaxTitleSize {
		return Title{}, fmt.Errorf("title too long (max %d bytes)", MaxTitleSize)
	}
	return Title{text: text, metadata: cloneMap(metadata)}, nil
}

// Reconstruct creates a Title without validation (storage hydration).
// Ingested sheets may carry blank title cells; they stay as empty entries so
// corpus indexes keep matching the source rows.
func Reconstruct(text string, metadata map[string]string) Title {
	return Title{text: text, metadata: metadata}
}

// Text returns the raw title text.
func (t *Title) Text() string { return t.text }

// Metadata returns the opaque metadata fields.
func (t *Title) Metadata() map[string]string { return t.metadata }

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
