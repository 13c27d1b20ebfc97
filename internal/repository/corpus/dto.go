package corpus

import (
	domtitle "github.com/thesisdesk/titledex/internal/domain/title"
)

// titleField is the reserved hash field holding the title text; all other
// fields are opaque metadata.
const titleField = "__title"

// titleToHash converts a domain Title into a flat map for HSET.
func titleToHash(t *domtitle.Title) map[string]string {
	m := make(map[string]string, 1+len(t.Metadata()))
	m[titleField] = t.Text()
	for k, v := range t.Metadata() {
		m[k] = v
	}
	return m
}

// titleFromHash hydrates a domain Title from an HGETALL result map.
func titleFromHash(m map[string]string) domtitle.Title {
	var text string
	var metadata map[string]string

	for k, v := range m {
		if k == titleField {
			text = v
			continue
		}
		if metadata == nil {
			metadata = make(map[string]string, len(m)-1)
		}
		metadata[k] = v
	}

	return domtitle.Reconstruct(text, metadata)
}
