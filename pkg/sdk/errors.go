package titledex

import "github.com/thesisdesk/titledex/internal/domain"

// Sentinel errors returned by SDK operations. Match with errors.Is.
var (
	// ErrCorpusNotFound indicates the named corpus is not stored.
	ErrCorpusNotFound = domain.ErrCorpusNotFound
	// ErrInvalidQuery indicates an empty query or one with no usable terms.
	ErrInvalidQuery = domain.ErrInvalidQuery
	// ErrInvalidTopK indicates an out-of-range top-k value.
	ErrInvalidTopK = domain.ErrInvalidTopK
	// ErrInvalidTitle indicates a corpus entry failed validation.
	ErrInvalidTitle = domain.ErrInvalidTitle
	// ErrTitleColumnMissing indicates a CSV table without a recognized title column.
	ErrTitleColumnMissing = domain.ErrTitleColumnMissing
)
