package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCorpusNotFound signals a missing corpus.
	ErrCorpusNotFound = errors.New("corpus not found")
	// ErrCorpusExists signals a duplicate corpus.
	ErrCorpusExists = errors.New("corpus already exists")
	// ErrInvalidQuery signals a query title that is empty, whitespace-only,
	// or reduces to zero terms after normalization. Distinct from an empty
	// corpus so callers can prompt for input instead of rendering an empty
	// ranking.
	ErrInvalidQuery = errors.New("invalid query title")
	// ErrInvalidTopK signals a non-positive or out-of-range top_k.
	ErrInvalidTopK = errors.New("invalid top_k")
	// ErrInvalidTitle signals an invalid corpus title entry.
	ErrInvalidTitle = errors.New("invalid title")
	// ErrTitleColumnMissing signals an ingested table with no recognized
	// title column.
	ErrTitleColumnMissing = errors.New("title column missing")
)
