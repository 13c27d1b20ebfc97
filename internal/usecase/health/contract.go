package health

import "context"

// DBPinger checks store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CorpusChecker checks that a corpus is present in the store.
type CorpusChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}
