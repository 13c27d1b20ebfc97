package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/domain/title"
)

const (
	fetchTimeout = 30 * time.Second
	// maxBodyBytes caps a fetched sheet export at 16MB.
	maxBodyBytes = 16 << 20
)

// Fetcher downloads published title tables (e.g. a sheet's CSV export URL).
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates a Fetcher. logger may be nil.
func NewFetcher(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// FetchCSV downloads and decodes a CSV title table from the given URL.
func (f *Fetcher) FetchCSV(ctx context.Context, url string) ([]title.Title, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	titles, err := DecodeCSV(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	f.logger.Info("fetched title table",
		zap.String("url", url),
		zap.Int("titles", len(titles)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return titles, nil
}
