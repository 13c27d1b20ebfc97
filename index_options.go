package titledex

import "github.com/thesisdesk/titledex/internal/domain"

// IndexOption configures index construction.
type IndexOption func(*indexConfig)

type indexConfig struct {
	highThreshold   float64
	mediumThreshold float64
	rankCfg         domain.RankConfig
}

// WithThresholds overrides the tier boundaries.
// Defaults: high=0.80, medium=0.50.
func WithThresholds(high, medium float64) IndexOption {
	return func(c *indexConfig) {
		c.highThreshold = high
		c.mediumThreshold = medium
	}
}

// WithTopK sets the default and maximum number of hits per check.
// Defaults: 3 and 10.
func WithTopK(defaultTopK, maxTopK int) IndexOption {
	return func(c *indexConfig) {
		c.rankCfg = domain.RankConfig{DefaultTopK: defaultTopK, MaxTopK: maxTopK}
	}
}
