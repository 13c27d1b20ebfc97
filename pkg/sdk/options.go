package titledex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "redis" or "badger"
	addrs     []string
	password  string
	badgerDir string // empty = in-memory

	highThreshold   float64
	mediumThreshold float64
	defaultTopK     int
	maxTopK         int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithBadger configures the client to use an embedded badger store.
// An empty dir runs fully in memory.
func WithBadger(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "badger"
		c.badgerDir = dir
	})
}

// WithRiskThresholds overrides the risk tier boundaries.
// Defaults: high=0.80, medium=0.50.
func WithRiskThresholds(high, medium float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.highThreshold = high
		c.mediumThreshold = medium
	})
}

// WithTopKLimits sets the default and maximum number of matches per check.
// Defaults: 3 and 10.
func WithTopKLimits(defaultTopK, maxTopK int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultTopK = defaultTopK
		c.maxTopK = maxTopK
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
