package domain

// KeyPrefix namespaces every store key written by this service.
const KeyPrefix = "titledex:"

// RankConfig holds internal ranking settings, not exposed to clients.
type RankConfig struct {
	DefaultTopK int
	MaxTopK     int
}

// DefaultRankConfig returns the stock ranking limits: up to 10 matches per
// check, 3 when the caller does not ask for a count.
func DefaultRankConfig() RankConfig {
	return RankConfig{DefaultTopK: 3, MaxTopK: 10}
}
