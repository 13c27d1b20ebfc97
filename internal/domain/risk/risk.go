package risk

import "fmt"

// Tier is the three-level topic-overlap classification of a best score.
type Tier string

const (
	// High indicates heavy overlap with an existing title (score > 0.80).
	High Tier = "high"
	// Medium indicates partial overlap (0.50 < score <= 0.80).
	Medium Tier = "medium"
	// Low indicates little overlap (score <= 0.50).
	Low Tier = "low"
)

// Default tier boundaries. Both bounds are exclusive on the upper side:
// exactly 0.80 classifies Medium, exactly 0.50 classifies Low.
const (
	DefaultHighThreshold   = 0.80
	DefaultMediumThreshold = 0.50
)

// Thresholds holds the tier boundaries. The zero value is not usable;
// construct via NewThresholds or use Defaults.
type Thresholds struct {
	high   float64
	medium float64
}

// Defaults returns the stock thresholds (0.80 / 0.50).
func Defaults() Thresholds {
	return Thresholds{high: DefaultHighThreshold, medium: DefaultMediumThreshold}
}

// NewThresholds validates and creates custom tier boundaries.
func NewThresholds(high, medium float64) (Thresholds, error) {
	if high <= 0 || high > 1 {
		return Thresholds{}, fmt.Errorf("high threshold must be in (0, 1], got %v", high)
	}
	if medium <= 0 || medium >= high {
		return Thresholds{}, fmt.Errorf("medium threshold must be in (0, high), got %v", medium)
	}
	return Thresholds{high: high, medium: medium}, nil
}

// High returns the high-tier boundary.
func (t Thresholds) High() float64 { return t.high }

// Medium returns the medium-tier boundary.
func (t Thresholds) Medium() float64 { return t.medium }

// Classify maps a best-match score to its tier. Callers must branch on
// corpus emptiness first; an empty ranking has no score to classify.
func (t Thresholds) Classify(score float64) Tier {
	switch {
	case score > t.high:
		return High
	case score > t.medium:
		return Medium
	default:
		return Low
	}
}
