package titledex

// Title is one corpus entry: the title text plus opaque metadata.
type Title struct {
	Text     string
	Metadata map[string]string
}

// Match is a single ranked hit.
type Match struct {
	// Index is the entry's position in the corpus.
	Index int
	// Score is the cosine similarity in [0, 1].
	Score float64
	// Title is the matched title text.
	Title string
	// Metadata carries the corpus entry's metadata.
	Metadata map[string]string
}

// RiskTier classifies the best match score.
type RiskTier string

const (
	// RiskHigh indicates heavy overlap with an existing title.
	RiskHigh RiskTier = "high"
	// RiskMedium indicates partial overlap.
	RiskMedium RiskTier = "medium"
	// RiskLow indicates little overlap.
	RiskLow RiskTier = "low"
)

// CheckResult is the outcome of one similarity check. BestScore and Tier are
// only set when the corpus was non-empty.
type CheckResult struct {
	Matches    []Match
	BestScore  *float64
	Tier       RiskTier
	CorpusSize int
}

// CorpusInfo describes a stored corpus.
type CorpusInfo struct {
	Name      string
	Size      int
	Revision  string
	UpdatedAt int64
}

// SupervisorCount is one row of the supervisor leaderboard.
type SupervisorCount struct {
	Supervisor string
	Count      int
}

// Stats are the dashboard aggregates over one corpus.
type Stats struct {
	TotalTitles         int
	DistinctSupervisors int
	ByProgram           map[string]int
	ByYear              map[string]int
	TopSupervisors      []SupervisorCount
}
