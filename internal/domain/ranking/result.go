package ranking

// Match is a single ranked hit: the matched corpus entry with its position
// in the source corpus and its similarity score.
type Match struct {
	corpusIndex int
	score       float64
	title       string
	metadata    map[string]string
}

// NewMatch creates a ranked match.
func NewMatch(corpusIndex int, score float64, title string, metadata map[string]string) Match {
	return Match{corpusIndex: corpusIndex, score: score, title: title, metadata: metadata}
}

// CorpusIndex returns the entry's position in the source corpus.
func (m *Match) CorpusIndex() int { return m.corpusIndex }

// Score returns the cosine similarity score in [0, 1].
func (m *Match) Score() float64 { return m.score }

// Title returns the matched title text.
func (m *Match) Title() string { return m.title }

// Metadata returns the opaque metadata attached to the corpus entry.
func (m *Match) Metadata() map[string]string { return m.metadata }

// Report is the outcome of one similarity check: the ordered matches and,
// when the corpus was non-empty, the best score. HasBest distinguishes an
// empty corpus (no best match to classify) from a best score of zero.
type Report struct {
	matches   []Match
	bestScore float64
	hasBest   bool
}

// NewReport creates a report over ranked matches. The first match, if any,
// carries the best score.
func NewReport(matches []Match) Report {
	r := Report{matches: matches}
	if len(matches) > 0 {
		r.bestScore = matches[0].Score()
		r.hasBest = true
	}
	return r
}

// Matches returns the ranked matches, descending by score.
func (r *Report) Matches() []Match { return r.matches }

// BestScore returns the top score and whether one exists.
func (r *Report) BestScore() (float64, bool) { return r.bestScore, r.hasBest }
