package similarity

import "sort"

// Match pairs a corpus index with its similarity score.
type Match struct {
	Index int
	Score float64
}

// Rank scores the query vector against every corpus vector and returns the
// top-k matches ordered by descending score. Equal scores keep ascending
// corpus order (stable sort). With L2-normalized weights the dot product is
// the cosine similarity; zero vectors score 0.0 by definition.
//
// The full corpus is scored and sorted regardless of k; truncation only
// shortens the returned slice. Corpora are department-sized, so a partial
// selection would not pay for itself.
func Rank(query []float64, corpus [][]float64, k int) []Match {
	matches := make([]Match, len(corpus))
	for i, vec := range corpus {
		matches[i] = Match{Index: i, Score: dot(query, vec)}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
