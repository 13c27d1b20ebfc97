package similarity

import "math"

// Vectorizer holds the vocabulary and IDF statistics fit over one request's
// combined document set (corpus plus query). It must be rebuilt per request:
// fitting over the corpus alone and transforming the query afterwards would
// shift every weight and break the tuned risk thresholds.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// Fit builds a Vectorizer from the token sequences of every document in the
// request. Vocabulary indices are assigned in first-seen order.
// IDF uses the smoothed form idf(t) = ln((1+N)/(1+df(t))) + 1.
func Fit(docs [][]string) *Vectorizer {
	vocab := make(map[string]int)
	docFreq := make(map[string]int)

	for _, tokens := range docs {
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for tok, idx := range vocab {
		idf[idx] = math.Log((1+n)/(1+float64(docFreq[tok]))) + 1
	}

	return &Vectorizer{vocabulary: vocab, idf: idf}
}

// VocabularySize returns the number of distinct terms in the fit.
func (v *Vectorizer) VocabularySize() int { return len(v.vocabulary) }

// Transform produces the L2-normalized tf-idf weight vector for one
// document's tokens. A document with no known tokens yields a zero vector;
// a zero vector is left unnormalized.
func (v *Vectorizer) Transform(tokens []string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for idx := range vec {
		vec[idx] *= v.idf[idx]
		norm += vec[idx] * vec[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// TransformAll transforms each token sequence, preserving order.
func (v *Vectorizer) TransformAll(docs [][]string) [][]float64 {
	out := make([][]float64, len(docs))
	for i, tokens := range docs {
		out[i] = v.Transform(tokens)
	}
	return out
}
