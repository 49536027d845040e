// Package similarity scores resume text against a job description using
// TF-IDF vectorization and cosine similarity.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Default vectorizer settings.
const (
	DefaultMaxFeatures = 5000
	DefaultNGramMax    = 2
)

// Options configures the scorer.
type Options struct {
	MaxFeatures int     // Vocabulary size cap; 0 uses DefaultMaxFeatures
	NGramMax    int     // Highest n-gram order; 0 uses DefaultNGramMax (unigrams+bigrams)
	Fallback    float64 // Score returned when vectorization degenerates
}

// Scorer computes TF-IDF cosine similarity between two documents.
// Scoring is a pure function over its inputs and never fails: degenerate
// input (an empty vocabulary after stopword removal, for instance) yields
// the configured fallback score instead of an error.
type Scorer struct {
	opts      Options
	stopwords map[string]struct{}
}

// New creates a scorer with the given options.
func New(opts Options) *Scorer {
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = DefaultMaxFeatures
	}
	if opts.NGramMax <= 0 {
		opts.NGramMax = DefaultNGramMax
	}
	stop := make(map[string]struct{}, len(englishStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	return &Scorer{opts: opts, stopwords: stop}
}

// Score returns the cosine similarity between the TF-IDF vectors of the job
// description and the resume text, in [0, 1].
func (s *Scorer) Score(jobText, resumeText string) float64 {
	jobTerms := s.terms(jobText)
	resumeTerms := s.terms(resumeText)
	if len(jobTerms) == 0 || len(resumeTerms) == 0 {
		return s.opts.Fallback
	}

	vocab := s.buildVocabulary(jobTerms, resumeTerms)
	if len(vocab) == 0 {
		return s.opts.Fallback
	}

	jobVec := tfidfVector(jobTerms, resumeTerms, vocab)
	resumeVec := tfidfVector(resumeTerms, jobTerms, vocab)

	sim := cosine(jobVec, resumeVec)
	if math.IsNaN(sim) {
		return s.opts.Fallback
	}
	return clamp01(sim)
}

// terms tokenizes a document and expands tokens into n-grams up to the
// configured order. Stopwords are removed before n-gram construction.
func (s *Scorer) terms(text string) map[string]int {
	tokens := tokenize(text)
	filtered := tokens[:0]
	for _, tok := range tokens {
		if _, stop := s.stopwords[tok]; !stop {
			filtered = append(filtered, tok)
		}
	}

	terms := make(map[string]int)
	for n := 1; n <= s.opts.NGramMax; n++ {
		for i := 0; i+n <= len(filtered); i++ {
			terms[strings.Join(filtered[i:i+n], " ")]++
		}
	}
	return terms
}

// buildVocabulary merges both documents' terms and caps the vocabulary by
// collection frequency, breaking ties lexicographically so scoring stays
// deterministic.
func (s *Scorer) buildVocabulary(a, b map[string]int) map[string]bool {
	total := make(map[string]int, len(a)+len(b))
	for term, count := range a {
		total[term] += count
	}
	for term, count := range b {
		total[term] += count
	}

	if len(total) <= s.opts.MaxFeatures {
		vocab := make(map[string]bool, len(total))
		for term := range total {
			vocab[term] = true
		}
		return vocab
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})

	vocab := make(map[string]bool, s.opts.MaxFeatures)
	for _, term := range terms[:s.opts.MaxFeatures] {
		vocab[term] = true
	}
	return vocab
}

// tfidfVector computes the L2-normalized TF-IDF vector for doc against a
// two-document corpus (doc plus other), restricted to vocab.
// IDF uses the smoothed formula ln((1+n)/(1+df)) + 1 with n = 2.
func tfidfVector(doc, other map[string]int, vocab map[string]bool) map[string]float64 {
	const n = 2.0
	vec := make(map[string]float64, len(doc))
	var norm float64

	for term, tf := range doc {
		if !vocab[term] {
			continue
		}
		df := 1.0
		if other[term] > 0 {
			df = 2.0
		}
		idf := math.Log((1+n)/(1+df)) + 1
		w := float64(tf) * idf
		vec[term] = w
		norm += w * w
	}

	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// cosine returns the dot product of two L2-normalized sparse vectors.
func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.NaN()
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	return dot
}

// tokenize lowercases the text and splits it into alphanumeric tokens of at
// least two characters.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() >= 2 {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
