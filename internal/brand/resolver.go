package brand

import (
	"errors"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var ErrEmptyVocabulary = errors.New("brand vocabulary is empty")

// DefaultCutoff is the minimum similarity ratio for accepting a non-exact
// match against the vocabulary.
const DefaultCutoff = 0.6

// Resolver validates free-text brand queries against a curated vocabulary,
// correcting near misses by edit-distance ratio. The vocabulary is fixed for
// the resolver's lifetime; resolution is deterministic, with ties broken by
// vocabulary order.
type Resolver struct {
	vocabulary []string
	cutoff     float64
}

func NewResolver(vocabulary []string, cutoff float64) (*Resolver, error) {
	if len(vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}

	vocab := make([]string, len(vocabulary))
	for i, b := range vocabulary {
		vocab[i] = strings.ToLower(strings.TrimSpace(b))
	}
	return &Resolver{vocabulary: vocab, cutoff: cutoff}, nil
}

func (r *Resolver) Vocabulary() []string {
	return r.vocabulary
}

// Resolve returns the canonical brand for query, fixing typos via fuzzy
// matching when no exact match exists. The boolean reports whether any
// candidate cleared the cutoff.
func (r *Resolver) Resolve(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	for _, b := range r.vocabulary {
		if b == q {
			return b, true
		}
	}

	qChars := strings.Split(q, "")
	best := ""
	bestRatio := 0.0
	for _, b := range r.vocabulary {
		m := difflib.NewMatcher(strings.Split(b, ""), qChars)
		if ratio := m.Ratio(); ratio >= r.cutoff && ratio > bestRatio {
			best = b
			bestRatio = ratio
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}
