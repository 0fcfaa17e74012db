package tagger

import (
	"math"
	"regexp"
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
	"github.com/sirupsen/logrus"

	"github.com/nelson960/Trend-Analysis/internal/brand"
	"github.com/nelson960/Trend-Analysis/internal/post"
)

const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
	LabelNeutral  = "Neutral"
)

// Tagged is a post with its resolved brand and sentiment polarity in [-1, 1].
type Tagged struct {
	Post      post.Post
	Brand     string
	Sentiment float64
	Label     string
}

// Tagger assigns at most one tracked brand per post (or one row per matching
// brand when matchAll is set) and a sentiment polarity over the original
// text. Brand matching tests the lowercase form, the original-case form, and
// a naive plural; the first matching brand in tracked order wins, so results
// are sensitive to brand order.
type Tagger struct {
	brands   []string
	patterns []brandPatterns
	matchAll bool
	logger   *logrus.Logger
}

type brandPatterns struct {
	lower    *regexp.Regexp
	original *regexp.Regexp
	plural   *regexp.Regexp
}

func New(brands []string, matchAll bool, logger *logrus.Logger) (*Tagger, error) {
	if len(brands) == 0 {
		return nil, brand.ErrEmptyVocabulary
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	patterns := make([]brandPatterns, len(brands))
	for i, b := range brands {
		patterns[i] = brandPatterns{
			lower:    wordPattern(strings.ToLower(b)),
			original: wordPattern(b),
			plural:   wordPattern(strings.ToLower(b) + "s"),
		}
	}
	return &Tagger{brands: brands, patterns: patterns, matchAll: matchAll, logger: logger}, nil
}

// Tag returns one row per post and matched brand, dropping posts that match
// no tracked brand. Per-post failures are logged and excluded, never fatal.
func (t *Tagger) Tag(posts []post.Post) []Tagged {
	tagged := make([]Tagged, 0, len(posts))
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			t.logger.WithFields(logrus.Fields{"post": p.PostID, "error": err}).
				Warn("skipping unprocessable post")
			continue
		}

		matched := t.match(p.Text)
		if len(matched) == 0 {
			continue
		}

		polarity := Polarity(p.Text)
		for _, b := range matched {
			tagged = append(tagged, Tagged{
				Post:      p,
				Brand:     b,
				Sentiment: polarity,
				Label:     Label(polarity),
			})
		}
	}
	return tagged
}

func (t *Tagger) match(text string) []string {
	lowered := strings.ToLower(text)
	var matched []string
	for i, b := range t.brands {
		pat := t.patterns[i]
		if pat.lower.MatchString(lowered) || pat.original.MatchString(text) || pat.plural.MatchString(lowered) {
			matched = append(matched, b)
			if !t.matchAll {
				return matched
			}
		}
	}
	return matched
}

// Polarity scores text with the VADER lexicon, returning the compound
// polarity clamped to [-1, 1].
func Polarity(text string) float64 {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	compound := sentitext.PolarityScore(parsed).Compound
	if math.IsNaN(compound) {
		return 0
	}
	return math.Max(-1, math.Min(1, compound))
}

// Label discretizes a polarity: positive above zero, negative below,
// neutral at exactly zero.
func Label(polarity float64) string {
	switch {
	case polarity > 0:
		return LabelPositive
	case polarity < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// wordPattern matches the exact surface form on word boundaries. Lowercase
// and plural patterns run against pre-lowered text; the original-case
// pattern runs against the raw text.
func wordPattern(form string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(form) + `\b`)
}
