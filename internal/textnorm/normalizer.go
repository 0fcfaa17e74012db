package textnorm

import (
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

var (
	// URLs, @-mentions and #-hashtags carry no lexical signal for brand
	// detection and are stripped before anything else.
	socialRe  = regexp.MustCompile(`http\S+|www\S+|https\S+|@\w+|#\w+`)
	nonWordRe = regexp.MustCompile(`[^\w\s]`)
)

// Normalizer cleans raw post text: strip URLs/mentions/hashtags, strip
// punctuation, lowercase, then tokenize, lemmatize and drop stopwords.
// One Normalizer is shared across a batch so regexes and the stopword set
// are built once per pipeline run.
type Normalizer struct {
	docOpts []prose.DocOpt
}

func New() *Normalizer {
	return &Normalizer{
		docOpts: []prose.DocOpt{
			prose.WithTagging(false),
			prose.WithExtraction(false),
			prose.WithSegmentation(false),
		},
	}
}

// Normalize returns the cleaned form of text. Invalid or empty input yields
// an empty string, never an error. The output is a fixed point:
// Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	text = socialRe.ReplaceAllString(text, "")
	text = nonWordRe.ReplaceAllString(text, "")
	text = strings.ToLower(text)

	doc, err := prose.NewDocument(text, n.docOpts...)
	if err != nil {
		return ""
	}

	var out []string
	for _, tok := range doc.Tokens() {
		w := tok.Text
		if _, ok := stopwords[w]; ok {
			continue
		}
		w = lemma(w)
		if w == "" {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// NormalizeAll processes a batch through one shared normalizer. Output per
// text is identical to calling Normalize on it alone.
func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}

// lemma reduces a token to a base form by iterating suffix rules until the
// token no longer changes, which keeps normalization idempotent.
func lemma(w string) string {
	for {
		next := lemmaOnce(w)
		if next == w {
			return w
		}
		w = next
	}
}

func lemmaOnce(w string) string {
	if len(w) < 4 {
		return w
	}
	switch {
	case strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ied"):
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		return trimDouble(w[:len(w)-3])
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return trimDouble(w[:len(w)-2])
	}
	return w
}

func trimDouble(stem string) string {
	if len(stem) > 2 && stem[len(stem)-1] == stem[len(stem)-2] {
		return stem[:len(stem)-1]
	}
	return stem
}
