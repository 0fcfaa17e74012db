package brand

import (
	"regexp"
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"
	"github.com/sirupsen/logrus"

	"github.com/nelson960/Trend-Analysis/internal/post"
)

// Index maps each canonical brand to the set of post identifiers mentioning
// it. Mentions are detected through two channels, unioned per brand:
// a word-bounded case-insensitive lexical match, and entity extraction over
// the raw text. Built once per batch.
type Index struct {
	mentions map[string]map[string]struct{}
	brands   []string
}

// BuildIndex scans posts for every vocabulary brand. A post whose entity
// pass fails is logged and only contributes lexical matches; the batch is
// never aborted.
func BuildIndex(posts []post.Post, vocabulary []string, logger *logrus.Logger) (*Index, error) {
	if len(vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ix := &Index{
		mentions: make(map[string]map[string]struct{}, len(vocabulary)),
		brands:   vocabulary,
	}
	patterns := make(map[string]*regexp.Regexp, len(vocabulary))
	for _, b := range vocabulary {
		ix.mentions[b] = make(map[string]struct{})
		patterns[b] = wordPattern(b)
	}

	for _, p := range posts {
		for _, b := range vocabulary {
			if patterns[b].MatchString(p.Text) {
				ix.mentions[b][p.PostID] = struct{}{}
			}
		}

		entities, err := extractEntities(p.Text)
		if err != nil {
			logger.WithFields(logrus.Fields{"post": p.PostID, "error": err}).
				Warn("entity extraction failed, lexical channel only")
			continue
		}
		for _, b := range vocabulary {
			if _, ok := entities[b]; ok {
				ix.mentions[b][p.PostID] = struct{}{}
			}
		}
	}

	return ix, nil
}

// Found reports whether the brand has a non-empty mention set.
func (ix *Index) Found(brand string) bool {
	return len(ix.mentions[brand]) > 0
}

// Mentions returns the sorted post identifiers mentioning brand.
func (ix *Index) Mentions(brand string) []string {
	set := ix.mentions[brand]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SearchMultiple resolves each query through the resolver, then checks the
// index for mentions. Queries that resolve and have mentions land in
// available (deduplicated, first occurrence order). A query that resolves
// but has no mentions reports its resolved form in unavailable; an
// unresolvable query reports the original text.
func (ix *Index) SearchMultiple(resolver *Resolver, queries []string) (available, unavailable []string) {
	seen := make(map[string]struct{})
	for _, q := range queries {
		resolved, ok := resolver.Resolve(q)
		if !ok {
			unavailable = append(unavailable, q)
			continue
		}
		if !ix.Found(resolved) {
			unavailable = append(unavailable, resolved)
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		available = append(available, resolved)
	}
	return available, unavailable
}

// wordPattern compiles a whole-word case-insensitive pattern for a canonical
// brand. Hyphenated brands such as coca-cola still match on word boundaries.
func wordPattern(brand string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(brand) + `\b`)
}

// extractEntities returns the lowercased surface forms of recognized
// entities and proper-noun tokens. The prose default model has no dedicated
// organization label, so any entity whose surface equals a vocabulary brand
// counts, alongside NNP-tagged tokens.
func extractEntities(text string) (map[string]struct{}, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	surfaces := make(map[string]struct{})
	for _, ent := range doc.Entities() {
		surfaces[strings.ToLower(ent.Text)] = struct{}{}
	}
	for _, tok := range doc.Tokens() {
		if tok.Tag == "NNP" || tok.Tag == "NNPS" {
			surfaces[strings.ToLower(strings.Trim(tok.Text, "'"))] = struct{}{}
		}
	}
	return surfaces, nil
}
