package report

import (
	"fmt"
	"sort"

	"github.com/nelson960/Trend-Analysis/internal/scorer"
	"github.com/nelson960/Trend-Analysis/internal/trend"
)

// Row is one brand-month of aggregated signals feeding the recommendation
// rules.
type Row struct {
	Month        string
	Brand        string
	Mentions     int
	AvgSentiment float64
	Engagement   float64
	MaxRetweets  int
	TrendDelta   float64
}

// MonthlyRows rolls scored posts into brand-month rows and attaches the
// trend movement (last minus first daily value within the month).
func MonthlyRows(scored []scorer.Scored, series []trend.Point) []Row {
	type key struct{ month, brand string }

	acc := make(map[key]*Row)
	for _, s := range scored {
		k := key{s.Post.Day().Format("2006-01"), s.Brand}
		r, ok := acc[k]
		if !ok {
			r = &Row{Month: k.month, Brand: k.brand}
			acc[k] = r
		}
		r.Mentions++
		r.AvgSentiment += s.Sentiment
		r.Engagement += s.Engagement
		if s.Post.Retweets > r.MaxRetweets {
			r.MaxRetweets = s.Post.Retweets
		}
	}
	for _, r := range acc {
		r.AvgSentiment /= float64(r.Mentions)
	}

	type bounds struct{ first, last float64 }
	deltas := make(map[key]*bounds)
	for _, p := range series {
		k := key{p.Date.Format("2006-01"), p.Brand}
		b, ok := deltas[k]
		if !ok {
			deltas[k] = &bounds{first: p.Value, last: p.Value}
			continue
		}
		b.last = p.Value
	}
	for k, b := range deltas {
		if r, ok := acc[k]; ok {
			r.TrendDelta = b.last - b.first
		}
	}

	rows := make([]Row, 0, len(acc))
	for _, r := range acc {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Brand < rows[j].Brand
	})
	return rows
}

// MentionDates projects scored posts to the brand-date pairs consumed by
// trend.CountMentions, one pair per tagged post.
func MentionDates(scored []scorer.Scored) []trend.BrandDate {
	dates := make([]trend.BrandDate, len(scored))
	for i, s := range scored {
		dates[i] = trend.BrandDate{Brand: s.Brand, Date: s.Post.Day()}
	}
	return dates
}

// Recommendations applies the decision rules to one brand-month row. At
// least one recommendation is always returned.
func Recommendations(r Row) []string {
	var recs []string

	if r.Mentions > 100 && r.Engagement > 0.5 {
		recs = append(recs, fmt.Sprintf(
			"%s had high engagement with %d mentions; consider scaling marketing efforts this month.",
			r.Brand, r.Mentions))
	}
	if r.Mentions > 50 && r.AvgSentiment < -0.3 {
		recs = append(recs, fmt.Sprintf(
			"%s is facing negative sentiment (%.2f) across %d mentions; a PR response is recommended.",
			r.Brand, r.AvgSentiment, r.Mentions))
	}
	if r.Engagement < 0 {
		recs = append(recs, fmt.Sprintf(
			"%s engagement is declining (%.2f); revisit content and campaign strategy.",
			r.Brand, r.Engagement))
	}
	if r.MaxRetweets > 100 {
		recs = append(recs, fmt.Sprintf(
			"A post about %s saw viral reach; amplify this content style.", r.Brand))
	}
	if r.TrendDelta < -0.2 {
		recs = append(recs, fmt.Sprintf(
			"%s trend dipped over the month (%.2f); reassess against competitors.",
			r.Brand, r.TrendDelta))
	}

	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf(
			"%s is stable with growth potential; a good window to test new content formats.",
			r.Brand))
	}
	return recs
}
