package trend

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nelson960/Trend-Analysis/internal/scorer"
)

// Point is one daily aggregated engagement value for a brand. Dates are
// naive calendar days.
type Point struct {
	Date  time.Time
	Value float64
	Brand string
}

// Aggregate rolls scored posts into per-brand daily sums, in brand order
// then date order. Brands with no scored posts are logged and skipped;
// an empty result is not an error.
func Aggregate(scored []scorer.Scored, brands []string, logger *logrus.Logger) []Point {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var series []Point
	for _, b := range brands {
		daily := make(map[time.Time]float64)
		for _, s := range scored {
			if s.Brand != b {
				continue
			}
			daily[s.Post.Day()] += s.Engagement
		}

		if len(daily) == 0 {
			logger.WithField("brand", b).Debug("no scored posts for brand, skipping")
			continue
		}

		days := make([]time.Time, 0, len(daily))
		for d := range daily {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		for _, d := range days {
			series = append(series, Point{Date: d, Value: daily[d], Brand: b})
		}
	}
	return series
}

// MentionCount is the number of tagged posts for a brand in one calendar
// month.
type MentionCount struct {
	Month    string
	Brand    string
	Mentions int
}

// CountMentions tallies tagged posts per month and brand, sorted by month
// then brand.
func CountMentions(points []BrandDate) []MentionCount {
	counts := make(map[MentionCount]int)
	for _, p := range points {
		key := MentionCount{Month: p.Date.Format("2006-01"), Brand: p.Brand}
		counts[key]++
	}

	out := make([]MentionCount, 0, len(counts))
	for key, n := range counts {
		key.Mentions = n
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Brand < out[j].Brand
	})
	return out
}

// BrandDate is the minimal row CountMentions needs, avoiding a dependency
// on any one pipeline stage's output type.
type BrandDate struct {
	Brand string
	Date  time.Time
}
