package scorer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nelson960/Trend-Analysis/internal/tagger"
)

// ErrTooFewSamples signals that the batch is too small to fit the learned
// weight model.
var ErrTooFewSamples = errors.New("too few samples for learned weights")

const minLearnSamples = 8

// LearnedWeights standardizes the engagement features, robust-scales the
// follower count, fits a regression forest predicting sentiment polarity,
// and converts the normalized feature importances into a weight set. Rows
// without a finite sentiment are excluded from fitting only. The seed makes
// the fit reproducible for a fixed batch.
func LearnedWeights(tagged []tagger.Tagged, seed int64) (Weights, error) {
	var rows []tagger.Tagged
	for _, tp := range tagged {
		if !math.IsNaN(tp.Sentiment) {
			rows = append(rows, tp)
		}
	}
	if len(rows) < minLearnSamples {
		return Weights{}, fmt.Errorf("%w: have %d, need %d", ErrTooFewSamples, len(rows), minLearnSamples)
	}

	likes := standardize(column(rows, func(t tagger.Tagged) float64 { return float64(t.Post.Likes) }))
	replies := standardize(column(rows, func(t tagger.Tagged) float64 { return float64(t.Post.Replies) }))
	retweets := standardize(column(rows, func(t tagger.Tagged) float64 { return float64(t.Post.Retweets) }))
	views := standardize(column(rows, func(t tagger.Tagged) float64 { return float64(t.Post.Views) }))
	followers := robustScale(column(rows, func(t tagger.Tagged) float64 { return float64(t.Post.Followers) }))

	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, tp := range rows {
		X[i] = []float64{likes[i], replies[i], retweets[i], views[i], followers[i]}
		y[i] = tp.Sentiment
	}

	rf := newForest(100, seed)
	rf.fit(X, y)
	imp := rf.normalizedImportances()

	return Weights{
		Like:      imp[0],
		Reply:     imp[1],
		Retweet:   imp[2],
		View:      imp[3],
		Followers: imp[4],
		Source:    "learned",
	}, nil
}

func column(rows []tagger.Tagged, get func(tagger.Tagged) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

// standardize centers to zero mean and unit variance, guarding a
// zero-variance column.
func standardize(xs []float64) []float64 {
	mean, std := stat.MeanStdDev(xs, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - mean) / std
	}
	return out
}

// robustScale centers on the median and scales by the interquartile range,
// which keeps outlier follower counts from dominating.
func robustScale(xs []float64) []float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) - stat.Quantile(0.25, stat.Empirical, sorted, nil)
	if iqr == 0 {
		iqr = 1
	}

	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - median) / iqr
	}
	return out
}
