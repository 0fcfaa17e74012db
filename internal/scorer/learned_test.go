package scorer

import (
	"errors"
	"math"
	"testing"

	"github.com/nelson960/Trend-Analysis/internal/tagger"
)

// learnBatch builds n rows where sentiment loosely tracks like count, so the
// forest has signal to split on.
func learnBatch(n int) []tagger.Tagged {
	rows := make([]tagger.Tagged, n)
	for i := 0; i < n; i++ {
		likes := (i * 7) % 50
		polarity := math.Tanh(float64(likes-25) / 10)
		rows[i] = mkTagged(string(rune('a'+i%26)), likes, 100+i*30, polarity)
		rows[i].Post.Replies = i % 5
		rows[i].Post.Retweets = (i * 3) % 11
		rows[i].Post.Views = 50 + i*13
	}
	return rows
}

func TestLearnedWeightsNormalized(t *testing.T) {
	rows := learnBatch(40)
	w, err := LearnedWeights(rows, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Source != "learned" {
		t.Errorf("expected weight source 'learned', got %q", w.Source)
	}

	total := w.Like + w.Reply + w.Retweet + w.View + w.Followers
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("expected importances to sum to 1, got %f", total)
	}
	for name, v := range map[string]float64{
		"like": w.Like, "reply": w.Reply, "retweet": w.Retweet,
		"view": w.View, "followers": w.Followers,
	} {
		if v < 0 {
			t.Errorf("negative importance for %s: %f", name, v)
		}
	}
}

func TestLearnedWeightsDeterministic(t *testing.T) {
	rows := learnBatch(40)

	w1, err := LearnedWeights(rows, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w2, err := LearnedWeights(rows, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w1 != w2 {
		t.Errorf("expected identical weights for same seed, got %+v vs %+v", w1, w2)
	}
}

func TestLearnedWeightsTooFewSamples(t *testing.T) {
	rows := learnBatch(3)
	if _, err := LearnedWeights(rows, 1); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
}

func TestLearnedWeightsExcludesMissingTarget(t *testing.T) {
	rows := learnBatch(minLearnSamples)
	rows[0].Sentiment = math.NaN()

	if _, err := LearnedWeights(rows, 1); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected NaN target row to be excluded from fitting, got %v", err)
	}
}

func TestRobustScaleGuardsZeroIQR(t *testing.T) {
	xs := []float64{5, 5, 5, 5}
	out := robustScale(xs)
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("expected finite output for constant column, got %v", out)
		}
	}
}

func TestStandardizeGuardsZeroVariance(t *testing.T) {
	out := standardize([]float64{3, 3, 3})
	for _, v := range out {
		if v != 0 {
			t.Errorf("expected zeros for constant column, got %v", out)
		}
	}
}
