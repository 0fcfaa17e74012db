package scorer

import (
	"math"
	"testing"
	"time"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/nelson960/Trend-Analysis/internal/tagger"
)

func mkTagged(id string, likes, followers int, polarity float64) tagger.Tagged {
	return tagger.Tagged{
		Post: post.Post{
			PostID:    id,
			Text:      "post " + id,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Followers: followers,
			Likes:     likes,
			Replies:   1,
			Retweets:  2,
			Views:     100,
		},
		Brand:     "samsung",
		Sentiment: polarity,
		Label:     tagger.Label(polarity),
	}
}

func TestScoreFixedWeights(t *testing.T) {
	w := FixedWeights(config.Default().Scoring)

	scored := Score([]tagger.Tagged{mkTagged("1", 10, 500, 0.5)}, w, false)

	// Single post: follower range zero-width, norm guarded to 0/1 = 0.
	// 0.3*10 + 0.2*1 + 0.2*2 + 0.1*100 + 0.1*0.1 + 0.1*0 = 13.61
	want := 0.3*10 + 0.2*1 + 0.2*2 + 0.1*100 + 0.1*0.1
	if math.Abs(scored[0].Engagement-want) > 1e-9 {
		t.Errorf("expected score %f, got %f", want, scored[0].Engagement)
	}
	if scored[0].Engagement <= 0 || math.IsInf(scored[0].Engagement, 0) {
		t.Errorf("expected finite positive score, got %f", scored[0].Engagement)
	}
}

func TestScoreMonotonicInLikes(t *testing.T) {
	w := FixedWeights(config.Default().Scoring)

	base := []tagger.Tagged{mkTagged("1", 10, 500, 0.5), mkTagged("2", 11, 500, 0.5)}
	scored := Score(base, w, false)

	if scored[1].Engagement <= scored[0].Engagement {
		t.Errorf("expected score to strictly increase with likes: %f vs %f",
			scored[0].Engagement, scored[1].Engagement)
	}
}

func TestScoreFollowerNormalization(t *testing.T) {
	w := Weights{Followers: 1, Source: "fixed"}

	tagged := []tagger.Tagged{
		mkTagged("1", 0, 100, 0),
		mkTagged("2", 0, 600, 0),
		mkTagged("3", 0, 1100, 0),
	}
	// Zero out all engagement terms so only the follower norm remains.
	for i := range tagged {
		tagged[i].Post.Likes = 0
		tagged[i].Post.Replies = 0
		tagged[i].Post.Retweets = 0
		tagged[i].Post.Views = 0
	}

	scored := Score(tagged, w, false)

	wants := []float64{0, 0.5, 1}
	for i, want := range wants {
		if math.Abs(scored[i].Engagement-want) > 1e-9 {
			t.Errorf("post %d: expected follower norm %f, got %f", i, want, scored[i].Engagement)
		}
	}
}

func TestScoreSentimentImpact(t *testing.T) {
	if SentimentImpact(tagger.LabelPositive) != 0.1 {
		t.Error("expected +0.1 for Positive")
	}
	if SentimentImpact(tagger.LabelNegative) != -0.1 {
		t.Error("expected -0.1 for Negative")
	}
	if SentimentImpact(tagger.LabelNeutral) != 0.0 {
		t.Error("expected 0 for Neutral")
	}

	if got := ContinuousImpact(0.5); math.Abs(got-math.Tanh(1)) > 1e-9 {
		t.Errorf("expected tanh(1), got %f", got)
	}
}

func TestScoreEmptyInput(t *testing.T) {
	if scored := Score(nil, FixedWeights(config.Default().Scoring), false); len(scored) != 0 {
		t.Errorf("expected empty result for empty batch, got %d rows", len(scored))
	}
}

func TestScoreRecordsWeightSource(t *testing.T) {
	w := FixedWeights(config.Default().Scoring)
	if w.Source != "fixed" {
		t.Errorf("expected weight source 'fixed', got %q", w.Source)
	}
}
