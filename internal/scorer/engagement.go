package scorer

import (
	"math"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/tagger"
)

// Scored is a tagged post with its scalar engagement score.
type Scored struct {
	tagger.Tagged
	Engagement float64
}

// Weights is one weight set over the engagement features. Source records
// which mode produced it, for auditability.
type Weights struct {
	Like      float64
	Reply     float64
	Retweet   float64
	View      float64
	Sentiment float64
	Followers float64
	Source    string
}

func FixedWeights(cfg config.ScoringConfig) Weights {
	return Weights{
		Like:      cfg.Like,
		Reply:     cfg.Reply,
		Retweet:   cfg.Retweet,
		View:      cfg.View,
		Sentiment: cfg.Sentiment,
		Followers: cfg.Followers,
		Source:    "fixed",
	}
}

// SentimentImpact maps a categorical sentiment label to its score
// contribution.
func SentimentImpact(label string) float64 {
	switch label {
	case tagger.LabelPositive:
		return 0.1
	case tagger.LabelNegative:
		return -0.1
	default:
		return 0.0
	}
}

// ContinuousImpact maps a continuous polarity to a smooth impact in (-1, 1).
func ContinuousImpact(polarity float64) float64 {
	return math.Tanh(2 * polarity)
}

// Score computes one engagement score per tagged post:
//
//	score = w.like*likes + w.reply*replies + w.retweet*retweets + w.view*views
//	      + w.sentiment*impact + w.followers*follower_norm
//
// where follower_norm is the min-max normalized follower count within the
// batch. Deterministic for fixed inputs and weights. An empty batch yields
// an empty result, not an error.
func Score(tagged []tagger.Tagged, w Weights, continuous bool) []Scored {
	if len(tagged) == 0 {
		return nil
	}

	minF, maxF := followerRange(tagged)
	span := maxF - minF
	if span == 0 {
		span = 1
	}

	scored := make([]Scored, len(tagged))
	for i, tp := range tagged {
		impact := SentimentImpact(tp.Label)
		if continuous {
			impact = ContinuousImpact(tp.Sentiment)
		}
		followerNorm := (float64(tp.Post.Followers) - minF) / span

		scored[i] = Scored{
			Tagged: tp,
			Engagement: w.Like*float64(tp.Post.Likes) +
				w.Reply*float64(tp.Post.Replies) +
				w.Retweet*float64(tp.Post.Retweets) +
				w.View*float64(tp.Post.Views) +
				w.Sentiment*impact +
				w.Followers*followerNorm,
		}
	}
	return scored
}

func followerRange(tagged []tagger.Tagged) (minF, maxF float64) {
	minF = float64(tagged[0].Post.Followers)
	maxF = minF
	for _, tp := range tagged[1:] {
		f := float64(tp.Post.Followers)
		if f < minF {
			minF = f
		}
		if f > maxF {
			maxF = f
		}
	}
	return minF, maxF
}
