package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/nelson960/Trend-Analysis/internal/brand"
	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/forecast"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/nelson960/Trend-Analysis/internal/scorer"
	"github.com/nelson960/Trend-Analysis/internal/tagger"
	"github.com/nelson960/Trend-Analysis/internal/textnorm"
	"github.com/nelson960/Trend-Analysis/internal/trend"
)

// learnSeed fixes the learned-weight fit so repeated runs over the same
// batch produce the same weights.
const learnSeed = 1

// Context owns the shared resources for one pipeline run: the text
// normalizer, the brand resolver and vocabulary, the tagger, and the
// logger. It replaces process-wide singletons; lifetime is one run.
type Context struct {
	cfg        *config.Config
	logger     *logrus.Logger
	normalizer *textnorm.Normalizer
	resolver   *brand.Resolver
	tagger     *tagger.Tagger
}

// Result is the output of a full pipeline run. Empty slices signal no data,
// not failure.
type Result struct {
	Tagged   []tagger.Tagged
	Scored   []scorer.Scored
	Weights  scorer.Weights
	Series   []trend.Point
	Forecast []forecast.Point
}

func New(cfg *config.Config, logger *logrus.Logger) (*Context, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	resolver, err := brand.NewResolver(cfg.Brands, cfg.Search.FuzzyCutoff)
	if err != nil {
		return nil, err
	}
	tg, err := tagger.New(resolver.Vocabulary(), cfg.Scoring.MatchAll, logger)
	if err != nil {
		return nil, err
	}

	return &Context{
		cfg:        cfg,
		logger:     logger,
		normalizer: textnorm.New(),
		resolver:   resolver,
		tagger:     tg,
	}, nil
}

func (c *Context) Normalize(text string) string {
	return c.normalizer.Normalize(text)
}

func (c *Context) NormalizeAll(texts []string) []string {
	return c.normalizer.NormalizeAll(texts)
}

func (c *Context) ResolveBrand(query string) (string, bool) {
	return c.resolver.Resolve(query)
}

// Index builds the mention index for a batch against the run's vocabulary.
func (c *Context) Index(posts []post.Post) (*brand.Index, error) {
	return brand.BuildIndex(posts, c.resolver.Vocabulary(), c.logger)
}

// SearchBrands resolves each query and reports which brands are mentioned
// somewhere in the batch and which are not.
func (c *Context) SearchBrands(posts []post.Post, queries []string) (found, notFound []string, err error) {
	ix, err := c.Index(posts)
	if err != nil {
		return nil, nil, err
	}
	found, notFound = ix.SearchMultiple(c.resolver, queries)
	return found, notFound, nil
}

func (c *Context) TagPosts(posts []post.Post) []tagger.Tagged {
	return c.tagger.Tag(posts)
}

// ScorePosts computes engagement scores using the configured weight mode
// and returns the weight set actually used. An empty batch yields an empty
// result and the fixed weights, regardless of mode.
func (c *Context) ScorePosts(tagged []tagger.Tagged) ([]scorer.Scored, scorer.Weights, error) {
	weights := scorer.FixedWeights(c.cfg.Scoring)
	if len(tagged) == 0 {
		return nil, weights, nil
	}
	if c.cfg.Scoring.Mode == "learned" {
		learned, err := scorer.LearnedWeights(tagged, learnSeed)
		if err != nil {
			return nil, scorer.Weights{}, err
		}
		weights = learned
	}

	return scorer.Score(tagged, weights, c.cfg.Scoring.ContinuousSentiment), weights, nil
}

func (c *Context) AggregateTrend(scored []scorer.Scored) []trend.Point {
	return trend.Aggregate(scored, c.resolver.Vocabulary(), c.logger)
}

func (c *Context) Forecast(series []trend.Point, horizonDays int) []forecast.Point {
	opts := forecast.Options{
		Changepoints:     c.cfg.Forecast.Changepoints,
		ChangepointPrior: c.cfg.Forecast.ChangepointPrior,
	}
	return forecast.Forecast(series, horizonDays, opts, c.logger)
}

// Run executes tag, score, aggregate and forecast over one batch. A batch
// with no brand mentions yields an empty Result and no error.
func (c *Context) Run(posts []post.Post, horizonDays int) (*Result, error) {
	tagged := c.TagPosts(posts)
	if len(tagged) == 0 {
		c.logger.Info("no posts matched any tracked brand")
		return &Result{}, nil
	}

	scored, weights, err := c.ScorePosts(tagged)
	if err != nil {
		return nil, err
	}

	series := c.AggregateTrend(scored)

	return &Result{
		Tagged:   tagged,
		Scored:   scored,
		Weights:  weights,
		Series:   series,
		Forecast: c.Forecast(series, horizonDays),
	}, nil
}
