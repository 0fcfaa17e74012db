package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Brands   []string       `yaml:"brands"`
	Search   SearchConfig   `yaml:"search"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Forecast ForecastConfig `yaml:"forecast"`
	Fetch    FetchConfig    `yaml:"fetch"`
}

type SearchConfig struct {
	FuzzyCutoff float64 `yaml:"fuzzy_cutoff"`
}

// ScoringConfig holds the engagement weights. Mode is "fixed" or "learned";
// in learned mode the weights below are replaced by feature importances
// derived from the batch.
type ScoringConfig struct {
	Mode                string  `yaml:"mode"`
	MatchAll            bool    `yaml:"match_all"`
	ContinuousSentiment bool    `yaml:"continuous_sentiment"`
	Like                float64 `yaml:"like"`
	Reply               float64 `yaml:"reply"`
	Retweet             float64 `yaml:"retweet"`
	View                float64 `yaml:"view"`
	Sentiment           float64 `yaml:"sentiment"`
	Followers           float64 `yaml:"followers"`
}

type ForecastConfig struct {
	HorizonDays      int     `yaml:"horizon_days"`
	Changepoints     int     `yaml:"changepoints"`
	ChangepointPrior float64 `yaml:"changepoint_prior"`
}

type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

func Default() *Config {
	return &Config{
		Brands: []string{"apple", "coca-cola", "nike", "samsung", "google", "microsoft", "amazon"},
		Search: SearchConfig{
			FuzzyCutoff: 0.6,
		},
		Scoring: ScoringConfig{
			Mode:      "fixed",
			Like:      0.3,
			Reply:     0.2,
			Retweet:   0.2,
			View:      0.1,
			Sentiment: 0.1,
			Followers: 0.1,
		},
		Forecast: ForecastConfig{
			HorizonDays:      30,
			Changepoints:     25,
			ChangepointPrior: 0.05,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			MaxRetries:     4,
			BackoffSeconds: 1,
		},
	}
}

func Dir() string {
	if dir := os.Getenv("TREND_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".trend-analysis")
}

func DBPath() string {
	return filepath.Join(Dir(), "trend.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Load() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}
