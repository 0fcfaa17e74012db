package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/post"
)

// Fetcher pulls a JSON post batch over HTTP with a bounded exponential
// backoff retry policy. Acquisition is collaborator territory; this is the
// minimal client the CLI needs to ingest from a collection endpoint.
type Fetcher struct {
	client *http.Client
	retry  retrypolicy.RetryPolicy[[]byte]
}

func NewFetcher(cfg config.FetchConfig) *Fetcher {
	backoff := time.Duration(cfg.BackoffSeconds) * time.Second
	if backoff <= 0 {
		backoff = 10 * time.Millisecond
	}

	return &Fetcher{
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		retry: retrypolicy.Builder[[]byte]().
			WithBackoff(backoff, 30*time.Second).
			WithMaxRetries(cfg.MaxRetries).
			Build(),
	}
}

// Fetch downloads and decodes a post batch, retrying transient failures.
// Returns the posts and the count of rows skipped during decoding.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]post.Post, int, error) {
	data, err := failsafe.NewExecutor[[]byte](f.retry).
		WithContext(ctx).
		Get(func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			resp, err := f.client.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
			}
			return io.ReadAll(io.LimitReader(resp.Body, 50*1024*1024))
		})
	if err != nil {
		return nil, 0, fmt.Errorf("fetch failed after retries: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode posts: %w", err)
	}

	var posts []post.Post
	skipped := 0
	for _, rec := range records {
		p, err := rec.toPost()
		if err != nil {
			skipped++
			continue
		}
		posts = append(posts, p)
	}
	return posts, skipped, nil
}
