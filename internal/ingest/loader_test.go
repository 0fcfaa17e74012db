package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nelson960/Trend-Analysis/internal/config"
)

const sampleJSON = `[
	{"id": "t1", "tweets": "Samsung's new release is impressive.", "date": "2024-01-01",
	 "likeCount": 10, "replyCount": 1, "retweetCount": 2, "viewCount": 100, "followersCount": 500},
	{"id": "t2", "tweets": "Loving my new Nike sneakers.", "date": "2024-01-02T08:30:00Z",
	 "likeCount": 3, "replyCount": 0, "retweetCount": 1, "viewCount": 40, "followersCount": 120},
	{"id": "", "tweets": "no identifier", "date": "2024-01-03",
	 "likeCount": 0, "replyCount": 0, "retweetCount": 0, "viewCount": 0, "followersCount": 0}
]`

const sampleCSV = `id,tweets,date,likeCount,replyCount,retweetCount,viewCount,followersCount
t1,Samsung's new release is impressive.,2024-01-01,10,1,2,100,500
t2,Loving my new Nike sneakers.,2024-01-02,3,0,1,40,120
t3,bad counts,2024-01-03,x,0,0,0,0
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	posts, skipped, err := LoadFile(writeTemp(t, "posts.json", sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", skipped)
	}
	if posts[0].PostID != "t1" || posts[0].Likes != 10 || posts[0].Followers != 500 {
		t.Errorf("unexpected first post: %+v", posts[0])
	}
	if posts[1].CreatedAt.Hour() != 8 {
		t.Errorf("expected RFC3339 timestamp to parse, got %v", posts[1].CreatedAt)
	}
}

func TestLoadCSV(t *testing.T) {
	posts, skipped, err := LoadFile(writeTemp(t, "posts.csv", sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped row for bad counts, got %d", skipped)
	}
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := writeTemp(t, "bad.csv", "id,tweets,date\nt1,hello,2024-01-01\n")
	if _, _, err := LoadFile(path); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "posts.parquet", "")
	if _, _, err := LoadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFetcherRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(sampleJSON))
	}))
	defer server.Close()

	cfg := config.FetchConfig{TimeoutSeconds: 5, MaxRetries: 4, BackoffSeconds: 0}
	f := NewFetcher(cfg)

	posts, skipped, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(posts) != 2 || skipped != 1 {
		t.Errorf("expected 2 posts and 1 skipped, got %d and %d", len(posts), skipped)
	}
}

func TestFetcherGivesUpAfterRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := config.FetchConfig{TimeoutSeconds: 5, MaxRetries: 2, BackoffSeconds: 0}
	f := NewFetcher(cfg)

	if _, _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Error("expected error after exhausting retries")
	}
}
