package post

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPost = errors.New("invalid post")

// Post is one ingested social media item. Posts are read-only once ingested;
// pipeline stages derive new rows instead of mutating them.
type Post struct {
	ID        int64
	PostID    string
	Text      string
	CreatedAt time.Time
	Followers int
	Likes     int
	Replies   int
	Retweets  int
	Views     int
}

// Validate checks the structural invariants required before a post enters
// the pipeline: a non-empty identifier, a timestamp, and non-negative counts.
func (p Post) Validate() error {
	if p.PostID == "" {
		return fmt.Errorf("%w: missing identifier", ErrInvalidPost)
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("%w: post %s has no timestamp", ErrInvalidPost, p.PostID)
	}
	if p.Followers < 0 || p.Likes < 0 || p.Replies < 0 || p.Retweets < 0 || p.Views < 0 {
		return fmt.Errorf("%w: post %s has negative counts", ErrInvalidPost, p.PostID)
	}
	return nil
}

// Day returns the post's calendar day with any zone information stripped.
// Daily buckets are naive local dates, matching the aggregation contract.
func (p Post) Day() time.Time {
	y, m, d := p.CreatedAt.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
