package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/nelson960/Trend-Analysis/internal/post"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("missing required column")
)

// Record is one post row in the external wire format. Field names follow
// the processed tweet dataset this pipeline was built around.
type Record struct {
	ID        string `json:"id"`
	Tweets    string `json:"tweets"`
	Date      string `json:"date"`
	Likes     int    `json:"likeCount"`
	Replies   int    `json:"replyCount"`
	Retweets  int    `json:"retweetCount"`
	Views     int    `json:"viewCount"`
	Followers int    `json:"followersCount"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (r Record) toPost() (post.Post, error) {
	var created time.Time
	var err error
	for _, layout := range dateLayouts {
		if created, err = time.Parse(layout, r.Date); err == nil {
			break
		}
	}
	if err != nil {
		return post.Post{}, fmt.Errorf("unparseable date %q: %w", r.Date, err)
	}

	p := post.Post{
		PostID:    r.ID,
		Text:      r.Tweets,
		CreatedAt: created,
		Followers: r.Followers,
		Likes:     r.Likes,
		Replies:   r.Replies,
		Retweets:  r.Retweets,
		Views:     r.Views,
	}
	return p, p.Validate()
}

// LoadFile reads a batch of posts from a CSV or JSON file. Structurally
// invalid files (missing required columns) abort the load; individual rows
// that fail validation are returned alongside good rows via the skipped
// count so callers can report without aborting the batch.
func LoadFile(path string) ([]post.Post, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(f)
	case ".json":
		return loadJSON(f)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

var requiredColumns = []string{"id", "tweets", "date", "likeCount", "replyCount", "retweetCount", "viewCount", "followersCount"}

func loadCSV(r io.Reader) ([]post.Post, int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var posts []post.Post
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec := Record{
			ID:     row[cols["id"]],
			Tweets: row[cols["tweets"]],
			Date:   row[cols["date"]],
		}
		counts := []struct {
			col string
			dst *int
		}{
			{"likeCount", &rec.Likes},
			{"replyCount", &rec.Replies},
			{"retweetCount", &rec.Retweets},
			{"viewCount", &rec.Views},
			{"followersCount", &rec.Followers},
		}
		ok := true
		for _, c := range counts {
			v, err := strconv.Atoi(strings.TrimSpace(row[cols[c.col]]))
			if err != nil {
				ok = false
				break
			}
			*c.dst = v
		}
		if !ok {
			skipped++
			continue
		}

		p, err := rec.toPost()
		if err != nil {
			skipped++
			continue
		}
		posts = append(posts, p)
	}
	return posts, skipped, nil
}

func loadJSON(r io.Reader) ([]post.Post, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
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
