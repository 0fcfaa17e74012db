package post

import (
	"database/sql"
	"fmt"

	"github.com/nelson960/Trend-Analysis/internal/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(p Post) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	result, err := r.db.Exec(
		`INSERT INTO posts (post_id, text, created_at, followers_count, like_count, reply_count, retweet_count, view_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PostID, p.Text, p.CreatedAt, p.Followers, p.Likes, p.Replies, p.Retweets, p.Views,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	return result.LastInsertId()
}

func (r *Repository) Exists(postID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE post_id = ?`, postID).Scan(&count)
	return count > 0, err
}

func (r *Repository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

func (r *Repository) List() ([]Post, error) {
	rows, err := r.db.Query(`
		SELECT id, post_id, text, created_at, followers_count, like_count, reply_count, retweet_count, view_count
		FROM posts
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *Repository) Get(id int64) (*Post, error) {
	var p Post
	err := r.db.QueryRow(`
		SELECT id, post_id, text, created_at, followers_count, like_count, reply_count, retweet_count, view_count
		FROM posts WHERE id = ?
	`, id).Scan(&p.ID, &p.PostID, &p.Text, &p.CreatedAt, &p.Followers, &p.Likes, &p.Replies, &p.Retweets, &p.Views)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveTag records the resolved brand and sentiment for a post.
func (r *Repository) SaveTag(postRowID int64, brand string, sentiment float64, label string) error {
	_, err := r.db.Exec(`
		INSERT INTO tags (post_id, brand, sentiment, label) VALUES (?, ?, ?, ?)
		ON CONFLICT(post_id) DO UPDATE SET brand = excluded.brand, sentiment = excluded.sentiment, label = excluded.label, tagged_at = CURRENT_TIMESTAMP
	`, postRowID, brand, sentiment, label)
	return err
}

// SaveScore records the engagement score and which weight set produced it.
func (r *Repository) SaveScore(postRowID int64, score float64, weightSource string) error {
	_, err := r.db.Exec(`
		INSERT INTO scores (post_id, engagement_score, weight_source) VALUES (?, ?, ?)
		ON CONFLICT(post_id) DO UPDATE SET engagement_score = excluded.engagement_score, weight_source = excluded.weight_source, scored_at = CURRENT_TIMESTAMP
	`, postRowID, score, weightSource)
	return err
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.PostID, &p.Text, &p.CreatedAt, &p.Followers, &p.Likes, &p.Replies, &p.Retweets, &p.Views); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
