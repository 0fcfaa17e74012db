package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
	path string
}

func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY,
		post_id TEXT NOT NULL UNIQUE,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		followers_count INTEGER NOT NULL DEFAULT 0,
		like_count INTEGER NOT NULL DEFAULT 0,
		reply_count INTEGER NOT NULL DEFAULT 0,
		retweet_count INTEGER NOT NULL DEFAULT 0,
		view_count INTEGER NOT NULL DEFAULT 0,
		ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tags (
		post_id INTEGER PRIMARY KEY REFERENCES posts(id),
		brand TEXT NOT NULL,
		sentiment REAL NOT NULL,
		label TEXT NOT NULL,
		tagged_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS scores (
		post_id INTEGER PRIMARY KEY REFERENCES posts(id),
		engagement_score REAL NOT NULL,
		weight_source TEXT NOT NULL,
		scored_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS trend_points (
		id INTEGER PRIMARY KEY,
		brand TEXT NOT NULL,
		date DATETIME NOT NULL,
		value REAL NOT NULL,
		UNIQUE(brand, date)
	);

	CREATE TABLE IF NOT EXISTS forecasts (
		id INTEGER PRIMARY KEY,
		brand TEXT NOT NULL,
		date DATETIME NOT NULL,
		predicted REAL NOT NULL,
		observed REAL,
		type TEXT NOT NULL,
		UNIQUE(brand, date)
	);

	CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at);
	CREATE INDEX IF NOT EXISTS idx_tags_brand ON tags(brand);
	CREATE INDEX IF NOT EXISTS idx_trend_brand ON trend_points(brand, date);
	CREATE INDEX IF NOT EXISTS idx_forecast_brand ON forecasts(brand, date);
	`

	_, err := db.conn.Exec(schema)
	return err
}
