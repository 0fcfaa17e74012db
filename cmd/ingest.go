package cmd

import (
	"fmt"
	"strings"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/nelson960/Trend-Analysis/internal/ingest"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file-or-url>",
	Short: "Load posts from a CSV or JSON file",
	Long: `Loads posts from a local CSV or JSON file, or fetches a JSON payload
from an HTTP URL, and stores them in the database. Posts already present
(by post ID) are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		posts   []post.Post
		skipped int
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		fetcher := ingest.NewFetcher(cfg.Fetch)
		posts, skipped, err = fetcher.Fetch(cmd.Context(), source)
	} else {
		posts, skipped, err = ingest.LoadFile(source)
	}
	if err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := post.NewRepository(db)

	added := 0
	duplicates := 0
	for _, p := range posts {
		exists, err := repo.Exists(p.PostID)
		if err != nil {
			return err
		}
		if exists {
			duplicates++
			continue
		}
		if _, err := repo.Add(p); err != nil {
			return fmt.Errorf("failed to add post %s: %w", p.PostID, err)
		}
		added++
	}

	fmt.Printf("Ingested %d posts (%d duplicates, %d malformed rows skipped)\n",
		added, duplicates, skipped)
	return nil
}
