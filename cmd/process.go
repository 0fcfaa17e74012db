package cmd

import (
	"fmt"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/nelson960/Trend-Analysis/internal/logging"
	"github.com/nelson960/Trend-Analysis/internal/pipeline"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Tag posts with brands and sentiment, then score engagement",
	Long: `Runs the tagging and scoring stages over all ingested posts. Posts
mentioning a tracked brand get a sentiment label and an engagement score,
both stored in the database.`,
	RunE: runProcess,
}

var processMode string

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVar(&processMode, "mode", "", "Scoring mode: fixed or learned (default from config)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if processMode != "" {
		cfg.Scoring.Mode = processMode
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := post.NewRepository(db)
	posts, err := repo.List()
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts found. Run 'trend ingest' first.")
		return nil
	}

	pipe, err := pipeline.New(cfg, logging.New())
	if err != nil {
		return err
	}

	tagged := pipe.TagPosts(posts)
	if len(tagged) == 0 {
		fmt.Println("No posts mentioned a tracked brand.")
		return nil
	}

	scored, weights, err := pipe.ScorePosts(tagged)
	if err != nil {
		return err
	}

	for _, s := range scored {
		if err := repo.SaveTag(s.Post.ID, s.Brand, s.Sentiment, s.Label); err != nil {
			return fmt.Errorf("failed to save tag for post %s: %w", s.Post.PostID, err)
		}
		if err := repo.SaveScore(s.Post.ID, s.Engagement, weights.Source); err != nil {
			return fmt.Errorf("failed to save score for post %s: %w", s.Post.PostID, err)
		}
	}

	fmt.Printf("Processed %d posts: %d tagged and scored (%s weights)\n",
		len(posts), len(scored), weights.Source)
	return nil
}
