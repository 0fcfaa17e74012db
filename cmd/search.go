package cmd

import (
	"fmt"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/nelson960/Trend-Analysis/internal/logging"
	"github.com/nelson960/Trend-Analysis/internal/pipeline"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <brand>...",
	Short: "Search ingested posts for brand mentions",
	Long: `Resolves each query against the brand vocabulary, then scans all
ingested posts for mentions using word-boundary and entity matching.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	posts, err := post.NewRepository(db).List()
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

	found, notFound, err := pipe.SearchBrands(posts, args)
	if err != nil {
		return err
	}

	foundStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	for _, b := range found {
		fmt.Printf("%s %s\n", foundStyle.Render("✓"), b)
	}
	for _, b := range notFound {
		fmt.Printf("%s %s (no mentions)\n", missStyle.Render("✗"), b)
	}
	return nil
}
