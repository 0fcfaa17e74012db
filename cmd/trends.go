package cmd

import (
	"fmt"
	"strings"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/nelson960/Trend-Analysis/internal/logging"
	"github.com/nelson960/Trend-Analysis/internal/pipeline"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/nelson960/Trend-Analysis/internal/trend"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show daily engagement trends per brand",
	Long: `Aggregates engagement scores into a daily series per brand and
stores the series in the database.`,
	RunE: runTrends,
}

var trendsBrand string

func init() {
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().StringVarP(&trendsBrand, "brand", "b", "", "Show a single brand only")
}

func runTrends(cmd *cobra.Command, args []string) error {
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

	tagged := pipe.TagPosts(posts)
	if len(tagged) == 0 {
		fmt.Println("No posts mentioned a tracked brand.")
		return nil
	}

	scored, _, err := pipe.ScorePosts(tagged)
	if err != nil {
		return err
	}
	series := pipe.AggregateTrend(scored)
	if len(series) == 0 {
		fmt.Println("No trend data found.")
		return nil
	}

	if err := trend.NewRepository(db).Save(series); err != nil {
		return fmt.Errorf("failed to save trends: %w", err)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	maxValue := series[0].Value
	for _, p := range series {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	fmt.Printf("\n%s\n\n", titleStyle.Render("DAILY ENGAGEMENT TRENDS"))
	current := ""
	for _, p := range series {
		if trendsBrand != "" && p.Brand != trendsBrand {
			continue
		}
		if p.Brand != current {
			current = p.Brand
			fmt.Printf("%s\n", p.Brand)
		}
		bar := strings.Repeat("█", barWidth(p.Value, maxValue))
		fmt.Printf("  %s %s %.2f\n", p.Date.Format("2006-01-02"), barStyle.Render(bar), p.Value)
	}

	fmt.Println()
	return nil
}

// barWidth scales a series value to a 20-cell bar. Values can be negative
// when a day's posts carry negative sentiment, so the width is clamped to
// zero rather than passed to strings.Repeat.
func barWidth(value, maxValue float64) int {
	if maxValue <= 0 || value <= 0 {
		return 0
	}
	w := int((value / maxValue) * 20)
	if w > 20 {
		w = 20
	}
	return w
}
