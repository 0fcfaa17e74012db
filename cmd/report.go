package cmd

import (
	"fmt"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/nelson960/Trend-Analysis/internal/logging"
	"github.com/nelson960/Trend-Analysis/internal/pipeline"
	"github.com/nelson960/Trend-Analysis/internal/post"
	"github.com/nelson960/Trend-Analysis/internal/report"
	"github.com/nelson960/Trend-Analysis/internal/trend"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate monthly brand recommendations",
	Long: `Rolls scored posts into brand-month summaries and applies decision
rules to produce marketing recommendations.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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

	rows := report.MonthlyRows(scored, series)
	if len(rows) == 0 {
		fmt.Println("No brand activity to report.")
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	monthStyle := lipgloss.NewStyle().Bold(true)

	fmt.Printf("\n%s\n", titleStyle.Render("MONTHLY MENTIONS"))
	currentMonth := ""
	for _, c := range trend.CountMentions(report.MentionDates(scored)) {
		if c.Month != currentMonth {
			currentMonth = c.Month
			fmt.Printf("\n%s\n", monthStyle.Render(c.Month))
		}
		fmt.Printf("  %-12s %d\n", c.Brand, c.Mentions)
	}

	fmt.Printf("\n%s\n", titleStyle.Render("MONTHLY RECOMMENDATIONS"))
	current := ""
	for _, row := range rows {
		if row.Month != current {
			current = row.Month
			fmt.Printf("\n%s\n", monthStyle.Render(row.Month))
		}
		fmt.Printf("  %s: %d mentions, avg sentiment %.2f, engagement %.2f\n",
			row.Brand, row.Mentions, row.AvgSentiment, row.Engagement)
		for _, rec := range report.Recommendations(row) {
			fmt.Printf("    - %s\n", rec)
		}
	}

	fmt.Println()
	return nil
}
