package cmd

import (
	"fmt"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/nelson960/Trend-Analysis/internal/forecast"
	"github.com/nelson960/Trend-Analysis/internal/logging"
	"github.com/nelson960/Trend-Analysis/internal/pipeline"
	"github.com/nelson960/Trend-Analysis/internal/trend"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast daily engagement per brand",
	Long: `Fits an additive trend model to the stored daily series for each
brand and projects engagement over the configured horizon.`,
	RunE: runForecast,
}

var (
	forecastHorizon int
	forecastBrand   string
)

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.Flags().IntVar(&forecastHorizon, "horizon", 0, "Days to project (default from config)")
	forecastCmd.Flags().StringVarP(&forecastBrand, "brand", "b", "", "Forecast a single brand only")
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	horizon := cfg.Forecast.HorizonDays
	if forecastHorizon > 0 {
		horizon = forecastHorizon
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	trendRepo := trend.NewRepository(db)
	var series []trend.Point
	if forecastBrand != "" {
		series, err = trendRepo.ListBrand(forecastBrand)
	} else {
		series, err = trendRepo.List()
	}
	if err != nil {
		return err
	}
	if len(series) == 0 {
		fmt.Println("No trend data found. Run 'trend trends' first.")
		return nil
	}

	pipe, err := pipeline.New(cfg, logging.New())
	if err != nil {
		return err
	}

	points := pipe.Forecast(series, horizon)
	if len(points) == 0 {
		fmt.Println("Not enough data to forecast.")
		return nil
	}

	if err := forecast.NewRepository(db).Save(points); err != nil {
		return fmt.Errorf("failed to save forecast: %w", err)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	futureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	fmt.Printf("\n%s (%d day horizon)\n\n", titleStyle.Render("ENGAGEMENT FORECAST"), horizon)
	current := ""
	for _, p := range points {
		if p.Brand != current {
			current = p.Brand
			fmt.Printf("%s\n", p.Brand)
		}
		line := fmt.Sprintf("  %s %8.2f", p.Date.Format("2006-01-02"), p.Predicted)
		if p.Type == forecast.TypeForecasted {
			fmt.Println(futureStyle.Render(line + "  (projected)"))
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	return nil
}
