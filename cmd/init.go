package cmd

import (
	"fmt"
	"os"

	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/nelson960/Trend-Analysis/internal/database"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize trend configuration and database",
	Long:  `Creates the ~/.trend-analysis directory with config.yaml and SQLite database.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Created config at %s/config.yaml\n", dir)

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	db.Close()
	fmt.Printf("Created database at %s/trend.db\n", dir)

	fmt.Println("\nTrend initialized! Next steps:")
	fmt.Println("  trend ingest <file>       Load posts from a CSV or JSON file")
	fmt.Println("  trend process             Tag and score ingested posts")

	return nil
}
