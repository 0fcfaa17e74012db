package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trend",
	Short: "Analyze brand trends in social media posts",
	Long: `Trend ingests social media posts, tags brand mentions with sentiment,
scores engagement, and builds daily trend series with forecasts.

Pipeline: ingest → process → trends → forecast → report`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
