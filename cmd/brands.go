package cmd

import (
	"fmt"

	"github.com/nelson960/Trend-Analysis/internal/brand"
	"github.com/nelson960/Trend-Analysis/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var brandsCmd = &cobra.Command{
	Use:   "brands [query]",
	Short: "List tracked brands or resolve a query against them",
	Long: `Without arguments, lists the brand vocabulary from config.yaml.
With a query, resolves it against the vocabulary using fuzzy matching.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrands,
}

func init() {
	rootCmd.AddCommand(brandsCmd)
}

func runBrands(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	resolver, err := brand.NewResolver(cfg.Brands, cfg.Search.FuzzyCutoff)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
		fmt.Printf("\n%s\n\n", titleStyle.Render("TRACKED BRANDS"))
		for _, b := range cfg.Brands {
			fmt.Printf("  %s\n", b)
		}
		fmt.Println()
		return nil
	}

	query := args[0]
	resolved, ok := resolver.Resolve(query)
	if !ok {
		fmt.Printf("No brand matching %q (cutoff %.2f)\n", query, cfg.Search.FuzzyCutoff)
		return nil
	}
	fmt.Printf("%q resolved to %s\n", query, resolved)
	return nil
}
