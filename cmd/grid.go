package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talentops/ninebox/core"
	"github.com/talentops/ninebox/internal/contract"
)

// gridCmd shows the 3x3 population distribution.
var gridCmd = &cobra.Command{
	Use:   "grid [roster-path]",
	Short: "Show the 9-box population distribution.",
	Long: `Compute how the roster population distributes across the 3x3
performance/potential grid.

Each cell reports its label (Star, Core Player, Underperformer, ...),
headcount and share of the filtered population. Use the filter flags to
slice the grid by any roster field.

Examples:
  # Org-wide grid
  ninebox grid roster.csv

  # Grid for a single location
  ninebox grid roster.csv --filter-field location --filter-value Berlin

  # Grid for one manager's team, as CSV
  ninebox grid roster.csv --filter-field manager --filter-value E1042 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		filterField := viper.GetString("filter-field")
		filterValue := viper.GetString("filter-value")
		if err := core.ExecuteGrid(rootCtx, cfg, filterField, filterValue); err != nil {
			contract.LogFatal("Cannot build grid summary", err)
		}
	},
}
