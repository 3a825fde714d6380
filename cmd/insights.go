package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentops/ninebox/core"
	"github.com/talentops/ninebox/internal/contract"
)

// insightsCmd generates prioritized insights.
var insightsCmd = &cobra.Command{
	Use:   "insights [roster-path]",
	Short: "Generate prioritized, clustered insights from the roster.",
	Long: `Run the full intelligence pipeline: dimension analyses, insight
generation, time-allocation recommendations and root-cause clustering.

Insights are deduplicated by content hash, so re-running the pipeline on
the same roster yields the same ids, and insights that share a root cause
(same dimension and category value) are grouped under a cluster id.

Priorities are assigned from deviation direction and affected headcount:
- high: strong negative deviation touching many employees
- medium: significant deviation with a smaller footprint
- low: recommendations and time-allocation findings

Examples:
  # Top insights for a roster
  ninebox insights roster.csv

  # Widen the net: lower the z threshold and raise the limit
  ninebox insights roster.csv --z-threshold 1.5 --limit 50

  # Feed a downstream tool
  ninebox insights roster.csv --output json --output-file insights.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInsights(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate insights", err)
		}
	},
}
