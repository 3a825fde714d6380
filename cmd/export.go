package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talentops/ninebox/core"
	"github.com/talentops/ninebox/internal/contract"
)

// exportCmd exports pipeline data to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export [roster-path]",
	Short: "Export analysis data to Parquet for BI tools and analytics",
	Long: `Run the intelligence pipeline and export its outputs to Parquet format
for use with analytics tools.

Exports two datasets:
- Deviations - one row per category deviation per analyzed dimension
- Insights - one row per generated insight, with cluster ids

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --deviations-file and/or --insights-file

Examples:
  # Export both datasets
  ninebox export roster.csv --deviations-file deviations.parquet --insights-file insights.parquet

  # Use with DuckDB for analysis
  ninebox export roster.csv --deviations-file d.parquet
  duckdb -c "SELECT * FROM read_parquet('d.parquet') WHERE status = 'red'"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		deviationsFile := viper.GetString("deviations-file")
		insightsFile := viper.GetString("insights-file")
		if err := core.ExecuteExport(rootCtx, cfg, deviationsFile, insightsFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}
