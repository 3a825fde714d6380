// Package cmd defines the command-line interface for ninebox.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sessionCmd)

	// Add the session subcommands to the parent session command
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.AddCommand(sessionMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("user", contract.DefaultUserID, "User id owning the review session")
	rootCmd.PersistentFlags().Float64("red-p", contract.DefaultRedPValue, "P-value below which a dimension tiers red")
	rootCmd.PersistentFlags().Float64("yellow-p", contract.DefaultYellowPValue, "P-value below which a dimension tiers yellow")
	rootCmd.PersistentFlags().Float64("z-threshold", contract.DefaultZThreshold, "Absolute z-score at which a category deviation emits an insight")
	rootCmd.PersistentFlags().Int("min-sample", contract.DefaultMinSampleSize, "Population floor below which an analysis errors out")
	rootCmd.PersistentFlags().Float64("min-expected", contract.DefaultMinExpectedCount, "Expected count floor for chi-square validity per category")
	rootCmd.PersistentFlags().Int("priority-floor", contract.DefaultPriorityFloor, "Affected employee count needed for high priority")
	rootCmd.PersistentFlags().StringP("dimensions", "d", "", "Comma-separated analysis subset (location, function, level, tenure, manager)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("session-backend", string(schema.SQLiteBackend), "Session backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("session-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of gridCmd to Viper
	gridCmd.Flags().String("filter-field", "", "Roster field to filter on (location, function, level, manager, tenure, performance, potential)")
	gridCmd.Flags().String("filter-value", "", "Value the filter field must match")
	if err := viper.BindPFlags(gridCmd.Flags()); err != nil {
		contract.LogFatal("Error binding grid flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("deviations-file", "", "Path to write dimension deviation rows as Parquet")
	exportCmd.Flags().String("insights-file", "", "Path to write insight rows as Parquet")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of sessionMigrateCmd to Viper
	sessionMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(sessionMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding session migrate flags", err)
	}
}
