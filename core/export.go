package core

import (
	"context"
	"fmt"
	"os"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/internal/parquet"
)

// ExecuteExport runs the full pipeline and writes both datasets as Parquet.
// It serves as the main entry point for the 'export' command.
func ExecuteExport(ctx context.Context, cfg *contract.Config, deviationsFile, insightsFile string) error {
	if deviationsFile == "" && insightsFile == "" {
		return fmt.Errorf("export requires --deviations-file or --insights-file")
	}

	results, employees, err := GetAnalysisResults(ctx, cfg)
	if err != nil {
		return err
	}

	if deviationsFile != "" {
		rows := parquet.FlattenAnalysisResults(results)
		if err := parquet.WriteDeviationsParquet(rows, deviationsFile); err != nil {
			return fmt.Errorf("failed to export deviations: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d deviation rows to %s\n", len(rows), deviationsFile)
	}

	if insightsFile != "" {
		insights := GenerateInsights(cfg, results)
		insights = append(insights, TimeAllocationInsights(employees)...)
		insights = ClusterInsights(insights)
		if len(insights) > cfg.ResultLimit {
			insights = insights[:cfg.ResultLimit]
		}
		rows := parquet.FlattenInsights(insights)
		if err := parquet.WriteInsightsParquet(rows, insightsFile); err != nil {
			return fmt.Errorf("failed to export insights: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d insight rows to %s\n", len(rows), insightsFile)
	}

	return nil
}
