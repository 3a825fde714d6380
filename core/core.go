// Package core has core logic for analysis, insight generation and clustering.
package core

import (
	"context"
	"time"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/internal/org"
	"github.com/talentops/ninebox/internal/outwriter"
	"github.com/talentops/ninebox/internal/roster"
	"github.com/talentops/ninebox/schema"
)

// GetAnalysisResults loads the roster and runs the registry over it.
// It returns the per-analysis result map alongside the population so
// callers can derive insights or summaries without reloading.
func GetAnalysisResults(ctx context.Context, cfg *contract.Config) (map[string]*schema.AnalysisResult, []schema.Employee, error) {
	source := roster.NewCSVSource()
	employees, err := source.Load(ctx, cfg.RosterPath)
	if err != nil {
		return nil, nil, err
	}

	registry := NewRegistry()
	results := registry.RunAll(ctx, cfg, employees)
	return results, employees, nil
}

// GetInsightResults runs the full pipeline: analyses, insight generation,
// time-allocation recommendations, and the clustering post-pass.
func GetInsightResults(ctx context.Context, cfg *contract.Config) ([]schema.Insight, error) {
	results, employees, err := GetAnalysisResults(ctx, cfg)
	if err != nil {
		return nil, err
	}

	insights := GenerateInsights(cfg, results)
	insights = append(insights, TimeAllocationInsights(employees)...)
	insights = ClusterInsights(insights)
	if len(insights) > cfg.ResultLimit {
		insights = insights[:cfg.ResultLimit]
	}
	return insights, nil
}

// ExecuteAnalyze runs all dimension analyses and writes the results.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	results, _, err := GetAnalysisResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteAnalysisResults(results, cfg, time.Since(start))
}

// ExecuteInsights runs the pipeline and writes the prioritized insights.
// It serves as the main entry point for the 'insights' command.
func ExecuteInsights(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	insights, err := GetInsightResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteInsights(insights, cfg, time.Since(start))
}

// ExecuteGrid writes the 3x3 population distribution, optionally restricted
// to employees matching a roster field filter.
// It serves as the main entry point for the 'grid' command.
func ExecuteGrid(ctx context.Context, cfg *contract.Config, filterField, filterValue string) error {
	source := roster.NewCSVSource()
	employees, err := source.Load(ctx, cfg.RosterPath)
	if err != nil {
		return err
	}
	if filterField != "" {
		employees, err = FilterEmployees(employees, filterField, filterValue)
		if err != nil {
			return err
		}
	}
	summary := BuildGridSummary(employees)
	return outwriter.WriteGridSummary(summary, cfg)
}

// ExecuteValidate checks the org structure derived from the roster and
// reports cycles and orphans. Data issues are reported, never fatal; the
// command only errors when the roster itself cannot be read.
func ExecuteValidate(ctx context.Context, cfg *contract.Config) error {
	source := roster.NewCSVSource()
	employees, err := source.Load(ctx, cfg.RosterPath)
	if err != nil {
		return err
	}
	service := org.NewService(employees)
	return outwriter.WriteValidation(service.Validate(), cfg)
}
