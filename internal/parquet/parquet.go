// Package parquet provides data structures and functions for exporting
// analysis and insight data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/talentops/ninebox/schema"
)

// DeviationRow is one category deviation from a dimension analysis,
// flattened for columnar export.
type DeviationRow struct {
	// Dimension is the registry name of the analysis
	Dimension string `parquet:"dimension,snappy"`

	// Status is the significance tier of the parent analysis
	Status string `parquet:"status,snappy"`

	// ChiSquare is the goodness-of-fit statistic of the parent analysis
	ChiSquare float64 `parquet:"chi_square,snappy"`

	// PValue is the survival probability under the null
	PValue float64 `parquet:"p_value,snappy"`

	// EffectSize is Cramer's V for the parent analysis
	EffectSize float64 `parquet:"effect_size,snappy"`

	// SampleSize is the employees included in the analysis
	SampleSize int32 `parquet:"sample_size,snappy"`

	// Category is the category value, e.g. "London"
	Category string `parquet:"category,snappy"`

	// Total is the employees in the category
	Total int32 `parquet:"total,snappy"`

	// Observed is the high performers observed in the category
	Observed int32 `parquet:"observed,snappy"`

	// Expected is the high performers expected under the null hypothesis
	Expected float64 `parquet:"expected,snappy"`

	// ZScore is the standardized deviation of the observed rate
	ZScore float64 `parquet:"z_score,snappy"`

	// LowExpected marks categories below the chi-square validity floor
	LowExpected bool `parquet:"low_expected,snappy"`
}

// InsightRow is one generated insight, flattened for columnar export.
type InsightRow struct {
	// ID is the content hash of the insight
	ID string `parquet:"id,snappy"`

	// Type classifies the finding (anomaly, recommendation, time_allocation)
	Type string `parquet:"type,snappy"`

	// Category is the dimension the insight came from
	Category string `parquet:"category,snappy"`

	// SourceValue is the offending category value
	SourceValue string `parquet:"source_value,snappy"`

	// Priority orders insights for presentation
	Priority string `parquet:"priority,snappy"`

	// Title is the short human-readable headline
	Title string `parquet:"title,snappy"`

	// AffectedCount is the number of employees behind the finding
	AffectedCount int32 `parquet:"affected_count,snappy"`

	// AffectedIDs is the pipe-joined employee id list (nullable)
	AffectedIDs *string `parquet:"affected_ids,optional,snappy"`

	// ClusterID groups insights sharing a root cause (nullable)
	ClusterID *string `parquet:"cluster_id,optional,snappy"`
}

// FlattenAnalysisResults converts the result map to deviation rows in
// registry presentation order. Error results contribute no rows.
func FlattenAnalysisResults(results map[string]*schema.AnalysisResult) []DeviationRow {
	var rows []DeviationRow
	for _, name := range schema.AnalysisNames {
		result, ok := results[name]
		if !ok || result == nil || result.Status == schema.StatusError {
			continue
		}
		for _, dev := range result.Deviations {
			rows = append(rows, DeviationRow{
				Dimension:   result.Name,
				Status:      string(result.Status),
				ChiSquare:   result.ChiSquare,
				PValue:      result.PValue,
				EffectSize:  result.EffectSize,
				SampleSize:  int32(result.SampleSize),
				Category:    dev.Category,
				Total:       int32(dev.Total),
				Observed:    int32(dev.Observed),
				Expected:    dev.Expected,
				ZScore:      dev.ZScore,
				LowExpected: dev.LowExpected,
			})
		}
	}
	return rows
}

// FlattenInsights converts insights to export rows.
func FlattenInsights(insights []schema.Insight) []InsightRow {
	rows := make([]InsightRow, 0, len(insights))
	for _, insight := range insights {
		row := InsightRow{
			ID:            insight.ID,
			Type:          string(insight.Type),
			Category:      insight.Category,
			SourceValue:   insight.SourceValue,
			Priority:      string(insight.Priority),
			Title:         insight.Title,
			AffectedCount: int32(insight.AffectedCount),
		}
		if len(insight.AffectedIDs) > 0 {
			joined := strings.Join(insight.AffectedIDs, "|")
			row.AffectedIDs = &joined
		}
		if insight.ClusterID != "" {
			clusterID := insight.ClusterID
			row.ClusterID = &clusterID
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteDeviationsParquet writes a slice of DeviationRow structs to a Parquet file.
func WriteDeviationsParquet(data []DeviationRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteInsightsParquet writes a slice of InsightRow structs to a Parquet file.
func WriteInsightsParquet(data []InsightRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet creates the file and writes all records using struct schema
// inference from the parquet tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
