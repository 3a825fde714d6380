package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnalysisResults outputs the per-dimension results, dispatching based
// on the output format configured. Results are printed in registry order so
// repeated runs produce identical output.
func WriteAnalysisResults(results map[string]*schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	ordered := orderResults(results)
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ordered)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisCSV(w, ordered, fmtFloat)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(w, ordered, cfg, fmtFloat, duration)
		}, "table")
	}
}

// orderResults flattens the result map into registry presentation order.
// Analyses missing from the map (not requested this run) are skipped.
func orderResults(results map[string]*schema.AnalysisResult) []*schema.AnalysisResult {
	ordered := make([]*schema.AnalysisResult, 0, len(results))
	for _, name := range schema.AnalysisNames {
		if result, ok := results[name]; ok && result != nil {
			ordered = append(ordered, result)
		}
	}
	return ordered
}

// writeAnalysisTable generates and writes the human-readable table.
func writeAnalysisTable(w io.Writer, results []*schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dimension", "Status", "Chi2", "P-Value", "Effect", "N", "Findings"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range results {
		findings := r.Error
		if r.Status != schema.StatusError {
			findings = strconv.Itoa(significantDeviations(r, cfg.ZThreshold)) + " significant"
		}
		data = append(data, []string{
			r.Dimension,
			statusLabel(cfg, r.Status),
			fmtFloat(r.ChiSquare),
			fmt.Sprintf("%.4f", r.PValue),
			fmtFloat(r.EffectSize),
			strconv.Itoa(r.SampleSize),
			findings,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Detail block: one line per significant deviation.
	maxWidth := GetMaxTableTextWidth(cfg)
	for _, r := range results {
		for _, dev := range r.Deviations {
			if !exceedsThreshold(dev.ZScore, cfg.ZThreshold) {
				continue
			}
			line := fmt.Sprintf("  %s/%s: %d of %d high performers (expected %s), z=%s",
				r.Dimension, dev.Category, dev.Observed, dev.Total,
				fmtFloat(dev.Expected), fmtFloat(dev.ZScore))
			if dev.LowExpected {
				line += " [low expected count]"
			}
			if _, err := fmt.Fprintln(w, contract.TruncateText(line, maxWidth+45)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "Analyzed %d dimensions in %v with %d workers\n", len(results), duration, cfg.Workers)
	return err
}

// writeAnalysisCSV writes one row per deviation so spreadsheet users get
// the full detail, not just the per-dimension rollup.
func writeAnalysisCSV(w io.Writer, results []*schema.AnalysisResult, fmtFloat func(float64) string) error {
	header := []string{"dimension", "status", "chi_square", "p_value", "effect_size", "sample_size", "category", "total", "observed", "expected", "z_score", "low_expected", "error"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			base := []string{
				r.Name,
				string(r.Status),
				fmtFloat(r.ChiSquare),
				fmt.Sprintf("%.6f", r.PValue),
				fmtFloat(r.EffectSize),
				strconv.Itoa(r.SampleSize),
			}
			if len(r.Deviations) == 0 {
				record := append(append([]string{}, base...), "", "", "", "", "", "", r.Error)
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
				continue
			}
			for _, dev := range r.Deviations {
				record := append(append([]string{}, base...),
					dev.Category,
					strconv.Itoa(dev.Total),
					strconv.Itoa(dev.Observed),
					fmtFloat(dev.Expected),
					fmtFloat(dev.ZScore),
					strconv.FormatBool(dev.LowExpected),
					r.Error,
				)
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

func significantDeviations(r *schema.AnalysisResult, zThreshold float64) int {
	count := 0
	for _, dev := range r.Deviations {
		if exceedsThreshold(dev.ZScore, zThreshold) {
			count++
		}
	}
	return count
}

func exceedsThreshold(z, threshold float64) bool {
	if z < 0 {
		z = -z
	}
	return z >= threshold
}
