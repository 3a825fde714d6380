package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteInsights outputs the prioritized insights, dispatching based on the
// output format configured.
func WriteInsights(insights []schema.Insight, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, insights)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightsCSV(w, insights)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightsTable(w, insights, cfg, duration)
		}, "table")
	}
}

// writeInsightsTable generates and writes the human-readable table.
func writeInsightsTable(w io.Writer, insights []schema.Insight, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Priority", "Type", "Title", "Affected", "Cluster"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, insight := range insights {
		data = append(data, []string{
			priorityLabel(cfg, insight.Priority),
			string(insight.Type),
			contract.TruncateText(insight.Title, maxWidth),
			strconv.Itoa(insight.AffectedCount),
			insight.ClusterID,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Clusters get a footnote block so the table stays narrow.
	printed := make(map[string]bool)
	for _, insight := range insights {
		if insight.ClusterID == "" || printed[insight.ClusterID] {
			continue
		}
		printed[insight.ClusterID] = true
		if _, err := fmt.Fprintf(w, "  %s: %s\n", insight.ClusterID, insight.ClusterTitle); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Generated %d insights in %v\n", len(insights), duration)
	return err
}

// writeInsightsCSV writes the insights in CSV format.
func writeInsightsCSV(w io.Writer, insights []schema.Insight) error {
	header := []string{"id", "priority", "type", "category", "source_value", "title", "description", "affected_count", "affected_ids", "cluster_id"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, insight := range insights {
			record := []string{
				insight.ID,
				string(insight.Priority),
				string(insight.Type),
				insight.Category,
				insight.SourceValue,
				insight.Title,
				insight.Description,
				strconv.Itoa(insight.AffectedCount),
				strings.Join(insight.AffectedIDs, "|"),
				insight.ClusterID,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
