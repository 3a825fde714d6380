package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteGridSummary outputs the 3x3 population distribution, dispatching
// based on the output format configured.
func WriteGridSummary(summary *schema.GridSummary, cfg *contract.Config) error {
	_, fmtPct := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridCSV(w, summary, fmtPct)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridTable(w, summary, fmtPct)
		}, "table")
	}
}

// writeGridTable renders the grid the way it hangs on a wall: potential on
// rows top-down, performance on columns left-right.
func writeGridTable(w io.Writer, summary *schema.GridSummary, fmtPct func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Potential \\ Performance", "Low", "Medium", "High"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	cell := func(pos int) string {
		c := summary.Cells[pos-1]
		return fmt.Sprintf("%s: %d (%s)", c.Label, c.Count, fmtPct(c.Percent))
	}
	data := [][]string{
		{"High", cell(7), cell(8), cell(9)},
		{"Medium", cell(4), cell(5), cell(6)},
		{"Low", cell(1), cell(2), cell(3)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Total employees: %d\n", summary.Total)
	return err
}

// writeGridCSV writes one row per cell in position order.
func writeGridCSV(w io.Writer, summary *schema.GridSummary, fmtPct func(float64) string) error {
	header := []string{"position", "label", "count", "percent"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, cell := range summary.Cells {
			record := []string{
				strconv.Itoa(cell.Position),
				cell.Label,
				strconv.Itoa(cell.Count),
				fmtPct(cell.Percent),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
