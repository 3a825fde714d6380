package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/internal/org"
	"github.com/talentops/ninebox/schema"
)

// WriteValidation outputs the org-structure findings, dispatching based on
// the output format configured.
func WriteValidation(result *org.ValidationResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationCSV(w, result)
		}, "CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationText(w, result)
		}, "report")
	}
}

// writeValidationText prints a short human-readable report.
func writeValidationText(w io.Writer, result *org.ValidationResult) error {
	if result.Healthy() {
		_, err := fmt.Fprintf(w, "Org structure OK: %d employees, %d root(s)\n", result.Total, len(result.Roots))
		return err
	}

	if _, err := fmt.Fprintf(w, "Org structure problems found (%d employees):\n", result.Total); err != nil {
		return err
	}
	for _, id := range result.Orphans {
		if _, err := fmt.Fprintf(w, "  orphan: %s reports to an unknown manager id\n", id); err != nil {
			return err
		}
	}
	for _, id := range result.SelfLinks {
		if _, err := fmt.Fprintf(w, "  self-link: %s reports to themselves\n", id); err != nil {
			return err
		}
	}
	for _, cycle := range result.Cycles {
		if _, err := fmt.Fprintf(w, "  cycle: %s\n", strings.Join(cycle, " -> ")); err != nil {
			return err
		}
	}
	return nil
}

// writeValidationCSV writes one row per finding.
func writeValidationCSV(w io.Writer, result *org.ValidationResult) error {
	header := []string{"kind", "employee_ids"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		write := func(kind string, ids ...string) error {
			if err := cw.Write([]string{kind, strings.Join(ids, "|")}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
			return nil
		}
		if err := write("total", strconv.Itoa(result.Total)); err != nil {
			return err
		}
		for _, id := range result.Roots {
			if err := write("root", id); err != nil {
				return err
			}
		}
		for _, id := range result.Orphans {
			if err := write("orphan", id); err != nil {
				return err
			}
		}
		for _, id := range result.SelfLinks {
			if err := write("self_link", id); err != nil {
				return err
			}
		}
		for _, cycle := range result.Cycles {
			if err := write("cycle", cycle...); err != nil {
				return err
			}
		}
		return nil
	})
}
