// Package roster loads employee populations from CSV hand-off files
// produced by the spreadsheet import layer. Columns are matched by header
// name, not position, so exports with extra or reordered columns load fine.
package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/talentops/ninebox/schema"
)

// Required header columns. Everything else is optional.
var requiredColumns = []string{"id", "name", "performance", "potential"}

// CSVSource loads rosters from CSV files and implements
// contract.RosterSource.
type CSVSource struct{}

// NewCSVSource returns a roster loader for CSV files.
func NewCSVSource() *CSVSource {
	return &CSVSource{}
}

// Load reads the file and returns employees in file order. Ratings are
// parsed leniently (case and common shorthands) and the 1-9 grid position
// is derived here so downstream code never recomputes it.
func (s *CSVSource) Load(ctx context.Context, path string) ([]schema.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return s.parse(ctx, f)
}

func (s *CSVSource) parse(ctx context.Context, r io.Reader) ([]schema.Employee, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var employees []schema.Employee
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster line %d: %w", line, err)
		}

		emp, err := parseRow(columns, row)
		if err != nil {
			return nil, fmt.Errorf("roster line %d: %w", line, err)
		}
		if seen[emp.ID] {
			return nil, fmt.Errorf("roster line %d: duplicate employee id %q", line, emp.ID)
		}
		seen[emp.ID] = true
		employees = append(employees, emp)
	}

	if len(employees) == 0 {
		return nil, fmt.Errorf("roster has no data rows")
	}
	return employees, nil
}

// mapColumns builds a header-name -> index map, lowercasing and trimming
// so "Manager ID" and "manager_id" both resolve.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		columns[key] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("roster header missing required column %q", required)
		}
	}
	return columns, nil
}

func parseRow(columns map[string]int, row []string) (schema.Employee, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	emp := schema.Employee{
		ID:              field("id"),
		Name:            field("name"),
		Title:           field("title"),
		Level:           field("level"),
		Location:        field("location"),
		Function:        field("function"),
		ManagerID:       field("manager_id"),
		ManagerName:     field("manager_name"),
		Notes:           field("notes"),
		DevelopmentPlan: field("development_plan"),
	}
	if emp.ID == "" {
		return schema.Employee{}, fmt.Errorf("missing employee id")
	}

	performance, err := schema.ParseRating(strings.ToLower(field("performance")))
	if err != nil {
		return schema.Employee{}, fmt.Errorf("employee %q: performance: %w", emp.ID, err)
	}
	potential, err := schema.ParseRating(strings.ToLower(field("potential")))
	if err != nil {
		return schema.Employee{}, fmt.Errorf("employee %q: potential: %w", emp.ID, err)
	}
	emp.Performance = performance
	emp.Potential = potential
	emp.GridPos = schema.GridPosition(performance, potential)

	if raw := field("hire_date"); raw != "" {
		hired, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return schema.Employee{}, fmt.Errorf("employee %q: hire_date %q: want YYYY-MM-DD", emp.ID, raw)
		}
		emp.HireDate = hired
	}

	if raw := field("flags"); raw != "" {
		for part := range strings.SplitSeq(raw, ";") {
			flag := strings.TrimSpace(part)
			if flag == "" {
				continue
			}
			if !schema.IsAllowedFlag(flag) {
				return schema.Employee{}, fmt.Errorf("employee %q: unknown flag %q", emp.ID, flag)
			}
			emp.Flags = append(emp.Flags, flag)
		}
	}

	return emp, nil
}
