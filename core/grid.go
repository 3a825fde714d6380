package core

import "github.com/talentops/ninebox/schema"

// BuildGridSummary computes the 3x3 distribution of a population.
// Every cell 1 through 9 is present in the output, including empty ones,
// so the UI collaborator can render the full grid without gap handling.
func BuildGridSummary(employees []schema.Employee) *schema.GridSummary {
	counts := make(map[int]int)
	total := 0
	for i := range employees {
		pos := employees[i].GridPos
		if pos < 1 || pos > 9 {
			continue
		}
		counts[pos]++
		total++
	}

	cells := make([]schema.GridCellCount, 9)
	for pos := 1; pos <= 9; pos++ {
		var pct float64
		if total > 0 {
			pct = float64(counts[pos]) / float64(total) * 100
		}
		cells[pos-1] = schema.GridCellCount{
			Position: pos,
			Label:    schema.GridCellLabel(pos),
			Count:    counts[pos],
			Percent:  pct,
		}
	}
	return &schema.GridSummary{Total: total, Cells: cells}
}
