package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/schema"
)

func TestBuildGridSummary(t *testing.T) {
	employees := []schema.Employee{
		{ID: "e1", GridPos: 9},
		{ID: "e2", GridPos: 9},
		{ID: "e3", GridPos: 1},
		{ID: "e4", GridPos: 5},
		{ID: "e5", GridPos: 0}, // unrated, excluded
	}

	summary := BuildGridSummary(employees)

	assert.Equal(t, 4, summary.Total)
	require.Len(t, summary.Cells, 9, "all nine cells present, including empty ones")

	assert.Equal(t, 2, summary.Cells[8].Count)
	assert.InDelta(t, 50.0, summary.Cells[8].Percent, 1e-9)
	assert.Equal(t, "Star", summary.Cells[8].Label)
	assert.Equal(t, 1, summary.Cells[0].Count)
	assert.Equal(t, 0, summary.Cells[2].Count)
}

func TestBuildGridSummaryEmpty(t *testing.T) {
	summary := BuildGridSummary(nil)
	assert.Equal(t, 0, summary.Total)
	require.Len(t, summary.Cells, 9)
	for _, cell := range summary.Cells {
		assert.Zero(t, cell.Count)
		assert.Zero(t, cell.Percent)
	}
}
