package roster

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/schema"
)

const sampleRoster = `id,name,title,level,location,function,manager_id,manager_name,hire_date,performance,potential,flags,notes
e1,Ada Lovelace,Engineer,IC4,Berlin,Engineering,m1,Grace Hopper,2021-03-15,high,high,key_talent;ready_now,strong year
e2,Alan Turing,Engineer,IC3,London,Engineering,m1,Grace Hopper,2024-01-02,medium,low,,
m1,Grace Hopper,Director,M2,Berlin,Engineering,,,2018-06-01,high,medium,,
`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoster(t *testing.T) {
	source := NewCSVSource()
	employees, err := source.Load(context.Background(), writeRoster(t, sampleRoster))
	require.NoError(t, err)
	require.Len(t, employees, 3)

	ada := employees[0]
	assert.Equal(t, "e1", ada.ID)
	assert.Equal(t, "Ada Lovelace", ada.Name)
	assert.Equal(t, "m1", ada.ManagerID)
	assert.Equal(t, schema.RatingHigh, ada.Performance)
	assert.Equal(t, schema.RatingHigh, ada.Potential)
	assert.Equal(t, 9, ada.GridPos)
	assert.Equal(t, []string{"key_talent", "ready_now"}, ada.Flags)
	assert.Equal(t, "strong year", ada.Notes)
	assert.Equal(t, 2021, ada.HireDate.Year())

	alan := employees[1]
	assert.Equal(t, 2, alan.GridPos)
	assert.Empty(t, alan.Flags)
}

func TestLoadRosterReorderedHeader(t *testing.T) {
	content := "performance,potential,Name,ID\nhigh,low,Ada,e1\n"
	employees, err := NewCSVSource().Load(context.Background(), writeRoster(t, content))
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "e1", employees[0].ID)
	assert.Equal(t, 3, employees[0].GridPos)
}

func TestLoadRosterErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing required column",
			"id,name,performance\ne1,Ada,high\n",
			`missing required column "potential"`,
		},
		{
			"bad rating",
			"id,name,performance,potential\ne1,Ada,amazing,high\n",
			"line 2",
		},
		{
			"missing id",
			"id,name,performance,potential\n,Ada,high,high\n",
			"missing employee id",
		},
		{
			"duplicate id",
			"id,name,performance,potential\ne1,Ada,high,high\ne1,Alan,low,low\n",
			"duplicate employee id",
		},
		{
			"unknown flag",
			"id,name,performance,potential,flags\ne1,Ada,high,high,superstar\n",
			`unknown flag "superstar"`,
		},
		{
			"bad hire date",
			"id,name,performance,potential,hire_date\ne1,Ada,high,high,15/03/2021\n",
			"want YYYY-MM-DD",
		},
		{
			"no data rows",
			"id,name,performance,potential\n",
			"no data rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVSource().Load(context.Background(), writeRoster(t, tt.content))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got: %v", err)
		})
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	_, err := NewCSVSource().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadRosterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVSource().Load(ctx, writeRoster(t, sampleRoster))
	assert.ErrorIs(t, err, context.Canceled)
}
