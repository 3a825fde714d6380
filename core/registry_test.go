package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

func TestRegistryNamesAndLookup(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, schema.AnalysisNames, r.Names())

	for _, name := range schema.AnalysisNames {
		fn, ok := r.Lookup(name)
		assert.True(t, ok, "analysis %q must resolve", name)
		assert.NotNil(t, fn)
	}

	_, ok := r.Lookup("phrenology")
	assert.False(t, ok)
}

func TestRegistryRegistrationIsStable(t *testing.T) {
	r := NewRegistry()
	original, _ := r.Lookup(schema.AnalysisLocation)

	// A second registration under an existing name must be ignored.
	r.register(schema.AnalysisLocation, func(_ *contract.Config, _ []schema.Employee) *schema.AnalysisResult {
		return errorResult(schema.AnalysisLocation, "impostor")
	})

	after, _ := r.Lookup(schema.AnalysisLocation)
	got := after(testConfig(), makeEmployees(nil, "Berlin", 40, 12))
	want := original(testConfig(), makeEmployees(nil, "Berlin", 40, 12))
	assert.Equal(t, want.Error, got.Error)
	assert.Equal(t, schema.AnalysisNames, r.Names())
}

func TestRegistryRunAll(t *testing.T) {
	var employees []schema.Employee
	employees = makeEmployees(employees, "Berlin", 40, 20)
	employees = makeEmployees(employees, "London", 40, 10)

	results := NewRegistry().RunAll(context.Background(), testConfig(), employees)

	require.Len(t, results, len(schema.AnalysisNames))
	for _, name := range schema.AnalysisNames {
		require.Contains(t, results, name)
		assert.Equal(t, name, results[name].Name)
	}
	// Location has two categories and must produce a real result.
	assert.NotEqual(t, schema.StatusError, results[schema.AnalysisLocation].Status)
	// Function and level are uniform, so they fail with a single category.
	assert.Equal(t, schema.StatusError, results[schema.AnalysisFunction].Status)
}

func TestRegistryIsolatesPanickingAnalyzer(t *testing.T) {
	r := NewRegistry()
	r.register("boom", func(_ *contract.Config, _ []schema.Employee) *schema.AnalysisResult {
		panic("kaboom")
	})

	cfg := testConfig()
	cfg.Dimensions = []string{"boom", schema.AnalysisLocation}

	var employees []schema.Employee
	employees = makeEmployees(employees, "Berlin", 40, 20)
	employees = makeEmployees(employees, "London", 40, 10)

	results := r.RunAll(context.Background(), cfg, employees)

	require.Len(t, results, 2)
	assert.Equal(t, schema.StatusError, results["boom"].Status)
	assert.Contains(t, results["boom"].Error, "kaboom")
	assert.NotEqual(t, schema.StatusError, results[schema.AnalysisLocation].Status,
		"a crashing analyzer must not affect its peers")
}

func TestRegistryRunAllUnknownDimension(t *testing.T) {
	cfg := testConfig()
	cfg.Dimensions = []string{"astrology"}

	results := NewRegistry().RunAll(context.Background(), cfg, makeEmployees(nil, "Berlin", 40, 12))

	require.Contains(t, results, "astrology")
	assert.Equal(t, schema.StatusError, results["astrology"].Status)
}

func TestRegistryRunAllCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewRegistry().RunAll(ctx, testConfig(), makeEmployees(nil, "Berlin", 40, 12))

	for name, result := range results {
		assert.Equal(t, schema.StatusError, result.Status, "analysis %q should be canceled", name)
	}
}
