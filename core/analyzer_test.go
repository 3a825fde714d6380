package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// testConfig returns a config with the standard statistical defaults.
func testConfig() *contract.Config {
	return &contract.Config{
		RedPValue:        contract.DefaultRedPValue,
		YellowPValue:     contract.DefaultYellowPValue,
		ZThreshold:       contract.DefaultZThreshold,
		MinSampleSize:    contract.DefaultMinSampleSize,
		MinExpectedCount: contract.DefaultMinExpectedCount,
		PriorityFloor:    contract.DefaultPriorityFloor,
		Workers:          4,
		ResultLimit:      contract.DefaultResultLimit,
	}
}

// makeEmployees builds count employees in one location with the given number
// of high performers, appending to the given slice with sequential ids.
func makeEmployees(base []schema.Employee, location string, count, high int) []schema.Employee {
	for i := range count {
		perf := schema.RatingMedium
		if i < high {
			perf = schema.RatingHigh
		}
		base = append(base, schema.Employee{
			ID:          fmt.Sprintf("%s-%03d", location, i),
			Location:    location,
			Function:    "Engineering",
			Level:       "IC3",
			Performance: perf,
			Potential:   schema.RatingMedium,
			GridPos:     schema.GridPosition(perf, schema.RatingMedium),
		})
	}
	return base
}

func TestAnalyzeDimensionRedAnomaly(t *testing.T) {
	// One location with 100% high performers against a ~30% baseline must
	// come out red with p < 0.01 for n >= 30 per category.
	var employees []schema.Employee
	employees = makeEmployees(employees, "Berlin", 30, 30)
	employees = makeEmployees(employees, "London", 35, 10)
	employees = makeEmployees(employees, "Austin", 35, 10)

	result := analyzeDimension(testConfig(), schema.AnalysisLocation, "Location", employees, locationOf)

	require.Equal(t, schema.StatusRed, result.Status)
	assert.Less(t, result.PValue, 0.01)
	assert.Equal(t, 2, result.DegreesOfFreedom)
	assert.Equal(t, 100, result.SampleSize)
	assert.Greater(t, result.EffectSize, 0.0)

	var berlin *schema.CategoryDeviation
	for i := range result.Deviations {
		if result.Deviations[i].Category == "Berlin" {
			berlin = &result.Deviations[i]
		}
	}
	require.NotNil(t, berlin)
	assert.Greater(t, berlin.ZScore, 2.0)
	assert.InDelta(t, 1.0, berlin.ObservedRate, 1e-9)
	assert.Len(t, berlin.EmployeeIDs, 30)
}

func TestAnalyzeDimensionGreenWhenUniform(t *testing.T) {
	var employees []schema.Employee
	employees = makeEmployees(employees, "Berlin", 40, 12)
	employees = makeEmployees(employees, "London", 40, 12)

	result := analyzeDimension(testConfig(), schema.AnalysisLocation, "Location", employees, locationOf)

	assert.Equal(t, schema.StatusGreen, result.Status)
	assert.InDelta(t, 0.0, result.ChiSquare, 1e-9)
}

func TestAnalyzeDimensionErrorResults(t *testing.T) {
	tests := []struct {
		name      string
		employees func() []schema.Employee
		wantError string
	}{
		{
			"insufficient sample",
			func() []schema.Employee { return makeEmployees(nil, "Berlin", 10, 5) },
			errInsufficientSample,
		},
		{
			"single category",
			func() []schema.Employee { return makeEmployees(nil, "Berlin", 40, 12) },
			errSingleCategory,
		},
		{
			"no high performers",
			func() []schema.Employee {
				e := makeEmployees(nil, "Berlin", 20, 0)
				return makeEmployees(e, "London", 20, 0)
			},
			errNoHighPerformers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzeDimension(testConfig(), schema.AnalysisLocation, "Location", tt.employees(), locationOf)
			assert.Equal(t, schema.StatusError, result.Status)
			assert.Equal(t, tt.wantError, result.Error)
			assert.Zero(t, result.SampleSize)
		})
	}
}

func TestAnalyzeDimensionFlagsLowExpected(t *testing.T) {
	// A 4-person office has an expected high count well below 5; it must be
	// flagged but still included in the test.
	var employees []schema.Employee
	employees = makeEmployees(employees, "Berlin", 50, 15)
	employees = makeEmployees(employees, "Reykjavik", 4, 1)

	result := analyzeDimension(testConfig(), schema.AnalysisLocation, "Location", employees, locationOf)

	require.Len(t, result.Deviations, 2)
	var small *schema.CategoryDeviation
	for i := range result.Deviations {
		if result.Deviations[i].Category == "Reykjavik" {
			small = &result.Deviations[i]
		}
	}
	require.NotNil(t, small)
	assert.True(t, small.LowExpected)
}

func TestAnalyzeDimensionEmptyCategoryBucketsAsUnknown(t *testing.T) {
	var employees []schema.Employee
	employees = makeEmployees(employees, "Berlin", 30, 10)
	blank := makeEmployees(nil, "", 10, 3)
	employees = append(employees, blank...)

	result := analyzeDimension(testConfig(), schema.AnalysisLocation, "Location", employees, locationOf)

	require.NotEqual(t, schema.StatusError, result.Status)
	categories := make([]string, 0, len(result.Deviations))
	for _, dev := range result.Deviations {
		categories = append(categories, dev.Category)
	}
	assert.Contains(t, categories, "unknown")
}
