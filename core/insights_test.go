package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/schema"
)

// significantResult builds a red location result with one strong deviation.
func significantResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Name:       schema.AnalysisLocation,
		Dimension:  "Location",
		PValue:     0.001,
		EffectSize: 0.45,
		SampleSize: 100,
		Status:     schema.StatusRed,
		Deviations: []schema.CategoryDeviation{
			{
				Category:     "Berlin",
				Total:        30,
				Observed:     30,
				Expected:     9,
				ObservedRate: 1.0,
				ExpectedRate: 0.3,
				ZScore:       5.5,
				EmployeeIDs:  []string{"b-2", "b-1", "b-3"},
			},
			{
				Category:     "London",
				Total:        70,
				Observed:     20,
				Expected:     21,
				ObservedRate: 0.29,
				ExpectedRate: 0.3,
				ZScore:       -0.3, // below threshold, no insight
			},
		},
	}
}

func TestGenerateInsightsEmitsPerSignificantDeviation(t *testing.T) {
	results := map[string]*schema.AnalysisResult{
		schema.AnalysisLocation: significantResult(),
	}

	insights := GenerateInsights(testConfig(), results)

	require.Len(t, insights, 1)
	insight := insights[0]
	assert.Equal(t, schema.InsightAnomaly, insight.Type)
	assert.Equal(t, schema.AnalysisLocation, insight.Category)
	assert.Equal(t, "Berlin", insight.SourceValue)
	assert.Equal(t, schema.PriorityHigh, insight.Priority)
	assert.Equal(t, 30, insight.AffectedCount)
	assert.Equal(t, []string{"b-1", "b-2", "b-3"}, insight.AffectedIDs[:3])
	assert.InDelta(t, 5.5, insight.SourceData["z_score"], 1e-9)
	assert.NotEmpty(t, insight.ID)
}

func TestGenerateInsightsStableIDs(t *testing.T) {
	results := map[string]*schema.AnalysisResult{
		schema.AnalysisLocation: significantResult(),
	}

	first := GenerateInsights(testConfig(), results)
	second := GenerateInsights(testConfig(), results)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "identical findings must hash to the same id")
}

func TestGenerateInsightsSkipsErrorResults(t *testing.T) {
	results := map[string]*schema.AnalysisResult{
		schema.AnalysisLocation: significantResult(),
		schema.AnalysisManager:  {Name: schema.AnalysisManager, Status: schema.StatusError, Error: "insufficient sample size"},
		schema.AnalysisTenure:   nil,
	}

	insights := GenerateInsights(testConfig(), results)
	assert.Len(t, insights, 1)
}

func TestPriorityRules(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name   string
		result *schema.AnalysisResult
		dev    schema.CategoryDeviation
		want   schema.InsightPriority
	}{
		{
			"red with enough affected is high",
			&schema.AnalysisResult{Status: schema.StatusRed, PValue: 0.001, EffectSize: 0.4},
			schema.CategoryDeviation{Total: 30},
			schema.PriorityHigh,
		},
		{
			"red below the floor falls back to the p-value rule",
			&schema.AnalysisResult{Status: schema.StatusRed, PValue: 0.001, EffectSize: 0.4},
			schema.CategoryDeviation{Total: 3},
			schema.PriorityMedium,
		},
		{
			"yellow with strong effect is medium",
			&schema.AnalysisResult{Status: schema.StatusYellow, PValue: 0.03, EffectSize: 0.35},
			schema.CategoryDeviation{Total: 20},
			schema.PriorityMedium,
		},
		{
			"yellow with weak effect is low",
			&schema.AnalysisResult{Status: schema.StatusYellow, PValue: 0.03, EffectSize: 0.1},
			schema.CategoryDeviation{Total: 20},
			schema.PriorityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priorityFor(cfg, tt.result, tt.dev))
		})
	}
}

func TestTimeAllocationInsights(t *testing.T) {
	employees := []schema.Employee{
		{ID: "e1", GridPos: 9},
		{ID: "e2", GridPos: 8},
		{ID: "e3", GridPos: 1},
		{ID: "e4", GridPos: 5},
		{ID: "e5", GridPos: 5},
	}

	insights := TimeAllocationInsights(employees)

	require.Len(t, insights, 2)
	byValue := make(map[string]schema.Insight)
	for _, insight := range insights {
		assert.Equal(t, schema.InsightTimeAllocation, insight.Type)
		byValue[insight.SourceValue] = insight
	}
	assert.Equal(t, 2, byValue["top_talent"].AffectedCount)
	assert.Equal(t, 1, byValue["underperformance"].AffectedCount)

	// Empty population produces nothing.
	assert.Nil(t, TimeAllocationInsights(nil))
}

func TestSortInsightsPriorityThenID(t *testing.T) {
	insights := []schema.Insight{
		{ID: "bbb", Priority: schema.PriorityLow},
		{ID: "aaa", Priority: schema.PriorityLow},
		{ID: "zzz", Priority: schema.PriorityHigh},
	}
	sortInsights(insights)

	assert.Equal(t, "zzz", insights[0].ID)
	assert.Equal(t, "aaa", insights[1].ID)
	assert.Equal(t, "bbb", insights[2].ID)
}
