package core

import (
	"sort"
	"time"

	"github.com/talentops/ninebox/core/stats"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// Analysis failure kinds surfaced in AnalysisResult.Error.
const (
	errInsufficientSample = "insufficient sample size"
	errSingleCategory     = "dimension has fewer than two categories"
	errNoHighPerformers   = "population has no high performers"
)

// dimensionFunc extracts the category value of one dimension from an employee.
type dimensionFunc func(e *schema.Employee) string

// analyzeDimension runs a chi-square goodness-of-fit test of the
// high-performer rate across the categories of one dimension. The full,
// unfiltered population is always used; callers filter the UI, not the test.
//
// Categories whose expected count falls below cfg.MinExpectedCount violate
// the usual chi-square validity rule. They are flagged via LowExpected and
// kept in the statistic rather than dropped, so small offices still show up
// in results; consumers decide how much weight to give them.
func analyzeDimension(cfg *contract.Config, name, dimension string, employees []schema.Employee, dim dimensionFunc) *schema.AnalysisResult {
	result := &schema.AnalysisResult{Name: name, Dimension: dimension}

	if len(employees) < cfg.MinSampleSize {
		result.Status = schema.StatusError
		result.Error = errInsufficientSample
		return result
	}

	// Bucket the population by category and count high performers per bucket.
	totals := make(map[string]int)
	highs := make(map[string]int)
	highIDs := make(map[string][]string)
	var totalHigh int
	for i := range employees {
		e := &employees[i]
		cat := dim(e)
		if cat == "" {
			cat = "unknown"
		}
		totals[cat]++
		if e.Performance == schema.RatingHigh {
			highs[cat]++
			highIDs[cat] = append(highIDs[cat], e.ID)
			totalHigh++
		}
	}

	if len(totals) < 2 {
		result.Status = schema.StatusError
		result.Error = errSingleCategory
		return result
	}
	if totalHigh == 0 {
		result.Status = schema.StatusError
		result.Error = errNoHighPerformers
		return result
	}

	n := len(employees)
	baseRate := float64(totalHigh) / float64(n)

	// Deterministic category order for reproducible deviations.
	categories := make([]string, 0, len(totals))
	for cat := range totals {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	observed := make([]int, len(categories))
	expected := make([]float64, len(categories))
	deviations := make([]schema.CategoryDeviation, len(categories))
	for i, cat := range categories {
		catTotal := totals[cat]
		obs := highs[cat]
		exp := baseRate * float64(catTotal)
		obsRate := float64(obs) / float64(catTotal)

		observed[i] = obs
		expected[i] = exp
		deviations[i] = schema.CategoryDeviation{
			Category:     cat,
			Total:        catTotal,
			Observed:     obs,
			Expected:     exp,
			ObservedRate: obsRate,
			ExpectedRate: baseRate,
			ZScore:       stats.ProportionZ(obsRate, baseRate, catTotal),
			LowExpected:  exp < cfg.MinExpectedCount,
			EmployeeIDs:  highIDs[cat],
		}
	}

	chiSquare := stats.ChiSquare(observed, expected)
	df := len(categories) - 1
	pValue := stats.PValue(chiSquare, df)

	result.ChiSquare = chiSquare
	result.PValue = pValue
	result.DegreesOfFreedom = df
	result.EffectSize = stats.CramersV(chiSquare, n, len(categories))
	result.SampleSize = n
	result.Deviations = deviations
	result.Status = statusForP(cfg, pValue)
	return result
}

// statusForP tiers a p-value against the configured thresholds.
func statusForP(cfg *contract.Config, p float64) schema.AnalysisStatus {
	switch {
	case p < cfg.RedPValue:
		return schema.StatusRed
	case p < cfg.YellowPValue:
		return schema.StatusYellow
	default:
		return schema.StatusGreen
	}
}

// Dimension extractors. Tenure is banded relative to the analysis time so
// the tenure dimension stays categorical.
func locationOf(e *schema.Employee) string { return e.Location }
func functionOf(e *schema.Employee) string { return e.Function }
func levelOf(e *schema.Employee) string    { return e.Level }
func managerOf(e *schema.Employee) string  { return e.ManagerID }

func tenureOf(now time.Time) dimensionFunc {
	return func(e *schema.Employee) string { return e.TenureBand(now) }
}
