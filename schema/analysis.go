package schema

// AnalysisStatus is the significance tier of a dimension analysis.
type AnalysisStatus string

// Analysis status tiers. Red and yellow track the configured p-value
// thresholds; error marks an analysis that could not run at all.
const (
	StatusGreen  AnalysisStatus = "green"
	StatusYellow AnalysisStatus = "yellow"
	StatusRed    AnalysisStatus = "red"
	StatusError  AnalysisStatus = "error"
)

// CategoryDeviation reports how one category of a dimension deviates from
// the population-wide expected high-performer rate.
type CategoryDeviation struct {
	Category     string   `json:"category"`      // Category value, e.g. "London" for the location dimension
	Total        int      `json:"total"`         // Employees in the category
	Observed     int      `json:"observed"`      // High performers observed in the category
	Expected     float64  `json:"expected"`      // High performers expected under the null hypothesis
	ObservedRate float64  `json:"observed_rate"` // Observed / Total
	ExpectedRate float64  `json:"expected_rate"` // Population-wide high-performer rate
	ZScore       float64  `json:"z_score"`       // Standardized deviation of the observed rate
	LowExpected  bool     `json:"low_expected"`  // Expected count below the chi-square validity floor
	EmployeeIDs  []string `json:"employee_ids"`  // High performers in the category, roster order
}

// AnalysisResult is the outcome of one dimension analysis.
// A result with Status == StatusError carries the failure kind in Error and
// a zero SampleSize; callers must treat it as a partial result, not a crash.
type AnalysisResult struct {
	Name             string              `json:"name"`               // Registry name of the analysis
	Dimension        string              `json:"dimension"`          // Human-readable dimension label
	ChiSquare        float64             `json:"chi_square"`         // Goodness-of-fit statistic
	PValue           float64             `json:"p_value"`            // Survival probability under the null
	DegreesOfFreedom int                 `json:"degrees_of_freedom"` // Category count minus one
	EffectSize       float64             `json:"effect_size"`        // Cramer's V
	SampleSize       int                 `json:"sample_size"`        // Employees included in the analysis
	Status           AnalysisStatus      `json:"status"`
	Error            string              `json:"error,omitempty"` // Failure kind when Status is error
	Deviations       []CategoryDeviation `json:"deviations"`
}

// Significant reports whether the result crossed either p-value threshold.
func (r *AnalysisResult) Significant() bool {
	return r.Status == StatusRed || r.Status == StatusYellow
}

// GridCellCount holds the population of one grid cell.
type GridCellCount struct {
	Position int     `json:"position"`
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// GridSummary is the 3x3 distribution of a population, cell 1 through 9.
type GridSummary struct {
	Total int             `json:"total"`
	Cells []GridCellCount `json:"cells"`
}
