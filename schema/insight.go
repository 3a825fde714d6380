package schema

// InsightType classifies what kind of finding an insight represents.
type InsightType string

// Insight types.
const (
	InsightAnomaly        InsightType = "anomaly"
	InsightRecommendation InsightType = "recommendation"
	InsightTimeAllocation InsightType = "time_allocation"
)

// InsightPriority orders insights for presentation.
type InsightPriority string

// Insight priorities.
const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// rank maps a priority to a sortable integer, highest first.
func (p InsightPriority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Before reports whether p sorts ahead of other.
func (p InsightPriority) Before(other InsightPriority) bool {
	return p.rank() < other.rank()
}

// Insight is a single structured finding produced from analysis results.
// The ID is a content hash of (type, category, affected ids) so identical
// findings across repeated runs collapse to the same record.
type Insight struct {
	ID            string             `json:"id"`
	Type          InsightType        `json:"type"`
	Category      string             `json:"category"`     // Dimension the insight came from, e.g. "location"
	SourceValue   string             `json:"source_value"` // Offending category value, e.g. "London"
	Priority      InsightPriority    `json:"priority"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	AffectedCount int                `json:"affected_count"`
	AffectedIDs   []string           `json:"affected_ids,omitempty"`
	SourceData    map[string]float64 `json:"source_data,omitempty"` // Numeric evidence: z_score, observed_pct, expected_pct

	ClusterID    string `json:"cluster_id,omitempty"`
	ClusterTitle string `json:"cluster_title,omitempty"`
}
