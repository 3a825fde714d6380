package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// GenerateInsights converts analysis results into prioritized insight
// records. One anomaly insight is emitted per statistically significant
// category deviation; identical findings across repeated runs share an ID
// through content hashing and are deduplicated within a run.
func GenerateInsights(cfg *contract.Config, results map[string]*schema.AnalysisResult) []schema.Insight {
	seen := make(map[string]bool)
	var insights []schema.Insight

	// Deterministic iteration over the results map.
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		result := results[name]
		if result == nil || result.Status == schema.StatusError {
			continue
		}
		for _, dev := range result.Deviations {
			if math.Abs(dev.ZScore) < cfg.ZThreshold {
				continue
			}
			insight := anomalyInsight(cfg, result, dev)
			if seen[insight.ID] {
				continue
			}
			seen[insight.ID] = true
			insights = append(insights, insight)
		}
	}

	sortInsights(insights)
	return insights
}

// anomalyInsight builds the insight record for one significant deviation.
func anomalyInsight(cfg *contract.Config, result *schema.AnalysisResult, dev schema.CategoryDeviation) schema.Insight {
	direction := "above"
	if dev.ZScore < 0 {
		direction = "below"
	}

	affected := make([]string, len(dev.EmployeeIDs))
	copy(affected, dev.EmployeeIDs)
	sort.Strings(affected)

	insight := schema.Insight{
		Type:          schema.InsightAnomaly,
		Category:      result.Name,
		SourceValue:   dev.Category,
		Title:         fmt.Sprintf("%s %q is %s the expected high-performer rate", result.Dimension, dev.Category, direction),
		Description: fmt.Sprintf(
			"%d of %d employees in %s %q are rated high performers (%.0f%% observed vs %.0f%% expected, z=%.1f).",
			dev.Observed, dev.Total, strings.ToLower(result.Dimension), dev.Category,
			dev.ObservedRate*100, dev.ExpectedRate*100, dev.ZScore),
		AffectedCount: dev.Total,
		AffectedIDs:   affected,
		SourceData: map[string]float64{
			"z_score":      dev.ZScore,
			"observed_pct": dev.ObservedRate * 100,
			"expected_pct": dev.ExpectedRate * 100,
			"p_value":      result.PValue,
			"effect_size":  result.EffectSize,
		},
	}
	insight.Priority = priorityFor(cfg, result, dev)
	insight.ID = insightID(insight.Type, insight.Category, insight.SourceValue, affected)
	return insight
}

// priorityFor applies the deterministic priority rule: red results over the
// affected-count floor are high; otherwise p-value and effect size decide
// between medium and low.
func priorityFor(cfg *contract.Config, result *schema.AnalysisResult, dev schema.CategoryDeviation) schema.InsightPriority {
	if result.Status == schema.StatusRed && dev.Total >= cfg.PriorityFloor {
		return schema.PriorityHigh
	}
	if result.PValue < cfg.YellowPValue && result.EffectSize >= 0.3 {
		return schema.PriorityMedium
	}
	return schema.PriorityLow
}

// insightID derives a stable content hash for an insight. Two insights with
// the same type, category, source value, and affected employees always get
// the same ID, regardless of when or in what order they were generated.
func insightID(typ schema.InsightType, category, sourceValue string, sortedAffected []string) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s|%s|%s|%s", typ, category, sourceValue, strings.Join(sortedAffected, ","))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// sortInsights orders insights by priority, then ID for a stable tiebreak.
func sortInsights(insights []schema.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Priority != insights[j].Priority {
			return insights[i].Priority.Before(insights[j].Priority)
		}
		return insights[i].ID < insights[j].ID
	})
}

// TimeAllocationInsights recommends how a manager should split calibration
// attention across the grid. The rule of thumb from talent-review practice:
// stars and emerging stars get development attention, underperformers get
// remediation attention, and the large middle gets the remainder.
func TimeAllocationInsights(employees []schema.Employee) []schema.Insight {
	summary := BuildGridSummary(employees)
	if summary.Total == 0 {
		return nil
	}

	var topTalent, atRisk int
	var topIDs, riskIDs []string
	for i := range employees {
		e := &employees[i]
		switch e.GridPos {
		case 8, 9:
			topTalent++
			topIDs = append(topIDs, e.ID)
		case 1, 2, 4:
			atRisk++
			riskIDs = append(riskIDs, e.ID)
		}
	}

	var insights []schema.Insight
	if topTalent > 0 {
		sort.Strings(topIDs)
		pct := float64(topTalent) / float64(summary.Total) * 100
		insight := schema.Insight{
			Type:          schema.InsightTimeAllocation,
			Category:      "grid",
			SourceValue:   "top_talent",
			Priority:      schema.PriorityMedium,
			Title:         "Invest development time in top talent",
			Description:   fmt.Sprintf("%d employees (%.0f%%) sit in the star cells; schedule retention and growth conversations first.", topTalent, pct),
			AffectedCount: topTalent,
			AffectedIDs:   topIDs,
			SourceData:    map[string]float64{"population_pct": pct},
		}
		insight.ID = insightID(insight.Type, insight.Category, insight.SourceValue, topIDs)
		insights = append(insights, insight)
	}
	if atRisk > 0 {
		sort.Strings(riskIDs)
		pct := float64(atRisk) / float64(summary.Total) * 100
		insight := schema.Insight{
			Type:          schema.InsightTimeAllocation,
			Category:      "grid",
			SourceValue:   "underperformance",
			Priority:      schema.PriorityMedium,
			Title:         "Plan remediation for low-performance cells",
			Description:   fmt.Sprintf("%d employees (%.0f%%) sit in low-performance cells; each needs an improvement plan or role change.", atRisk, pct),
			AffectedCount: atRisk,
			AffectedIDs:   riskIDs,
			SourceData:    map[string]float64{"population_pct": pct},
		}
		insight.ID = insightID(insight.Type, insight.Category, insight.SourceValue, riskIDs)
		insights = append(insights, insight)
	}
	return insights
}
