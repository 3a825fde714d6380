package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/talentops/ninebox/schema"
)

// ClusterInsights groups insights that share a root cause (the same source
// value, e.g. one manager or one location driving several findings) under a
// shared cluster id and title. The pass is order-independent and idempotent:
// members are sorted by ID before the cluster id is derived, so the same
// insight set always produces the same clusters no matter the input order
// or how many times the pass runs.
//
// The input slice is not mutated; a new slice with cluster fields set is
// returned. Insights whose source value appears only once stay unclustered.
func ClusterInsights(insights []schema.Insight) []schema.Insight {
	groups := make(map[string][]int)
	for i, insight := range insights {
		if insight.SourceValue == "" {
			continue
		}
		groups[insight.SourceValue] = append(groups[insight.SourceValue], i)
	}

	out := make([]schema.Insight, len(insights))
	copy(out, insights)

	for value, members := range groups {
		if len(members) < 2 {
			continue
		}

		ids := make([]string, len(members))
		for i, idx := range members {
			ids[i] = out[idx].ID
		}
		sort.Strings(ids)

		clusterID := clusterHash(ids)
		title := fmt.Sprintf("Pattern around %q (%d findings)", value, len(members))
		for _, idx := range members {
			out[idx].ClusterID = clusterID
			out[idx].ClusterTitle = title
		}
	}
	return out
}

// clusterHash derives a stable cluster id from the sorted member ids.
func clusterHash(sortedIDs []string) string {
	h := sha256.New()
	_, _ = h.Write([]byte(strings.Join(sortedIDs, ",")))
	return "c-" + hex.EncodeToString(h.Sum(nil))[:12]
}
