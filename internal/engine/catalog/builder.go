// internal/engine/catalog/builder.go
package catalog

import (
	"sort"

	"plan-recommender/internal/models"
)

// Build derives the plan catalog from customer rows: one PlanRecord per
// distinct current_plan value, with the median of each plan attribute across
// the customers on that plan. The median (not the mean) keeps single
// outlier rows from skewing a plan's canonical limits.
//
// The result is ordered ascending by plan id so repeated builds over the
// same dataset are identical. An empty dataset yields an empty catalog.
func Build(customers []models.CustomerRecord) []models.PlanRecord {
	type group struct {
		dataLimits []float64
		callLimits []float64
		smsLimits  []float64
		bills      []float64
	}

	groups := make(map[string]*group)
	for _, c := range customers {
		g, ok := groups[c.CurrentPlan]
		if !ok {
			g = &group{}
			groups[c.CurrentPlan] = g
		}
		g.dataLimits = append(g.dataLimits, c.DataLimitGB)
		g.callLimits = append(g.callLimits, c.CallLimitMin)
		g.smsLimits = append(g.smsLimits, c.SMSLimit)
		g.bills = append(g.bills, c.MonthlyBill)
	}

	plans := make([]models.PlanRecord, 0, len(groups))
	for planID, g := range groups {
		plans = append(plans, models.PlanRecord{
			PlanID:       planID,
			DataLimitGB:  median(g.dataLimits),
			CallLimitMin: median(g.callLimits),
			SMSLimit:     median(g.smsLimits),
			PlanPrice:    median(g.bills),
		})
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].PlanID < plans[j].PlanID
	})

	return plans
}

// Lookup finds a plan by id. The second return is false when the id has no
// catalog row; callers treat that as a display-only "not found" case, never
// an error.
func Lookup(plans []models.PlanRecord, planID string) (models.PlanRecord, bool) {
	for _, p := range plans {
		if p.PlanID == planID {
			return p, true
		}
	}
	return models.PlanRecord{}, false
}

// median returns the middle value of vs, averaging the two middle values
// for even lengths. vs is never empty here: every group has at least the
// row that created it.
func median(vs []float64) float64 {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
