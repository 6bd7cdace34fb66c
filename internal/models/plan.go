// internal/models/plan.go
package models

// PlanRecord is one row of the derived catalog: the canonical (median)
// attributes of a distinct plan identifier found in the dataset.
type PlanRecord struct {
	PlanID       string  `json:"planId"`
	DataLimitGB  float64 `json:"dataLimitGb"`
	CallLimitMin float64 `json:"callLimitMin"`
	SMSLimit     float64 `json:"smsLimit"`
	PlanPrice    float64 `json:"planPrice"`
}

// ScoreDiagnostics carries the per-resource utilization ratios and the two
// intermediate fit values behind a composite score. All values are rounded
// to three decimals.
type ScoreDiagnostics struct {
	DataUtil float64 `json:"dataUtil"`
	CallUtil float64 `json:"callUtil"`
	SMSUtil  float64 `json:"smsUtil"`
	UsageFit float64 `json:"usageFit"`
	CostFit  float64 `json:"costFit"`
}

// ScoredCandidate is a plan scored against one customer. Produced by the
// recommender, consumed immediately by ranking and reporting.
type ScoredCandidate struct {
	PlanRecord
	Score       float64          `json:"score"`
	Diagnostics ScoreDiagnostics `json:"diagnostics"`
}
