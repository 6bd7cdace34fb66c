// internal/models/report.go
package models

// ReportRow is one row of the bulk recommendation report: one (customer,
// rank) pair with the customer's identity and usage alongside the
// recommended plan and its score diagnostics.
type ReportRow struct {
	CustomerID                 string  `json:"customerId"`
	Name                       string  `json:"name,omitempty"`
	Age                        string  `json:"age,omitempty"`
	CurrentPlan                string  `json:"currentPlan"`
	MonthlyUsageGB             float64 `json:"monthlyUsageGb"`
	MonthlyCallsMin            float64 `json:"monthlyCallsMin"`
	MonthlySMS                 float64 `json:"monthlySms"`
	MonthlyBill                float64 `json:"monthlyBill"`
	RecommendedPlanID          string  `json:"recommendedPlanId"`
	RecommendedPlanPrice       float64 `json:"recommendedPlanPrice"`
	RecommendedPlanDataLimitGB float64 `json:"recommendedPlanDataLimitGb"`
	RecommendedPlanCallLimit   float64 `json:"recommendedPlanCallLimitMin"`
	RecommendedPlanSMSLimit    float64 `json:"recommendedPlanSmsLimit"`
	RecommendationScore        float64 `json:"recommendationScore"`
	DataUtil                   float64 `json:"dataUtil"`
	CallUtil                   float64 `json:"callUtil"`
	SMSUtil                    float64 `json:"smsUtil"`
}

// SkippedCustomer records a customer omitted from a batch run and why.
type SkippedCustomer struct {
	CustomerID string `json:"customerId"`
	Reason     string `json:"reason"`
}

// BatchResult is the output of one bulk report run. Skipped customers are
// recorded rather than failing the batch.
type BatchResult struct {
	RunID   string            `json:"runId"`
	Rows    []ReportRow       `json:"rows"`
	Skipped []SkippedCustomer `json:"skipped,omitempty"`
}
