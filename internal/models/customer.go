// internal/models/customer.go
package models

// CustomerRecord is one row of the input dataset: a single subscriber with
// their historical monthly usage and what they currently pay.
type CustomerRecord struct {
	CustomerID      string  `json:"customerId"`
	Name            string  `json:"name,omitempty"`
	Age             string  `json:"age,omitempty"`
	CurrentPlan     string  `json:"currentPlan"`
	MonthlyUsageGB  float64 `json:"monthlyUsageGb"`
	MonthlyCallsMin float64 `json:"monthlyCallsMin"`
	MonthlySMS      float64 `json:"monthlySms"`
	DataLimitGB     float64 `json:"dataLimitGb"`
	CallLimitMin    float64 `json:"callLimitMin"`
	SMSLimit        float64 `json:"smsLimit"`
	MonthlyBill     float64 `json:"monthlyBill"`
}
