// internal/common/validation/customer.go
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"plan-recommender/internal/models"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary flattens the per-field errors into one line for logs and
// skipped-customer reasons.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// customerSchema encodes the dataset row contract: identity and plan fields
// present, every numeric field a non-negative number.
var customerSchema = map[string]interface{}{
	"type": "object",
	"required": []interface{}{
		"customerId", "currentPlan",
		"monthlyUsageGb", "monthlyCallsMin", "monthlySms",
		"dataLimitGb", "callLimitMin", "smsLimit", "monthlyBill",
	},
	"properties": map[string]interface{}{
		"customerId":  map[string]interface{}{"type": "string", "minLength": 1},
		"currentPlan": map[string]interface{}{"type": "string", "minLength": 1},

		"monthlyUsageGb":  map[string]interface{}{"type": "number", "minimum": 0},
		"monthlyCallsMin": map[string]interface{}{"type": "number", "minimum": 0},
		"monthlySms":      map[string]interface{}{"type": "number", "minimum": 0},
		"dataLimitGb":     map[string]interface{}{"type": "number", "minimum": 0},
		"callLimitMin":    map[string]interface{}{"type": "number", "minimum": 0},
		"smsLimit":        map[string]interface{}{"type": "number", "minimum": 0},
		"monthlyBill":     map[string]interface{}{"type": "number", "minimum": 0},
	},
}

// numericFields maps the schema field names to their values for a record,
// in a fixed order so error output is deterministic.
func numericFields(rec models.CustomerRecord) []struct {
	name  string
	value float64
} {
	return []struct {
		name  string
		value float64
	}{
		{"monthlyUsageGb", rec.MonthlyUsageGB},
		{"monthlyCallsMin", rec.MonthlyCallsMin},
		{"monthlySms", rec.MonthlySMS},
		{"dataLimitGb", rec.DataLimitGB},
		{"callLimitMin", rec.CallLimitMin},
		{"smsLimit", rec.SMSLimit},
		{"monthlyBill", rec.MonthlyBill},
	}
}

// ValidateCustomer checks one customer record against the dataset row
// contract. NaN and infinity are rejected before the schema pass because
// they have no JSON representation.
func ValidateCustomer(rec models.CustomerRecord) *ValidationResult {
	errors := []ValidationError{}

	for _, f := range numericFields(rec) {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errors = append(errors, ValidationError{
				Field:   f.name,
				Message: "value must be finite",
				Code:    "NON_FINITE_VALUE",
			})
		}
	}
	if len(errors) > 0 {
		return &ValidationResult{Valid: false, Errors: errors}
	}

	doc := map[string]interface{}{
		"customerId":  rec.CustomerID,
		"currentPlan": rec.CurrentPlan,
	}
	for _, f := range numericFields(rec) {
		doc[f.name] = f.value
	}

	schemaLoader := gojsonschema.NewGoLoader(customerSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(document)",
				Message: err.Error(),
				Code:    "SCHEMA_ERROR",
			}},
		}
	}

	for _, e := range result.Errors() {
		errors = append(errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    "SCHEMA_VIOLATION",
		})
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}
