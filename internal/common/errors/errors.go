// Package errors provides standardized error handling for the
// recommendation pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Dataset ingestion errors.
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeDatasetLoadFailed      ErrorCode = "DATASET_LOAD_FAILED"
	ErrCodeCustomerRecordInvalid  ErrorCode = "CUSTOMER_RECORD_INVALID"

	// Recommendation errors.
	ErrCodeInvalidTopK  ErrorCode = "INVALID_TOP_K"
	ErrCodeEmptyCatalog ErrorCode = "EMPTY_CATALOG"

	// Delivery errors.
	ErrCodeReportExportFailed     ErrorCode = "REPORT_EXPORT_FAILED"
	ErrCodeCacheUnavailable       ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewSchemaValidationFailedError reports required dataset columns that are
// missing. Fatal for the whole run.
func NewSchemaValidationFailedError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaValidationFailed,
		Message:   "Dataset missing required columns",
		Details:   fmt.Sprintf("missing: %s", strings.Join(missing, ", ")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatasetLoadFailedError creates a retryable dataset source error.
func NewDatasetLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatasetLoadFailed,
		Message:   "Failed to load customer dataset",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCustomerRecordInvalidError creates a per-row error. The batch recovers
// from it; only the offending customer is skipped.
func NewCustomerRecordInvalidError(customerID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCustomerRecordInvalid,
		Message:   "Customer record failed validation",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"customerId": customerID},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTopKError rejects a non-positive k before any scoring work.
func NewInvalidTopKError(k int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTopK,
		Message:   "top-k must be a positive integer",
		Details:   fmt.Sprintf("k: %d", k),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyCatalogError marks the soft "no plans derivable" condition.
func NewEmptyCatalogError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCatalog,
		Message:   "No plans derivable from dataset",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportExportFailedError creates a retryable export error.
func NewReportExportFailedError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportExportFailed,
		Message:   "Report export failed",
		Details:   fmt.Sprintf("target: %s, error: %s", target, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error. Callers treat it
// as soft and fall back to rebuilding the catalog.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Catalog cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatasetLoadFailed,
		ErrCodeReportExportFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeCacheUnavailable:
		return 1

	default:
		return 0 // Validation and policy errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SCHEMA") || strings.Contains(codeStr, "RECORD"):
		return "VALIDATION"
	case strings.Contains(codeStr, "DATASET"):
		return "INGESTION"
	case strings.Contains(codeStr, "TOP_K") || strings.Contains(codeStr, "CATALOG"):
		return "RECOMMENDATION"
	case strings.Contains(codeStr, "EXPORT") || strings.Contains(codeStr, "NOTIFICATION"):
		return "DELIVERY"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	default:
		return "OTHER"
	}
}
