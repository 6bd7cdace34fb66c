// internal/common/errors/recorder.go
package errors

import (
	"time"
)

// Logger is the subset of the logging interface the recorder needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Recorder normalizes and logs pipeline errors so that no soft failure is
// dropped without being observable somewhere.
type Recorder struct {
	logger Logger
}

func NewRecorder(logger Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Record normalizes err to a StandardError, logs it at a severity matching
// its retryability, and returns the normalized error.
func (r *Recorder) Record(stage string, err error) *StandardError {
	stdErr := normalizeError(err)

	fields := map[string]interface{}{
		"stage":     stage,
		"code":      string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	if stdErr.Retryable {
		r.logger.Warn(stdErr.Message, fields)
	} else {
		r.logger.Error(stdErr.Message, fields)
	}

	return stdErr
}

// normalizeError ensures we always have a StandardError.
func normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
