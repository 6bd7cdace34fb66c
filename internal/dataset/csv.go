// internal/dataset/csv.go
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/models"
)

// RequiredColumns are the dataset columns every source must provide.
// Header names are matched after trimming surrounding whitespace.
var RequiredColumns = []string{
	"customer_id",
	"monthly_usage_gb",
	"monthly_calls_min",
	"monthly_sms",
	"current_plan",
	"data_limit_gb",
	"call_limit_min",
	"sms_limit",
	"monthly_bill",
}

// Source yields customer records regardless of where they are stored.
// Implementations report unparseable rows separately so one bad row does not
// fail the whole load.
type Source interface {
	Load(ctx context.Context) ([]models.CustomerRecord, []RowError, error)
	Name() string
}

// RowError describes a single data row that could not be parsed. Row numbers
// are 1-based and count the header as row 1.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: column %q: %v", e.Row, e.Column, e.Err)
}

// CSVSource loads customer records from a CSV file.
type CSVSource struct {
	path   string
	logger logger.Logger
}

func NewCSVSource(path string, log logger.Logger) *CSVSource {
	return &CSVSource{
		path:   path,
		logger: log.WithFields(map[string]interface{}{"component": "csv-source", "path": path}),
	}
}

func (s *CSVSource) Name() string { return "csv" }

// Load reads and parses the whole file. A missing required column is a hard
// failure; rows with unparseable numeric values are dropped and reported in
// the returned RowError slice so the caller can surface them without
// aborting the run.
func (s *CSVSource) Load(_ context.Context) ([]models.CustomerRecord, []RowError, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, errors.NewDatasetLoadFailedError(s.path, err)
	}
	defer f.Close()

	records, rowErrs, err := ParseCSV(f)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("dataset loaded", map[string]interface{}{
		"rows":        len(records),
		"invalidRows": len(rowErrs),
	})
	return records, rowErrs, nil
}

// ParseCSV parses customer records from r. Split out from Load so tests and
// other callers can feed in-memory data.
func ParseCSV(r io.Reader) ([]models.CustomerRecord, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.NewSchemaValidationFailedError(RequiredColumns)
	}
	if err != nil {
		return nil, nil, errors.NewDatasetLoadFailedError("csv", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, errors.NewSchemaValidationFailedError(missing)
	}

	var (
		customers []models.CustomerRecord
		rowErrs   []RowError
	)
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewDatasetLoadFailedError("csv", err)
		}

		rec, rowErr := parseRow(row, colIndex, rowNum)
		if rowErr != nil {
			rowErrs = append(rowErrs, *rowErr)
			continue
		}
		customers = append(customers, rec)
	}

	return customers, rowErrs, nil
}

func parseRow(row []string, colIndex map[string]int, rowNum int) (models.CustomerRecord, *RowError) {
	field := func(name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := models.CustomerRecord{
		CustomerID:  field("customer_id"),
		Name:        field("name"),
		Age:         field("age"),
		CurrentPlan: field("current_plan"),
	}

	numeric := []struct {
		column string
		dst    *float64
	}{
		{"monthly_usage_gb", &rec.MonthlyUsageGB},
		{"monthly_calls_min", &rec.MonthlyCallsMin},
		{"monthly_sms", &rec.MonthlySMS},
		{"data_limit_gb", &rec.DataLimitGB},
		{"call_limit_min", &rec.CallLimitMin},
		{"sms_limit", &rec.SMSLimit},
		{"monthly_bill", &rec.MonthlyBill},
	}
	for _, n := range numeric {
		raw := field(n.column)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.CustomerRecord{}, &RowError{Row: rowNum, Column: n.column, Err: err}
		}
		*n.dst = v
	}

	return rec, nil
}
