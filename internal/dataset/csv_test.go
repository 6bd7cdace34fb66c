// internal/dataset/csv_test.go
package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-recommender/internal/common/logger"
)

const validCSV = `customer_id,name,age,current_plan,monthly_usage_gb,monthly_calls_min,monthly_sms,data_limit_gb,call_limit_min,sms_limit,monthly_bill
C001,Alice,34,Standard,8.5,120,40,10,200,100,29.99
C002,Bob,29,Basic,2.1,45,10,5,100,50,14.99
`

// ==========================================
// ParseCSV Tests
// ==========================================

func TestParseCSV_ValidInput(t *testing.T) {
	customers, rowErrs, err := ParseCSV(strings.NewReader(validCSV))

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, customers, 2)

	assert.Equal(t, "C001", customers[0].CustomerID)
	assert.Equal(t, "Alice", customers[0].Name)
	assert.Equal(t, "34", customers[0].Age)
	assert.Equal(t, "Standard", customers[0].CurrentPlan)
	assert.Equal(t, 8.5, customers[0].MonthlyUsageGB)
	assert.Equal(t, 29.99, customers[0].MonthlyBill)
}

func TestParseCSV_TrimsHeaderWhitespace(t *testing.T) {
	padded := strings.Replace(validCSV, "customer_id", "  customer_id  ", 1)

	customers, _, err := ParseCSV(strings.NewReader(padded))

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "C001", customers[0].CustomerID)
}

func TestParseCSV_MissingRequiredColumns(t *testing.T) {
	input := `customer_id,current_plan
C001,Standard
`

	_, _, err := ParseCSV(strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEMA_VALIDATION_FAILED")
}

func TestParseCSV_OptionalColumnsMayBeAbsent(t *testing.T) {
	input := `customer_id,current_plan,monthly_usage_gb,monthly_calls_min,monthly_sms,data_limit_gb,call_limit_min,sms_limit,monthly_bill
C001,Standard,8.5,120,40,10,200,100,29.99
`

	customers, rowErrs, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, customers, 1)
	assert.Empty(t, customers[0].Name)
	assert.Empty(t, customers[0].Age)
}

func TestParseCSV_BadNumericValueDropsRowOnly(t *testing.T) {
	input := validCSV + "C003,Carol,40,Premium,not-a-number,10,10,10,100,50,19.99\n"

	customers, rowErrs, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Len(t, customers, 2)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 4, rowErrs[0].Row)
	assert.Equal(t, "monthly_usage_gb", rowErrs[0].Column)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEMA_VALIDATION_FAILED")
}

// ==========================================
// CSVSource Tests
// ==========================================

func TestCSVSource_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, os.WriteFile(path, []byte(validCSV), 0o644))

	source := NewCSVSource(path, logger.NewTestLogger(t))
	customers, rowErrs, err := source.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Len(t, customers, 2)
}

func TestCSVSource_MissingFile(t *testing.T) {
	source := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), logger.NewTestLogger(t))

	_, _, err := source.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_LOAD_FAILED")
}
