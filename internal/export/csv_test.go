// internal/export/csv_test.go
package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-recommender/internal/models"
)

func sampleRows() []models.ReportRow {
	return []models.ReportRow{
		{
			CustomerID: "C001", Name: "Alice", Age: "34", CurrentPlan: "Standard",
			MonthlyUsageGB: 8.5, MonthlyCallsMin: 120, MonthlySMS: 40, MonthlyBill: 29.99,
			RecommendedPlanID: "Premium", RecommendedPlanPrice: 80,
			RecommendedPlanDataLimitGB: 50, RecommendedPlanCallLimit: 500,
			RecommendedPlanSMSLimit: 250, RecommendationScore: 3.25,
			DataUtil: 0.17, CallUtil: 0.24, SMSUtil: 0.16,
		},
	}
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteReportCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, reportHeader, records[0])
	assert.Equal(t, "C001", records[1][0])
	assert.Equal(t, "8.5", records[1][4])
	assert.Equal(t, "29.99", records[1][7])
	assert.Equal(t, "3.25", records[1][13])
}

func TestWriteReportCSV_EmptyRowsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteReportCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, reportHeader, records[0])
}

func TestWriteCatalogCSV(t *testing.T) {
	var buf bytes.Buffer
	plans := []models.PlanRecord{
		{PlanID: "Basic", DataLimitGB: 5, CallLimitMin: 100, SMSLimit: 50, PlanPrice: 14.99},
	}

	require.NoError(t, WriteCatalogCSV(&buf, plans))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, catalogHeader, records[0])
	assert.Equal(t, []string{"Basic", "5", "100", "50", "14.99"}, records[1])
}

func TestSaveReportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recommendations.csv")

	require.NoError(t, SaveReportCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "C001")
}

func TestSaveReportCSV_BadPath(t *testing.T) {
	err := SaveReportCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), sampleRows())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_EXPORT_FAILED")
}
