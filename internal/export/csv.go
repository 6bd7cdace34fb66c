// internal/export/csv.go
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/models"
)

var reportHeader = []string{
	"customer_id", "name", "age", "current_plan",
	"monthly_usage_gb", "monthly_calls_min", "monthly_sms", "monthly_bill",
	"recommended_plan_id", "recommended_plan_price",
	"recommended_plan_data_limit_gb", "recommended_plan_call_limit",
	"recommended_plan_sms_limit", "recommendation_score",
	"data_util", "call_util", "sms_util",
}

var catalogHeader = []string{
	"plan_id", "data_limit_gb", "call_limit_min", "sms_limit", "plan_price",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteReportCSV writes the full recommendation report to w.
func WriteReportCSV(w io.Writer, rows []models.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.CustomerID, r.Name, r.Age, r.CurrentPlan,
			formatFloat(r.MonthlyUsageGB), formatFloat(r.MonthlyCallsMin),
			formatFloat(r.MonthlySMS), formatFloat(r.MonthlyBill),
			r.RecommendedPlanID, formatFloat(r.RecommendedPlanPrice),
			formatFloat(r.RecommendedPlanDataLimitGB), formatFloat(r.RecommendedPlanCallLimit),
			formatFloat(r.RecommendedPlanSMSLimit), formatFloat(r.RecommendationScore),
			formatFloat(r.DataUtil), formatFloat(r.CallUtil), formatFloat(r.SMSUtil),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCatalogCSV writes the derived plan catalog to w.
func WriteCatalogCSV(w io.Writer, plans []models.PlanRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalogHeader); err != nil {
		return err
	}
	for _, p := range plans {
		record := []string{
			p.PlanID,
			formatFloat(p.DataLimitGB), formatFloat(p.CallLimitMin),
			formatFloat(p.SMSLimit), formatFloat(p.PlanPrice),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveReportCSV writes the report to a file at path.
func SaveReportCSV(path string, rows []models.ReportRow) error {
	return saveCSV(path, func(w io.Writer) error {
		return WriteReportCSV(w, rows)
	})
}

// SaveCatalogCSV writes the catalog to a file at path.
func SaveCatalogCSV(path string, plans []models.PlanRecord) error {
	return saveCSV(path, func(w io.Writer) error {
		return WriteCatalogCSV(w, plans)
	})
}

func saveCSV(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewReportExportFailedError(path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.NewReportExportFailedError(path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewReportExportFailedError(path, err)
	}
	return nil
}
