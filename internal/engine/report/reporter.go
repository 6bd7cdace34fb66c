// internal/engine/report/reporter.go
package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/common/metrics"
	"plan-recommender/internal/common/validation"
	"plan-recommender/internal/engine/recommend"
	"plan-recommender/internal/models"
)

// Reporter runs the recommender over a whole dataset and assembles the flat
// report table.
type Reporter struct {
	recommender *recommend.Recommender
	recorder    *errors.Recorder
	logger      logger.Logger
	maxParallel int
}

func New(recommender *recommend.Recommender, log logger.Logger, maxParallel int) *Reporter {
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &Reporter{
		recommender: recommender,
		recorder:    errors.NewRecorder(log),
		logger:      log.WithFields(map[string]interface{}{"component": "bulk-reporter"}),
		maxParallel: maxParallel,
	}
}

// GenerateAll produces one report row per (customer, rank) for the top k
// candidates of every customer. Customers are processed independently: a
// row that fails validation is recorded in the result's skipped list and
// the batch continues. Only an invalid k aborts the whole call, before any
// scoring work.
//
// Customers are scored in parallel across a bounded worker pool; each
// worker writes into its own slot and the slots are concatenated afterwards,
// so the output order follows the input order regardless of scheduling.
func (r *Reporter) GenerateAll(ctx context.Context, customers []models.CustomerRecord, catalog []models.PlanRecord, k int) (*models.BatchResult, error) {
	if k <= 0 {
		return nil, errors.NewInvalidTopKError(k)
	}

	start := time.Now()
	runID := uuid.New().String()
	log := r.logger.WithFields(map[string]interface{}{"runId": runID})

	log.Info("starting bulk report", map[string]interface{}{
		"customers": len(customers),
		"plans":     len(catalog),
		"topK":      k,
	})

	if len(catalog) == 0 && len(customers) > 0 {
		r.recorder.Record("bulk-report", errors.NewEmptyCatalogError())
	}

	rowChunks := make([][]models.ReportRow, len(customers))
	skipSlots := make([]*models.SkippedCustomer, len(customers))

	workers := r.maxParallel
	if workers > len(customers) {
		workers = len(customers)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				rowChunks[i], skipSlots[i] = r.processCustomer(customers[i], catalog, k)
			}
		}()
	}

loop:
	for i := range customers {
		select {
		case <-ctx.Done():
			break loop
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &models.BatchResult{RunID: runID, Rows: []models.ReportRow{}}
	for i := range customers {
		result.Rows = append(result.Rows, rowChunks[i]...)
		if skipSlots[i] != nil {
			result.Skipped = append(result.Skipped, *skipSlots[i])
		}
	}

	scored := len(customers) - len(result.Skipped)
	metrics.CustomersScored.Add(float64(scored))
	metrics.BatchesCompleted.WithLabelValues("bulk").Inc()
	metrics.BatchDuration.WithLabelValues("bulk").Observe(time.Since(start).Seconds())

	log.Info("bulk report completed", map[string]interface{}{
		"rows":       len(result.Rows),
		"scored":     scored,
		"skipped":    len(result.Skipped),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return result, nil
}

func (r *Reporter) processCustomer(customer models.CustomerRecord, catalog []models.PlanRecord, k int) ([]models.ReportRow, *models.SkippedCustomer) {
	if vr := validation.ValidateCustomer(customer); !vr.Valid {
		r.recorder.Record("bulk-report", errors.NewCustomerRecordInvalidError(customer.CustomerID, vr.Summary()))
		metrics.CustomersSkipped.WithLabelValues("invalid_record").Inc()
		return nil, &models.SkippedCustomer{CustomerID: customer.CustomerID, Reason: vr.Summary()}
	}

	candidates, err := r.recommender.Recommend(customer, catalog, k)
	if err != nil {
		// k was validated upfront, so this is unexpected; skip the
		// customer rather than abort the batch.
		r.recorder.Record("bulk-report", err)
		metrics.CustomersSkipped.WithLabelValues("recommend_failed").Inc()
		return nil, &models.SkippedCustomer{CustomerID: customer.CustomerID, Reason: err.Error()}
	}

	rows := make([]models.ReportRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, models.ReportRow{
			CustomerID:                 customer.CustomerID,
			Name:                       customer.Name,
			Age:                        customer.Age,
			CurrentPlan:                customer.CurrentPlan,
			MonthlyUsageGB:             customer.MonthlyUsageGB,
			MonthlyCallsMin:            customer.MonthlyCallsMin,
			MonthlySMS:                 customer.MonthlySMS,
			MonthlyBill:                customer.MonthlyBill,
			RecommendedPlanID:          c.PlanID,
			RecommendedPlanPrice:       c.PlanPrice,
			RecommendedPlanDataLimitGB: c.DataLimitGB,
			RecommendedPlanCallLimit:   c.CallLimitMin,
			RecommendedPlanSMSLimit:    c.SMSLimit,
			RecommendationScore:        c.Score,
			DataUtil:                   c.Diagnostics.DataUtil,
			CallUtil:                   c.Diagnostics.CallUtil,
			SMSUtil:                    c.Diagnostics.SMSUtil,
		})
	}
	return rows, nil
}

// BestPerCustomer reduces a report to one row per customer id: the row with
// the highest recommendation score, first occurrence winning ties. Output
// is ordered ascending by customer id.
func BestPerCustomer(rows []models.ReportRow) []models.ReportRow {
	sorted := make([]models.ReportRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CustomerID != sorted[j].CustomerID {
			return sorted[i].CustomerID < sorted[j].CustomerID
		}
		return sorted[i].RecommendationScore > sorted[j].RecommendationScore
	})

	best := []models.ReportRow{}
	seen := make(map[string]bool)
	for _, row := range sorted {
		if seen[row.CustomerID] {
			continue
		}
		seen[row.CustomerID] = true
		best = append(best, row)
	}
	return best
}
