// internal/engine/report/reporter_test.go
package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/engine/recommend"
	"plan-recommender/internal/engine/scoring"
	"plan-recommender/internal/models"
)

// ==========================================
// Test Helpers
// ==========================================

func createTestReporter(t *testing.T, maxParallel int) *Reporter {
	log := logger.NewTestLogger(t)
	rec := recommend.New(scoring.NewScorer(scoring.DefaultWeights), log)
	return New(rec, log, maxParallel)
}

func createTestCustomer(id, plan string) models.CustomerRecord {
	return models.CustomerRecord{
		CustomerID:      id,
		CurrentPlan:     plan,
		MonthlyUsageGB:  10,
		MonthlyCallsMin: 100,
		MonthlySMS:      50,
		DataLimitGB:     10,
		CallLimitMin:    100,
		SMSLimit:        50,
		MonthlyBill:     30,
	}
}

func createTestCatalog() []models.PlanRecord {
	return []models.PlanRecord{
		{PlanID: "Basic", DataLimitGB: 5, CallLimitMin: 50, SMSLimit: 25, PlanPrice: 15},
		{PlanID: "Standard", DataLimitGB: 10, CallLimitMin: 100, SMSLimit: 50, PlanPrice: 30},
		{PlanID: "Premium", DataLimitGB: 50, CallLimitMin: 500, SMSLimit: 250, PlanPrice: 80},
	}
}

// ==========================================
// GenerateAll Tests
// ==========================================

func TestGenerateAll_ProducesTopKRowsPerCustomer(t *testing.T) {
	reporter := createTestReporter(t, 2)
	customers := []models.CustomerRecord{
		createTestCustomer("C001", "Standard"),
		createTestCustomer("C002", "Basic"),
	}

	result, err := reporter.GenerateAll(context.Background(), customers, createTestCatalog(), 2)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Rows, 4)
	assert.Empty(t, result.Skipped)

	// Output order follows input order.
	assert.Equal(t, "C001", result.Rows[0].CustomerID)
	assert.Equal(t, "C001", result.Rows[1].CustomerID)
	assert.Equal(t, "C002", result.Rows[2].CustomerID)
	assert.Equal(t, "C002", result.Rows[3].CustomerID)

	// Rows within a customer are ordered by descending score.
	assert.GreaterOrEqual(t, result.Rows[0].RecommendationScore, result.Rows[1].RecommendationScore)
}

func TestGenerateAll_InvalidTopKAbortsBatch(t *testing.T) {
	reporter := createTestReporter(t, 2)
	customers := []models.CustomerRecord{createTestCustomer("C001", "Standard")}

	result, err := reporter.GenerateAll(context.Background(), customers, createTestCatalog(), 0)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "INVALID_TOP_K")
}

func TestGenerateAll_InvalidCustomerIsSkippedNotFatal(t *testing.T) {
	reporter := createTestReporter(t, 1)
	bad := createTestCustomer("C002", "Basic")
	bad.MonthlyUsageGB = -5
	customers := []models.CustomerRecord{
		createTestCustomer("C001", "Standard"),
		bad,
		createTestCustomer("C003", "Premium"),
	}

	result, err := reporter.GenerateAll(context.Background(), customers, createTestCatalog(), 1)

	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "C002", result.Skipped[0].CustomerID)
	assert.NotEmpty(t, result.Skipped[0].Reason)
}

func TestGenerateAll_EmptyCatalogYieldsEmptyRows(t *testing.T) {
	reporter := createTestReporter(t, 2)
	customers := []models.CustomerRecord{createTestCustomer("C001", "Standard")}

	result, err := reporter.GenerateAll(context.Background(), customers, []models.PlanRecord{}, 3)

	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Skipped)
}

func TestGenerateAll_EmptyDataset(t *testing.T) {
	reporter := createTestReporter(t, 4)

	result, err := reporter.GenerateAll(context.Background(), nil, createTestCatalog(), 3)

	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Skipped)
}

func TestGenerateAll_CancelledContext(t *testing.T) {
	reporter := createTestReporter(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	customers := make([]models.CustomerRecord, 100)
	for i := range customers {
		customers[i] = createTestCustomer("C001", "Standard")
	}

	_, err := reporter.GenerateAll(ctx, customers, createTestCatalog(), 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateAll_ParallelMatchesSequential(t *testing.T) {
	customers := make([]models.CustomerRecord, 0, 20)
	for i := 0; i < 20; i++ {
		plan := []string{"Basic", "Standard", "Premium"}[i%3]
		c := createTestCustomer(string(rune('A'+i))+"01", plan)
		c.MonthlyUsageGB = float64(i + 1)
		customers = append(customers, c)
	}

	sequential := createTestReporter(t, 1)
	parallel := createTestReporter(t, 8)

	seqResult, err := sequential.GenerateAll(context.Background(), customers, createTestCatalog(), 3)
	require.NoError(t, err)
	parResult, err := parallel.GenerateAll(context.Background(), customers, createTestCatalog(), 3)
	require.NoError(t, err)

	assert.Equal(t, seqResult.Rows, parResult.Rows)
}

// ==========================================
// BestPerCustomer Tests
// ==========================================

func TestBestPerCustomer_PicksHighestScore(t *testing.T) {
	rows := []models.ReportRow{
		{CustomerID: "C002", RecommendedPlanID: "Basic", RecommendationScore: 3.0},
		{CustomerID: "C001", RecommendedPlanID: "Standard", RecommendationScore: 4.5},
		{CustomerID: "C001", RecommendedPlanID: "Premium", RecommendationScore: 2.1},
		{CustomerID: "C002", RecommendedPlanID: "Premium", RecommendationScore: 4.9},
	}

	best := BestPerCustomer(rows)

	require.Len(t, best, 2)
	assert.Equal(t, "C001", best[0].CustomerID)
	assert.Equal(t, "Standard", best[0].RecommendedPlanID)
	assert.Equal(t, "C002", best[1].CustomerID)
	assert.Equal(t, "Premium", best[1].RecommendedPlanID)
}

func TestBestPerCustomer_TieKeepsFirstOccurrence(t *testing.T) {
	rows := []models.ReportRow{
		{CustomerID: "C001", RecommendedPlanID: "Standard", RecommendationScore: 4.0},
		{CustomerID: "C001", RecommendedPlanID: "Premium", RecommendationScore: 4.0},
	}

	best := BestPerCustomer(rows)

	require.Len(t, best, 1)
	assert.Equal(t, "Standard", best[0].RecommendedPlanID)
}

func TestBestPerCustomer_EmptyInput(t *testing.T) {
	assert.Empty(t, BestPerCustomer(nil))
}
