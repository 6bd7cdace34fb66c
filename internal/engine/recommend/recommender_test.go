// internal/engine/recommend/recommender_test.go
package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/engine/scoring"
	"plan-recommender/internal/models"
)

func createTestRecommender(t *testing.T) *Recommender {
	return New(scoring.NewScorer(scoring.DefaultWeights), logger.NewTestLogger(t))
}

func testCustomer() models.CustomerRecord {
	return models.CustomerRecord{
		CustomerID:      "C001",
		MonthlyUsageGB:  10,
		MonthlyCallsMin: 100,
		MonthlySMS:      50,
		MonthlyBill:     30,
	}
}

func testCatalog() []models.PlanRecord {
	return []models.PlanRecord{
		{PlanID: "Tiny", DataLimitGB: 1, CallLimitMin: 10, SMSLimit: 5, PlanPrice: 5},
		{PlanID: "Exact", DataLimitGB: 10, CallLimitMin: 100, SMSLimit: 50, PlanPrice: 30},
		{PlanID: "Huge", DataLimitGB: 100, CallLimitMin: 1000, SMSLimit: 500, PlanPrice: 200},
	}
}

func TestRecommend_RanksByScoreDescending(t *testing.T) {
	r := createTestRecommender(t)

	got, err := r.Recommend(testCustomer(), testCatalog(), 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Exact", got[0].PlanID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRecommend_TruncatesToK(t *testing.T) {
	r := createTestRecommender(t)

	got, err := r.Recommend(testCustomer(), testCatalog(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Exact", got[0].PlanID)
}

func TestRecommend_KLargerThanCatalog(t *testing.T) {
	r := createTestRecommender(t)

	got, err := r.Recommend(testCustomer(), testCatalog(), 10)

	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRecommend_NonPositiveK(t *testing.T) {
	r := createTestRecommender(t)

	for _, k := range []int{0, -1} {
		_, err := r.Recommend(testCustomer(), testCatalog(), k)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_TOP_K")
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	r := createTestRecommender(t)

	got, err := r.Recommend(testCustomer(), nil, 3)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	r := createTestRecommender(t)

	// Two plans identical except for id score identically; catalog order
	// decides the ranking.
	twins := []models.PlanRecord{
		{PlanID: "TwinA", DataLimitGB: 10, CallLimitMin: 100, SMSLimit: 50, PlanPrice: 30},
		{PlanID: "TwinB", DataLimitGB: 10, CallLimitMin: 100, SMSLimit: 50, PlanPrice: 30},
	}

	got, err := r.Recommend(testCustomer(), twins, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "TwinA", got[0].PlanID)
	assert.Equal(t, "TwinB", got[1].PlanID)
	assert.Equal(t, got[0].Score, got[1].Score)
}

func TestRecommend_DiagnosticsPopulated(t *testing.T) {
	r := createTestRecommender(t)

	got, err := r.Recommend(testCustomer(), testCatalog(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0].Diagnostics.DataUtil, 0.0005)
	assert.InDelta(t, 1.0, got[0].Diagnostics.UsageFit, 0.0005)
}
