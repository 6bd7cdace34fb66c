// internal/engine/recommend/recommender.go
package recommend

import (
	"sort"

	"plan-recommender/internal/common/errors"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/engine/scoring"
	"plan-recommender/internal/models"
)

// Recommender ranks catalog plans for individual customers.
type Recommender struct {
	scorer *scoring.Scorer
	logger logger.Logger
}

func New(scorer *scoring.Scorer, log logger.Logger) *Recommender {
	return &Recommender{
		scorer: scorer,
		logger: log.WithFields(map[string]interface{}{"component": "recommender"}),
	}
}

// Recommend scores every plan in the catalog against the customer and
// returns the top k, descending by score. Ties keep catalog order, so the
// output is deterministic for a given catalog.
//
// k must be positive; that is rejected here before any scoring work. An
// empty catalog yields an empty result, not an error; callers surface the
// "no candidates" state themselves. k larger than the catalog returns all
// candidates.
func (r *Recommender) Recommend(customer models.CustomerRecord, catalog []models.PlanRecord, k int) ([]models.ScoredCandidate, error) {
	if k <= 0 {
		return nil, errors.NewInvalidTopKError(k)
	}

	if len(catalog) == 0 {
		r.logger.Debug("empty catalog, no candidates", map[string]interface{}{
			"customerId": customer.CustomerID,
		})
		return []models.ScoredCandidate{}, nil
	}

	scored := make([]models.ScoredCandidate, 0, len(catalog))
	for _, plan := range catalog {
		score, diagnostics := r.scorer.ScoreFit(customer, plan)
		scored = append(scored, models.ScoredCandidate{
			PlanRecord:  plan,
			Score:       score,
			Diagnostics: diagnostics,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	return scored, nil
}
