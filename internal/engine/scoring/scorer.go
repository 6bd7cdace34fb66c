// internal/engine/scoring/scorer.go
package scoring

import (
	"math"

	"plan-recommender/internal/models"
)

// Epsilon guards the utilization and cost ratios against division by zero
// when a plan has a zero limit or a customer a zero bill.
const Epsilon = 1e-9

// Weights is the scoring policy: how much a plan's usage match counts
// against its price. Both must be positive.
type Weights struct {
	Usage float64
	Cost  float64
}

// DefaultWeights favors usage match over price.
var DefaultWeights = Weights{Usage: 0.65, Cost: 0.35}

// Scorer computes fit scores between customers and plans. It is stateless
// beyond its weights and safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	if weights.Usage <= 0 || weights.Cost <= 0 {
		weights = DefaultWeights
	}
	return &Scorer{weights: weights}
}

// ScoreFit rates how well plan fits customer on a 0-5 scale.
//
// Per resource (data, calls, sms) it computes the utilization ratio
// usage/(limit+eps); utilization of exactly 1.0 is ideal and fit degrades
// symmetrically on both sides, clamped so extreme over/under-use bottoms
// out instead of going unbounded. The three per-resource fits average into
// usage_fit. cost_fit is 1.0 whenever the plan costs no more than the
// customer's current bill and decays as 1/cost_ratio above that.
//
// The final score is the weighted mix of usage_fit and cost_fit scaled to
// 0-5. Score and every diagnostic are rounded to three decimals; that
// rounding is part of the contract, not incidental.
func (s *Scorer) ScoreFit(customer models.CustomerRecord, plan models.PlanRecord) (float64, models.ScoreDiagnostics) {
	dataUtil := customer.MonthlyUsageGB / (plan.DataLimitGB + Epsilon)
	callUtil := customer.MonthlyCallsMin / (plan.CallLimitMin + Epsilon)
	smsUtil := customer.MonthlySMS / (plan.SMSLimit + Epsilon)

	usageFit := (fitFromUtil(dataUtil) + fitFromUtil(callUtil) + fitFromUtil(smsUtil)) / 3.0

	costRatio := plan.PlanPrice / (customer.MonthlyBill + Epsilon)
	costFit := 1.0
	if costRatio > 1.0 {
		costFit = clamp(1.0/costRatio, 0.0, 1.0)
	}

	final := s.weights.Usage*usageFit + s.weights.Cost*costFit

	return Round3(final * 5), models.ScoreDiagnostics{
		DataUtil: Round3(dataUtil),
		CallUtil: Round3(callUtil),
		SMSUtil:  Round3(smsUtil),
		UsageFit: Round3(usageFit),
		CostFit:  Round3(costFit),
	}
}

// fitFromUtil maps a utilization ratio to [0,1], peaking at utilization 1.0.
func fitFromUtil(u float64) float64 {
	fit := clamp(1-math.Abs(u-1), -1.0, 1.0)
	return (fit + 1) / 2.0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round3 rounds to three decimal places. Presentation stability depends on
// it: swap this out to change the precision policy without touching the
// scoring math.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
