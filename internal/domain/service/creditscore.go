package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/domain/model"
)

// Score component weights. They sum to 1.0 so the composite stays in [0,100].
const (
	weightOnTime      = 0.50
	weightLoanCount   = 0.20
	weightActivity    = 0.15
	weightUtilization = 0.15
)

// noHistoryOnTime is the on-time ratio assumed for a customer with no loans
// eligible for the ratio: no history is treated as perfectly reliable.
const noHistoryOnTime = 1.0

// ScoreEngine aggregates a customer's loan history into a 0-100
// credit-worthiness score.
type ScoreEngine struct{}

// NewScoreEngine returns a new engine instance.
func NewScoreEngine() *ScoreEngine {
	return &ScoreEngine{}
}

// Evaluate computes the credit score for a customer over their full loan
// history. The result is deterministic and independent of loan order.
//
// If the sum of approved-or-active loan amounts already exceeds the approved
// limit the score is 0 regardless of any other component.
func (e *ScoreEngine) Evaluate(customer model.Customer, loans []model.Loan, today time.Time) int {
	exposure := decimal.Zero
	for _, l := range loans {
		if l.Approved() || (!l.EndDate().IsZero() && !l.EndDate().Before(today)) {
			exposure = exposure.Add(l.Amount())
		}
	}
	if exposure.GreaterThan(decimal.NewFromInt(customer.ApprovedLimit())) {
		return 0
	}

	avgOnTime := noHistoryOnTime
	ratioSum, ratioCount := 0.0, 0
	for _, l := range loans {
		if l.Tenure() <= 0 {
			continue
		}
		ratioSum += math.Min(1.0, float64(l.EMIsPaidOnTime())/float64(l.Tenure()))
		ratioCount++
	}
	if ratioCount > 0 {
		avgOnTime = ratioSum / float64(ratioCount)
	}

	// Ten or more loans ever taken zeroes this component.
	loansScore := math.Max(0, 1-float64(len(loans))/10.0)

	startedThisYear := 0
	for _, l := range loans {
		if l.StartedIn(today.Year()) {
			startedThisYear++
		}
	}
	activityScore := math.Min(1.0, float64(startedThisYear)/3.0)

	volScore := 0.0
	if customer.ApprovedLimit() > 0 {
		totalVolume := decimal.Zero
		for _, l := range loans {
			totalVolume = totalVolume.Add(l.Amount())
		}
		utilization, _ := totalVolume.Div(decimal.NewFromInt(customer.ApprovedLimit())).Float64()
		volScore = math.Max(0, 1-utilization)
	}

	score := 100 * (weightOnTime*avgOnTime +
		weightLoanCount*loansScore +
		weightActivity*activityScore +
		weightUtilization*volScore)

	return clampScore(int(math.Round(score)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
