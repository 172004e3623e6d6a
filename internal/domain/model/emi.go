package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeEMI computes the fixed monthly installment that amortizes principal
// over tenureMonths at the given annual percentage rate.
//
// The calculation uses:
//
//	monthlyRate = annualRatePercent / 12 / 100
//	EMI         = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The exponentiation runs in float64; the result is converted back to decimal
// and rounded half-up to 2 places exactly once, so callers always receive a
// value with two fractional digits. A zero rate degenerates to a straight-line
// split, a zero tenure to zero (guard-rail, not a billable installment).
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths == 0 {
		return decimal.Zero
	}

	monthlyRate := annualRatePercent.InexactFloat64() / 12 / 100
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(tenureMonths))).Round(2)
	}

	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(emi).Round(2)
}
