package service

import (
	"github.com/shopspring/decimal"
)

// Mode selects which variant of the eligibility policy applies.
type Mode int

const (
	// ModeStrict is the full create-loan policy: all four score bands, rate
	// correction in the middle bands.
	ModeStrict Mode = iota
	// ModeLegacy is the older check-eligibility contract: only the two outer
	// bands approve, anything at or below 30 rejects, and the requested rate
	// is never corrected.
	ModeLegacy
)

// ReasonCode classifies a decision outcome.
type ReasonCode string

const (
	ReasonApproved      ReasonCode = "approved"
	ReasonRateCorrected ReasonCode = "approved_rate_corrected"
	ReasonLimitExceeded ReasonCode = "limit_exceeded"
	ReasonScoreTooLow   ReasonCode = "score_too_low"
	ReasonEMICeiling    ReasonCode = "emi_ceiling_exceeded"
)

// Decision is the outcome of the eligibility policy for one application.
type Decision struct {
	Approved      bool
	EffectiveRate decimal.Decimal
	Reason        ReasonCode
	Message       string
}

// Minimum rates the middle score bands are corrected up to.
var (
	minRateMidBand = decimal.NewFromFloat(12.0)
	minRateLowBand = decimal.NewFromFloat(16.0)
)

// Policy maps a credit score and requested rate to an approval decision.
// One policy backs both entry points; Mode picks the band table.
type Policy struct{}

// NewPolicy returns a new eligibility policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// Decide evaluates the tier table top to bottom, first match wins. Band
// boundaries are exclusive on the lower side: a score of exactly 30 falls in
// the 10<score<=30 band.
func (p *Policy) Decide(score int, requestedRate decimal.Decimal, mode Mode) Decision {
	if mode == ModeLegacy {
		return p.decideLegacy(score, requestedRate)
	}

	switch {
	case score == 0:
		return Decision{
			Reason:  ReasonLimitExceeded,
			Message: "Loan rejected: Sum of current loans exceeds approved credit limit",
		}
	case score > 50:
		return Decision{
			Approved:      true,
			EffectiveRate: requestedRate,
			Reason:        ReasonApproved,
			Message:       "Loan approved",
		}
	case score > 30:
		return p.approveAtFloor(requestedRate, minRateMidBand)
	case score > 10:
		return p.approveAtFloor(requestedRate, minRateLowBand)
	default:
		return Decision{
			Reason:  ReasonScoreTooLow,
			Message: "Loan rejected: Credit score too low",
		}
	}
}

// approveAtFloor approves at the requested rate when it clears the band's
// floor, otherwise approves with the rate raised to the floor.
func (p *Policy) approveAtFloor(requestedRate, floor decimal.Decimal) Decision {
	if requestedRate.GreaterThan(floor) {
		return Decision{
			Approved:      true,
			EffectiveRate: requestedRate,
			Reason:        ReasonApproved,
			Message:       "Loan approved",
		}
	}
	return Decision{
		Approved:      true,
		EffectiveRate: floor,
		Reason:        ReasonRateCorrected,
		Message:       "Loan approved with corrected interest rate",
	}
}

func (p *Policy) decideLegacy(score int, requestedRate decimal.Decimal) Decision {
	switch {
	case score > 50:
		return Decision{
			Approved:      true,
			EffectiveRate: requestedRate,
			Reason:        ReasonApproved,
			Message:       "Loan approved",
		}
	case score > 30 && requestedRate.GreaterThan(minRateMidBand):
		return Decision{
			Approved:      true,
			EffectiveRate: requestedRate,
			Reason:        ReasonApproved,
			Message:       "Loan approved",
		}
	default:
		return Decision{
			Reason:  ReasonScoreTooLow,
			Message: "Loan not approved due to low credit score",
		}
	}
}
