package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/application/dto"
)

// ValidationError reports a malformed or out-of-range request field. It is
// surfaced before any scoring happens and causes no side effects.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// validateApplication checks the request field ranges shared by both decision
// entry points.
func validateApplication(req dto.LoanApplicationRequest) error {
	switch {
	case req.LoanAmount.LessThanOrEqual(decimal.Zero):
		return ValidationError{Message: "Loan amount must be greater than 0"}
	case req.InterestRate.IsNegative():
		return ValidationError{Message: "Interest rate cannot be negative"}
	case req.Tenure <= 0:
		return ValidationError{Message: "Tenure must be greater than 0 months"}
	}
	return nil
}
