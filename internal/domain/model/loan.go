package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Loan belongs to exactly one customer. A loan is only ever created here (on
// approval) or merged in by the portfolio ingestion job; rate and amount of an
// existing loan are never updated by this service.
type Loan struct {
	id             int64
	customerID     int64
	externalLoanID string
	amount         decimal.Decimal
	tenure         int
	interestRate   decimal.Decimal
	monthlyPayment decimal.Decimal
	emisPaidOnTime int
	startDate      time.Time
	endDate        time.Time
	approved       bool
	repaymentsLeft int
	createdAt      time.Time
}

// OriginateLoan creates a freshly approved loan: the schedule starts today,
// ends tenure months later, and the installment is derived from the effective
// rate via ComputeEMI.
func OriginateLoan(customerID int64, amount, effectiveRate decimal.Decimal, tenure int, today time.Time) (Loan, error) {
	if customerID <= 0 {
		return Loan{}, errors.New("customer id is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("loan amount must be positive")
	}
	if effectiveRate.IsNegative() {
		return Loan{}, errors.New("interest rate cannot be negative")
	}
	if tenure <= 0 {
		return Loan{}, errors.New("tenure must be positive")
	}

	return Loan{
		customerID:     customerID,
		amount:         amount,
		tenure:         tenure,
		interestRate:   effectiveRate,
		monthlyPayment: ComputeEMI(amount, effectiveRate, tenure),
		startDate:      today,
		endDate:        today.AddDate(0, tenure, 0),
		approved:       true,
		repaymentsLeft: tenure,
		createdAt:      today,
	}, nil
}

// PreApproveLoan creates an approved loan under the legacy eligibility
// contract: no schedule dates are set and the customer's debt is untouched.
func PreApproveLoan(customerID int64, amount, rate decimal.Decimal, tenure int, now time.Time) (Loan, error) {
	if customerID <= 0 {
		return Loan{}, errors.New("customer id is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("loan amount must be positive")
	}
	if tenure <= 0 {
		return Loan{}, errors.New("tenure must be positive")
	}

	return Loan{
		customerID:     customerID,
		amount:         amount,
		tenure:         tenure,
		interestRate:   rate,
		monthlyPayment: ComputeEMI(amount, rate, tenure),
		approved:       true,
		repaymentsLeft: tenure,
		createdAt:      now,
	}, nil
}

// ReconstructLoan rebuilds a loan from persistence or ingestion. Zero start
// and end dates mean the dates were never recorded.
func ReconstructLoan(
	id, customerID int64,
	externalLoanID string,
	amount decimal.Decimal,
	tenure int,
	interestRate, monthlyPayment decimal.Decimal,
	emisPaidOnTime int,
	startDate, endDate time.Time,
	approved bool,
	repaymentsLeft int,
	createdAt time.Time,
) Loan {
	return Loan{
		id:             id,
		customerID:     customerID,
		externalLoanID: externalLoanID,
		amount:         amount,
		tenure:         tenure,
		interestRate:   interestRate,
		monthlyPayment: monthlyPayment,
		emisPaidOnTime: emisPaidOnTime,
		startDate:      startDate,
		endDate:        endDate,
		approved:       approved,
		repaymentsLeft: repaymentsLeft,
		createdAt:      createdAt,
	}
}

// WithID returns a copy carrying the repository-assigned id.
func (l Loan) WithID(id int64) Loan {
	next := l
	next.id = id
	return next
}

// IsActive reports whether the loan still has repayments left or an end date
// on or after the given day.
func (l Loan) IsActive(today time.Time) bool {
	if l.repaymentsLeft > 0 {
		return true
	}
	return !l.endDate.IsZero() && !l.endDate.Before(today)
}

// StartedIn reports whether the loan's schedule started in the given calendar
// year. Loans without a recorded start date never match.
func (l Loan) StartedIn(year int) bool {
	return !l.startDate.IsZero() && l.startDate.Year() == year
}

func (l Loan) ID() int64                       { return l.id }
func (l Loan) CustomerID() int64               { return l.customerID }
func (l Loan) ExternalLoanID() string          { return l.externalLoanID }
func (l Loan) Amount() decimal.Decimal         { return l.amount }
func (l Loan) Tenure() int                     { return l.tenure }
func (l Loan) InterestRate() decimal.Decimal   { return l.interestRate }
func (l Loan) MonthlyPayment() decimal.Decimal { return l.monthlyPayment }
func (l Loan) EMIsPaidOnTime() int             { return l.emisPaidOnTime }
func (l Loan) StartDate() time.Time            { return l.startDate }
func (l Loan) EndDate() time.Time              { return l.endDate }
func (l Loan) Approved() bool                  { return l.approved }
func (l Loan) RepaymentsLeft() int             { return l.repaymentsLeft }
func (l Loan) CreatedAt() time.Time            { return l.createdAt }
