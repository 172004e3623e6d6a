package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides the DomainEvent plumbing shared by all events.
type BaseEvent struct {
	ID        uuid.UUID `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
	At        time.Time `json:"occurred_at"`
}

func newBaseEvent(eventType string, aggregateID int64, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Aggregate: strconv.FormatInt(aggregateID, 10),
		AggType:   aggregateType,
		At:        time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggType }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// CustomerRegistered is raised when a new customer is registered.
type CustomerRegistered struct {
	BaseEvent
	PhoneNumber   string `json:"phone_number"`
	MonthlySalary int64  `json:"monthly_salary"`
	ApprovedLimit int64  `json:"approved_limit"`
}

func NewCustomerRegistered(customerID int64, phoneNumber string, monthlySalary, approvedLimit int64) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     newBaseEvent("credit.customer.registered", customerID, "Customer"),
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlySalary,
		ApprovedLimit: approvedLimit,
	}
}

// LoanApproved is raised when an application results in a persisted loan.
type LoanApproved struct {
	BaseEvent
	CustomerID     int64           `json:"customer_id"`
	Amount         decimal.Decimal `json:"loan_amount"`
	EffectiveRate  decimal.Decimal `json:"interest_rate"`
	TenureMonths   int             `json:"tenure"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

func NewLoanApproved(loanID, customerID int64, amount, effectiveRate, monthlyPayment decimal.Decimal, tenure int) LoanApproved {
	return LoanApproved{
		BaseEvent:      newBaseEvent("credit.loan.approved", loanID, "Loan"),
		CustomerID:     customerID,
		Amount:         amount,
		EffectiveRate:  effectiveRate,
		TenureMonths:   tenure,
		MonthlyPayment: monthlyPayment,
	}
}

// LoanRejected is raised when an application is evaluated and not approved.
// Rejection is a successful evaluation, not an error.
type LoanRejected struct {
	BaseEvent
	Reason      string          `json:"reason"`
	Amount      decimal.Decimal `json:"loan_amount"`
	CreditScore int             `json:"credit_score"`
}

func NewLoanRejected(customerID int64, amount decimal.Decimal, score int, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:   newBaseEvent("credit.loan.rejected", customerID, "Customer"),
		Reason:      reason,
		Amount:      amount,
		CreditScore: score,
	}
}

// PortfolioIngested is raised after a bulk ingestion batch completes.
type PortfolioIngested struct {
	BaseEvent
	CustomersUpserted int `json:"customers_upserted"`
	LoansUpserted     int `json:"loans_upserted"`
	RowsSkipped       int `json:"rows_skipped"`
}

func NewPortfolioIngested(customersUpserted, loansUpserted, rowsSkipped int) PortfolioIngested {
	return PortfolioIngested{
		BaseEvent:         newBaseEvent("credit.portfolio.ingested", 0, "Portfolio"),
		CustomersUpserted: customersUpserted,
		LoansUpserted:     loansUpserted,
		RowsSkipped:       rowsSkipped,
	}
}
