package port

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/domain/event"
	"github.com/lumenbank/credit-approval/internal/domain/model"
)

// Sentinel errors returned by repositories.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLoanNotFound     = errors.New("loan not found")
)

// CustomerRepository persists and retrieves customers.
type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	UpdateDebt(ctx context.Context, id int64, newDebt decimal.Decimal) error
	// UpsertByPhone merges a customer record keyed by phone number and is
	// used by portfolio ingestion only.
	UpsertByPhone(ctx context.Context, c model.Customer) (model.Customer, error)
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	Create(ctx context.Context, l model.Loan) (model.Loan, error)
	FindByID(ctx context.Context, id int64) (model.Loan, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error)
	// UpsertExternal merges a historical loan keyed by its external id and
	// owning customer and is used by portfolio ingestion only.
	UpsertExternal(ctx context.Context, l model.Loan) (model.Loan, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
