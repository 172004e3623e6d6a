package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/domain/port"
)

// ListCustomerLoansUseCase retrieves a customer's current loans: those with
// repayments left or an end date not yet passed.
type ListCustomerLoansUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	now       func() time.Time
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(customers port.CustomerRepository, loans port.LoanRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{
		customers: customers,
		loans:     loans,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute lists the customer's active loans.
func (uc *ListCustomerLoansUseCase) Execute(ctx context.Context, customerID int64) ([]dto.LoanView, error) {
	customer, err := uc.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	loans, err := uc.loans.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}

	today := uc.now()
	views := make([]dto.LoanView, 0, len(loans))
	for _, l := range loans {
		if !l.IsActive(today) {
			continue
		}
		views = append(views, toLoanView(l, customer))
	}
	return views, nil
}
