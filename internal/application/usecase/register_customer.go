package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/domain/event"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
)

// RegisterCustomerUseCase creates a customer with a salary-derived approved
// limit.
type RegisterCustomerUseCase struct {
	customers port.CustomerRepository
	publisher port.EventPublisher
	now       func() time.Time
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(customers port.CustomerRepository, publisher port.EventPublisher) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customers: customers,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute registers the customer and returns the derived approved limit.
func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, req dto.RegisterCustomerRequest) (dto.RegisterCustomerResponse, error) {
	customer, err := model.NewCustomer(req.FirstName, req.LastName, req.Age, req.PhoneNumber, req.MonthlyIncome, uc.now())
	if err != nil {
		return dto.RegisterCustomerResponse{}, ValidationError{Message: err.Error()}
	}

	customer, err = uc.customers.Create(ctx, customer)
	if err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	registered := event.NewCustomerRegistered(
		customer.ID(), customer.PhoneNumber(), customer.MonthlySalary(), customer.ApprovedLimit(),
	)
	if err := uc.publisher.Publish(ctx, registered); err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.RegisterCustomerResponse{
		CustomerID:    customer.ID(),
		Name:          customer.FullName(),
		Age:           customer.Age(),
		MonthlyIncome: customer.MonthlySalary(),
		ApprovedLimit: customer.ApprovedLimit(),
		PhoneNumber:   customer.PhoneNumber(),
	}, nil
}
