package usecase

import (
	"context"
	"fmt"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
)

// GetLoanUseCase retrieves a single loan with its owning customer.
type GetLoanUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(customers port.CustomerRepository, loans port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{customers: customers, loans: loans}
}

// Execute fetches the loan view by id.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID int64) (dto.LoanView, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanView{}, fmt.Errorf("find loan: %w", err)
	}

	customer, err := uc.customers.FindByID(ctx, loan.CustomerID())
	if err != nil {
		return dto.LoanView{}, fmt.Errorf("find customer: %w", err)
	}

	return toLoanView(loan, customer), nil
}

func toLoanView(loan model.Loan, customer model.Customer) dto.LoanView {
	return dto.LoanView{
		ID:             loan.ID(),
		ExternalLoanID: loan.ExternalLoanID(),
		Customer: dto.CustomerSummary{
			ID:            customer.ID(),
			FirstName:     customer.FirstName(),
			LastName:      customer.LastName(),
			Age:           customer.Age(),
			PhoneNumber:   customer.PhoneNumber(),
			MonthlySalary: customer.MonthlySalary(),
			ApprovedLimit: customer.ApprovedLimit(),
		},
		LoanAmount:     loan.Amount(),
		Tenure:         loan.Tenure(),
		InterestRate:   loan.InterestRate(),
		MonthlyPayment: loan.MonthlyPayment(),
		RepaymentsLeft: loan.RepaymentsLeft(),
		LoanApproved:   loan.Approved(),
	}
}
