package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/domain/event"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
	"github.com/lumenbank/credit-approval/internal/domain/service"
)

// CreateLoanUseCase is the strict loan origination orchestrator: score, tiered
// policy, EMI at the effective rate, affordability guard, then persistence.
type CreateLoanUseCase struct {
	customers   port.CustomerRepository
	loans       port.LoanRepository
	publisher   port.EventPublisher
	scoreEngine *service.ScoreEngine
	policy      *service.Policy
	guard       *service.AffordabilityGuard
	now         func() time.Time
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	publisher port.EventPublisher,
	scoreEngine *service.ScoreEngine,
	policy *service.Policy,
	guard *service.AffordabilityGuard,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		customers:   customers,
		loans:       loans,
		publisher:   publisher,
		scoreEngine: scoreEngine,
		policy:      policy,
		guard:       guard,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute evaluates one loan application end to end and, on approval,
// materializes the loan and bumps the customer's cumulative debt.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.LoanApplicationRequest) (dto.CreateLoanResponse, error) {
	customer, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("find customer: %w", err)
	}

	if err := validateApplication(req); err != nil {
		return dto.CreateLoanResponse{}, err
	}

	history, err := uc.loans.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("load loan history: %w", err)
	}

	today := uc.now()
	score := uc.scoreEngine.Evaluate(customer, history, today)
	decision := uc.policy.Decide(score, req.InterestRate, service.ModeStrict)

	if !decision.Approved {
		return uc.reject(ctx, customer, req, score, decision.Message)
	}

	// EMI is computed at the effective (possibly corrected) rate.
	proposedEMI := model.ComputeEMI(req.LoanAmount, decision.EffectiveRate, req.Tenure)

	// The affordability guard overrides a policy approval.
	if !uc.guard.Check(customer, proposedEMI, history) {
		return uc.reject(ctx, customer, req, score,
			"Loan rejected: Total EMIs would exceed 50% of monthly salary")
	}

	loan, err := model.OriginateLoan(customer.ID(), req.LoanAmount, decision.EffectiveRate, req.Tenure, today)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("originate loan: %w", err)
	}

	loan, err = uc.loans.Create(ctx, loan)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	customer = customer.AddDebt(loan.Amount())
	if err := uc.customers.UpdateDebt(ctx, customer.ID(), customer.CurrentDebt()); err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("update customer debt: %w", err)
	}

	approved := event.NewLoanApproved(
		loan.ID(), customer.ID(), loan.Amount(), loan.InterestRate(), loan.MonthlyPayment(), loan.Tenure(),
	)
	if err := uc.publisher.Publish(ctx, approved); err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	loanID := loan.ID()
	return dto.CreateLoanResponse{
		LoanID:             &loanID,
		CustomerID:         customer.ID(),
		LoanApproved:       true,
		Message:            decision.Message,
		MonthlyInstallment: loan.MonthlyPayment(),
	}, nil
}

// reject records a not-approved evaluation. A rejection is a successful
// outcome, not an error.
func (uc *CreateLoanUseCase) reject(
	ctx context.Context,
	customer model.Customer,
	req dto.LoanApplicationRequest,
	score int,
	message string,
) (dto.CreateLoanResponse, error) {
	rejected := event.NewLoanRejected(customer.ID(), req.LoanAmount, score, message)
	if err := uc.publisher.Publish(ctx, rejected); err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.CreateLoanResponse{
		CustomerID:   customer.ID(),
		LoanApproved: false,
		Message:      message,
	}, nil
}
