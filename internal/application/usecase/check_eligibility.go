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

// CheckEligibilityUseCase is the legacy, less strict decision entry point. It
// evaluates only the two outer score bands, never corrects the requested rate,
// and skips the affordability guard. An approval still persists a loan, but
// without schedule dates and without touching the customer's debt — a lighter
// pre-approval contract kept distinct from the strict path on purpose.
type CheckEligibilityUseCase struct {
	customers   port.CustomerRepository
	loans       port.LoanRepository
	publisher   port.EventPublisher
	scoreEngine *service.ScoreEngine
	policy      *service.Policy
	now         func() time.Time
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	publisher port.EventPublisher,
	scoreEngine *service.ScoreEngine,
	policy *service.Policy,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		customers:   customers,
		loans:       loans,
		publisher:   publisher,
		scoreEngine: scoreEngine,
		policy:      policy,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute evaluates eligibility and persists a pre-approved loan on success.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, req dto.LoanApplicationRequest) (dto.CheckEligibilityResponse, error) {
	customer, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CheckEligibilityResponse{}, fmt.Errorf("find customer: %w", err)
	}

	if err := validateApplication(req); err != nil {
		return dto.CheckEligibilityResponse{}, err
	}

	history, err := uc.loans.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return dto.CheckEligibilityResponse{}, fmt.Errorf("load loan history: %w", err)
	}

	today := uc.now()
	score := uc.scoreEngine.Evaluate(customer, history, today)
	decision := uc.policy.Decide(score, req.InterestRate, service.ModeLegacy)

	resp := dto.CheckEligibilityResponse{
		CustomerID:   customer.ID(),
		LoanApproved: decision.Approved,
		InterestRate: req.InterestRate,
		Message:      decision.Message,
		CreditScore:  score,
	}

	if !decision.Approved {
		rejected := event.NewLoanRejected(customer.ID(), req.LoanAmount, score, decision.Message)
		if err := uc.publisher.Publish(ctx, rejected); err != nil {
			return dto.CheckEligibilityResponse{}, fmt.Errorf("publish events: %w", err)
		}
		return resp, nil
	}

	loan, err := model.PreApproveLoan(customer.ID(), req.LoanAmount, req.InterestRate, req.Tenure, today)
	if err != nil {
		return dto.CheckEligibilityResponse{}, fmt.Errorf("pre-approve loan: %w", err)
	}

	loan, err = uc.loans.Create(ctx, loan)
	if err != nil {
		return dto.CheckEligibilityResponse{}, fmt.Errorf("save loan: %w", err)
	}

	approved := event.NewLoanApproved(
		loan.ID(), customer.ID(), loan.Amount(), loan.InterestRate(), loan.MonthlyPayment(), loan.Tenure(),
	)
	if err := uc.publisher.Publish(ctx, approved); err != nil {
		return dto.CheckEligibilityResponse{}, fmt.Errorf("publish events: %w", err)
	}

	loanID := loan.ID()
	installment := loan.MonthlyPayment()
	resp.LoanID = &loanID
	resp.MonthlyInstallment = &installment
	return resp, nil
}
