package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/application/usecase"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
	"github.com/lumenbank/credit-approval/internal/domain/service"
)

func newCheckEligibilityUC(customers *mockCustomerRepo, loans *mockLoanRepo, publisher *mockPublisher) *usecase.CheckEligibilityUseCase {
	return usecase.NewCheckEligibilityUseCase(
		customers, loans, publisher,
		service.NewScoreEngine(), service.NewPolicy(),
	)
}

func TestCheckEligibilityUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("approves a first-time borrower and persists a pre-approval", func(t *testing.T) {
		customer := testCustomer(t, 1, 100000)
		customers := &mockCustomerRepo{findByIDFunc: func(int64) (model.Customer, error) { return customer, nil }}
		loans := &mockLoanRepo{}
		publisher := &mockPublisher{}
		uc := newCheckEligibilityUC(customers, loans, publisher)

		resp, err := uc.Execute(ctx, dto.LoanApplicationRequest{
			CustomerID:   1,
			LoanAmount:   decimal.NewFromInt(200000),
			InterestRate: decimal.NewFromInt(12),
			Tenure:       18,
		})
		require.NoError(t, err)

		assert.True(t, resp.LoanApproved)
		assert.Equal(t, 85, resp.CreditScore)
		assert.True(t, resp.InterestRate.Equal(decimal.NewFromInt(12)))
		require.NotNil(t, resp.LoanID)
		require.NotNil(t, resp.MonthlyInstallment)
		assert.True(t, resp.MonthlyInstallment.Equal(decimal.RequireFromString("12196.41")),
			"got %s", resp.MonthlyInstallment)

		// Pre-approval carries no schedule dates and never touches debt.
		require.Len(t, loans.created, 1)
		assert.True(t, loans.created[0].StartDate().IsZero())
		assert.True(t, loans.created[0].EndDate().IsZero())
		assert.Empty(t, customers.debtUpdates)
	})

	t.Run("keeps the requested rate in the mid band when it clears twelve", func(t *testing.T) {
		customer := testCustomer(t, 1, 100000)
		// Five half-paid loans land the score in the 30-50 band.
		history := make([]model.Loan, 0, 5)
		for i := int64(1); i <= 5; i++ {
			history = append(history, settledLoan(i, 1, 500000, 12, 6))
		}
		customers := &mockCustomerRepo{findByIDFunc: func(int64) (model.Customer, error) { return customer, nil }}
		loans := &mockLoanRepo{history: history}
		publisher := &mockPublisher{}
		uc := newCheckEligibilityUC(customers, loans, publisher)

		resp, err := uc.Execute(ctx, dto.LoanApplicationRequest{
			CustomerID:   1,
			LoanAmount:   decimal.NewFromInt(100000),
			InterestRate: decimal.NewFromInt(13),
			Tenure:       12,
		})
		require.NoError(t, err)

		assert.True(t, resp.LoanApproved)
		assert.Equal(t, 40, resp.CreditScore)
		assert.True(t, resp.InterestRate.Equal(decimal.NewFromInt(13)))
		require.Len(t, loans.created, 1)
		assert.True(t, loans.created[0].InterestRate().Equal(decimal.NewFromInt(13)))
	})

	t.Run("rejects the mid band at twelve percent without correcting", func(t *testing.T) {
		customer := testCustomer(t, 1, 100000)
		history := make([]model.Loan, 0, 5)
		for i := int64(1); i <= 5; i++ {
			history = append(history, settledLoan(i, 1, 500000, 12, 6))
		}
		customers := &mockCustomerRepo{findByIDFunc: func(int64) (model.Customer, error) { return customer, nil }}
		loans := &mockLoanRepo{history: history}
		publisher := &mockPublisher{}
		uc := newCheckEligibilityUC(customers, loans, publisher)

		resp, err := uc.Execute(ctx, dto.LoanApplicationRequest{
			CustomerID:   1,
			LoanAmount:   decimal.NewFromInt(100000),
			InterestRate: decimal.NewFromInt(12),
			Tenure:       12,
		})
		require.NoError(t, err)

		assert.False(t, resp.LoanApproved)
		assert.Equal(t, "Loan not approved due to low credit score", resp.Message)
		assert.Equal(t, 40, resp.CreditScore)
		assert.Nil(t, resp.LoanID)
		assert.Nil(t, resp.MonthlyInstallment)
		assert.Empty(t, loans.created)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, "credit.loan.rejected", publisher.events[0].EventType())
	})

	t.Run("surfaces a validation error before scoring", func(t *testing.T) {
		customer := testCustomer(t, 1, 100000)
		customers := &mockCustomerRepo{findByIDFunc: func(int64) (model.Customer, error) { return customer, nil }}
		publisher := &mockPublisher{}
		uc := newCheckEligibilityUC(customers, &mockLoanRepo{}, publisher)

		_, err := uc.Execute(ctx, dto.LoanApplicationRequest{
			CustomerID:   1,
			LoanAmount:   decimal.NewFromInt(100000),
			InterestRate: decimal.NewFromInt(10),
			Tenure:       0,
		})

		var vErr usecase.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Tenure must be greater than 0 months", vErr.Message)
		assert.Empty(t, publisher.events)
	})

	t.Run("propagates an unknown customer", func(t *testing.T) {
		uc := newCheckEligibilityUC(&mockCustomerRepo{}, &mockLoanRepo{}, &mockPublisher{})

		_, err := uc.Execute(ctx, dto.LoanApplicationRequest{
			CustomerID:   42,
			LoanAmount:   decimal.NewFromInt(100000),
			InterestRate: decimal.NewFromInt(10),
			Tenure:       12,
		})
		assert.True(t, errors.Is(err, port.ErrCustomerNotFound))
	})
}
