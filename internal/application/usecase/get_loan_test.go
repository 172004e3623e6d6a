package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenbank/credit-approval/internal/application/usecase"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
)

func TestGetLoanUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the loan with its owning customer", func(t *testing.T) {
		customer := testCustomer(t, 7, 100000)
		loan := settledLoan(101, 7, 250000, 24, 20)

		customers := &mockCustomerRepo{findByIDFunc: func(id int64) (model.Customer, error) {
			require.Equal(t, int64(7), id)
			return customer, nil
		}}
		loans := &mockLoanRepo{findByIDFunc: func(id int64) (model.Loan, error) {
			require.Equal(t, int64(101), id)
			return loan, nil
		}}
		uc := usecase.NewGetLoanUseCase(customers, loans)

		view, err := uc.Execute(ctx, 101)
		require.NoError(t, err)

		assert.Equal(t, int64(101), view.ID)
		assert.Equal(t, int64(7), view.Customer.ID)
		assert.Equal(t, "Asha", view.Customer.FirstName)
		assert.True(t, view.LoanAmount.Equal(decimal.NewFromInt(250000)))
		assert.Equal(t, 24, view.Tenure)
	})

	t.Run("propagates a missing loan", func(t *testing.T) {
		uc := usecase.NewGetLoanUseCase(&mockCustomerRepo{}, &mockLoanRepo{})

		_, err := uc.Execute(ctx, 404)
		assert.True(t, errors.Is(err, port.ErrLoanNotFound))
	})
}

func TestListCustomerLoansUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only active loans", func(t *testing.T) {
		customer := testCustomer(t, 7, 100000)
		start := time.Now().UTC().AddDate(-1, 0, 0)
		active := model.ReconstructLoan(1, 7, "", decimal.NewFromInt(300000), 24,
			decimal.NewFromInt(10), decimal.NewFromInt(13843), 12,
			start, start.AddDate(0, 24, 0), true, 12, start)
		settled := settledLoan(2, 7, 100000, 12, 12)

		customers := &mockCustomerRepo{findByIDFunc: func(int64) (model.Customer, error) { return customer, nil }}
		loans := &mockLoanRepo{history: []model.Loan{active, settled}}
		uc := usecase.NewListCustomerLoansUseCase(customers, loans)

		views, err := uc.Execute(ctx, 7)
		require.NoError(t, err)

		require.Len(t, views, 1)
		assert.Equal(t, int64(1), views[0].ID)
		assert.Equal(t, 12, views[0].RepaymentsLeft)
	})

	t.Run("propagates an unknown customer", func(t *testing.T) {
		uc := usecase.NewListCustomerLoansUseCase(&mockCustomerRepo{}, &mockLoanRepo{})

		_, err := uc.Execute(ctx, 99)
		assert.True(t, errors.Is(err, port.ErrCustomerNotFound))
	})
}
