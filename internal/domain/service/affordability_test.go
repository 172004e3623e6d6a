package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/service"
)

func activeLoan(id int64, payment int64, repaymentsLeft int, approved bool) model.Loan {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.ReconstructLoan(id, 1, "", decimal.NewFromInt(300000), 24,
		decimal.NewFromInt(10), decimal.NewFromInt(payment), 5,
		start, start.AddDate(0, 24, 0), approved, repaymentsLeft, start)
}

func TestAffordabilityGuardCheck(t *testing.T) {
	guard := service.NewAffordabilityGuard()
	customer := scoreCustomer(t, 100000) // ceiling 50000

	t.Run("hitting the ceiling exactly is still affordable", func(t *testing.T) {
		loans := []model.Loan{activeLoan(1, 30000, 5, true)}
		ok := guard.Check(customer, decimal.NewFromInt(20000), loans)
		assert.True(t, ok)
	})

	t.Run("one paisa over the ceiling is not", func(t *testing.T) {
		loans := []model.Loan{activeLoan(1, 30000, 5, true)}
		ok := guard.Check(customer, decimal.NewFromFloat(20000.01), loans)
		assert.False(t, ok)
	})

	t.Run("fully repaid loans do not count", func(t *testing.T) {
		loans := []model.Loan{
			activeLoan(1, 30000, 0, true),
			activeLoan(2, 10000, 3, true),
		}
		ok := guard.Check(customer, decimal.NewFromInt(35000), loans)
		assert.True(t, ok)
	})

	t.Run("unapproved loans do not count", func(t *testing.T) {
		loans := []model.Loan{activeLoan(1, 30000, 5, false)}
		ok := guard.Check(customer, decimal.NewFromInt(45000), loans)
		assert.True(t, ok)
	})

	t.Run("no history means only the proposed EMI matters", func(t *testing.T) {
		assert.True(t, guard.Check(customer, decimal.NewFromInt(50000), nil))
		assert.False(t, guard.Check(customer, decimal.NewFromInt(50001), nil))
	})
}
