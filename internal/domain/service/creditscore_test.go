package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/service"
)

var scoreToday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func scoreCustomer(t *testing.T, salary int64) model.Customer {
	t.Helper()
	c, err := model.NewCustomer("Asha", "Rao", 31, "9876543210", salary, scoreToday)
	require.NoError(t, err)
	return c.WithID(1)
}

func historyLoan(id int64, amount int64, tenure, emisPaid int, start time.Time) model.Loan {
	a := decimal.NewFromInt(amount)
	rate := decimal.NewFromInt(10)
	return model.ReconstructLoan(id, 1, "", a, tenure, rate,
		model.ComputeEMI(a, rate, tenure), emisPaid, start, start.AddDate(0, tenure, 0),
		true, 0, start)
}

func TestScoreEngineEvaluate(t *testing.T) {
	engine := service.NewScoreEngine()
	oldStart := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no history scores 85", func(t *testing.T) {
		customer := scoreCustomer(t, 100000)
		got := engine.Evaluate(customer, nil, scoreToday)
		assert.Equal(t, 85, got)
	})

	t.Run("exposure over the approved limit zeroes the score", func(t *testing.T) {
		customer := scoreCustomer(t, 1400) // approved limit 100000
		loans := []model.Loan{historyLoan(1, 200000, 12, 12, oldStart)}
		assert.Equal(t, 0, engine.Evaluate(customer, loans, scoreToday))
	})

	t.Run("ten loans zero the count component", func(t *testing.T) {
		customer := scoreCustomer(t, 100000)
		loans := make([]model.Loan, 0, 10)
		for i := int64(1); i <= 10; i++ {
			loans = append(loans, historyLoan(i, 10000, 12, 12, oldStart))
		}
		assert.Equal(t, 65, engine.Evaluate(customer, loans, scoreToday))
	})

	t.Run("on-time ratio is capped at one per loan", func(t *testing.T) {
		customer := scoreCustomer(t, 100000)
		// 15 on-time EMIs against a 10 month tenure still counts as 1.0.
		loans := []model.Loan{historyLoan(1, 10000, 10, 15, oldStart)}
		assert.Equal(t, 83, engine.Evaluate(customer, loans, scoreToday))
	})

	t.Run("three loans started this year max out the activity component", func(t *testing.T) {
		customer := scoreCustomer(t, 100000)
		thisYear := time.Date(scoreToday.Year(), 1, 10, 0, 0, 0, 0, time.UTC)
		loans := []model.Loan{
			historyLoan(1, 100000, 12, 6, thisYear),
			historyLoan(2, 100000, 12, 6, thisYear),
			historyLoan(3, 100000, 12, 6, thisYear),
		}
		assert.Equal(t, 68, engine.Evaluate(customer, loans, scoreToday))
	})

	t.Run("score stays in range for varied histories", func(t *testing.T) {
		customer := scoreCustomer(t, 100000)
		for n := 0; n <= 15; n++ {
			loans := make([]model.Loan, 0, n)
			for i := 0; i < n; i++ {
				loans = append(loans, historyLoan(int64(i+1), 50000, 12, i%13, oldStart))
			}
			got := engine.Evaluate(customer, loans, scoreToday)
			assert.GreaterOrEqual(t, got, 0, "n=%d", n)
			assert.LessOrEqual(t, got, 100, "n=%d", n)
		}
	})

	t.Run("order of loans does not change the score", func(t *testing.T) {
		customer := scoreCustomer(t, 100000)
		a := historyLoan(1, 250000, 24, 20, oldStart)
		b := historyLoan(2, 100000, 12, 3, time.Date(scoreToday.Year(), 3, 1, 0, 0, 0, 0, time.UTC))
		c := historyLoan(3, 50000, 6, 6, oldStart)

		forward := engine.Evaluate(customer, []model.Loan{a, b, c}, scoreToday)
		reversed := engine.Evaluate(customer, []model.Loan{c, b, a}, scoreToday)
		assert.Equal(t, forward, reversed)
	})
}
