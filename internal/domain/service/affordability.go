package service

import (
	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/domain/model"
)

// emiCeilingRatio is the share of monthly salary that all active EMIs
// together may not exceed.
var emiCeilingRatio = decimal.NewFromFloat(0.5)

// AffordabilityGuard verifies that a proposed installment, stacked on top of
// the customer's currently active EMIs, stays within the salary-based ceiling.
// It runs after the eligibility policy and overrides its approval.
type AffordabilityGuard struct{}

// NewAffordabilityGuard returns a new guard instance.
func NewAffordabilityGuard() *AffordabilityGuard {
	return &AffordabilityGuard{}
}

// Check returns true when the proposed EMI is affordable. Only approved loans
// with repayments left count toward the current load; a loan without a
// recorded monthly payment contributes zero.
func (g *AffordabilityGuard) Check(customer model.Customer, proposedEMI decimal.Decimal, loans []model.Loan) bool {
	total := proposedEMI
	for _, l := range loans {
		if l.Approved() && l.RepaymentsLeft() > 0 {
			total = total.Add(l.MonthlyPayment())
		}
	}

	ceiling := decimal.NewFromInt(customer.MonthlySalary()).Mul(emiCeilingRatio)
	return !total.GreaterThan(ceiling)
}
