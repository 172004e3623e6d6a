package dto

import (
	"github.com/shopspring/decimal"
)

// RegisterCustomerRequest is the input for customer registration.
type RegisterCustomerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Age           int    `json:"age"`
	PhoneNumber   string `json:"phone_number"`
	MonthlyIncome int64  `json:"monthly_income"`
}

// RegisterCustomerResponse echoes the created customer with its derived limit.
type RegisterCustomerResponse struct {
	CustomerID    int64  `json:"customer_id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	MonthlyIncome int64  `json:"monthly_income"`
	ApprovedLimit int64  `json:"approved_limit"`
	PhoneNumber   string `json:"phone_number"`
}

// LoanApplicationRequest is the shared input for both decision entry points.
type LoanApplicationRequest struct {
	CustomerID   int64           `json:"customer_id"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Tenure       int             `json:"tenure"`
}

// CreateLoanResponse is the decision record for the strict create-loan path.
type CreateLoanResponse struct {
	LoanID             *int64          `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	LoanApproved       bool            `json:"loan_approved"`
	Message            string          `json:"message"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

// CheckEligibilityResponse is the decision record for the legacy eligibility
// path; it additionally exposes the credit score and the requested rate.
type CheckEligibilityResponse struct {
	LoanID             *int64           `json:"loan_id"`
	CustomerID         int64            `json:"customer_id"`
	LoanApproved       bool             `json:"loan_approved"`
	InterestRate       decimal.Decimal  `json:"interest_rate"`
	Message            string           `json:"message"`
	CreditScore        int              `json:"credit_score"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment"`
}

// CustomerSummary is the customer slice embedded in loan views.
type CustomerSummary struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Age           int    `json:"age"`
	PhoneNumber   string `json:"phone_number"`
	MonthlySalary int64  `json:"monthly_salary"`
	ApprovedLimit int64  `json:"approved_limit"`
}

// LoanView is the read model for the view-loan endpoints.
type LoanView struct {
	ID             int64           `json:"id"`
	ExternalLoanID string          `json:"external_loan_id,omitempty"`
	Customer       CustomerSummary `json:"customer"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	Tenure         int             `json:"tenure"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	RepaymentsLeft int             `json:"repayments_left"`
	LoanApproved   bool            `json:"loan_approved"`
}
