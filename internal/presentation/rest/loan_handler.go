package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/application/usecase"
	"github.com/lumenbank/credit-approval/internal/domain/port"
	"github.com/lumenbank/credit-approval/pkg/observability"
)

// LoanHandler serves the decision entry points and the loan views.
type LoanHandler struct {
	createLoan       *usecase.CreateLoanUseCase
	checkEligibility *usecase.CheckEligibilityUseCase
	getLoan          *usecase.GetLoanUseCase
	listLoans        *usecase.ListCustomerLoansUseCase
	metrics          *observability.Metrics
}

// NewLoanHandler creates the handler. metrics may be nil.
func NewLoanHandler(
	createLoan *usecase.CreateLoanUseCase,
	checkEligibility *usecase.CheckEligibilityUseCase,
	getLoan *usecase.GetLoanUseCase,
	listLoans *usecase.ListCustomerLoansUseCase,
	metrics *observability.Metrics,
) *LoanHandler {
	return &LoanHandler{
		createLoan:       createLoan,
		checkEligibility: checkEligibility,
		getLoan:          getLoan,
		listLoans:        listLoans,
		metrics:          metrics,
	}
}

// CreateLoan handles POST /create-loan: the strict origination path.
// 201 when a loan was created, 200 when the evaluation rejected, 400 on bad
// fields, 404 for an unknown customer.
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req dto.LoanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.createLoan.Execute(c.Request.Context(), req)
	if err != nil {
		h.writeDecisionError(c, req.CustomerID, err)
		return
	}

	h.countDecision("create-loan", resp.LoanApproved)
	if resp.LoanApproved {
		c.JSON(http.StatusCreated, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckEligibility handles POST /check-eligibility: the legacy decision path.
func (h *LoanHandler) CheckEligibility(c *gin.Context) {
	var req dto.LoanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.checkEligibility.Execute(c.Request.Context(), req)
	if err != nil {
		h.writeDecisionError(c, req.CustomerID, err)
		return
	}

	h.countDecision("check-eligibility", resp.LoanApproved)
	c.JSON(http.StatusOK, resp)
}

// GetLoan handles GET /view-loan/:loan_id.
func (h *LoanHandler) GetLoan(c *gin.Context) {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loan id"})
		return
	}

	view, err := h.getLoan.Execute(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, port.ErrLoanNotFound) || errors.Is(err, port.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "loan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch loan"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListCustomerLoans handles GET /view-loans/:customer_id.
func (h *LoanHandler) ListCustomerLoans(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	views, err := h.listLoans.Execute(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, port.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch loans"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// writeDecisionError renders validation and lookup failures in the decision
// payload shape so rejected-by-validation responses mirror policy rejections.
func (h *LoanHandler) writeDecisionError(c *gin.Context, customerID int64, err error) {
	var verr usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.CreateLoanResponse{
			CustomerID:         customerID,
			LoanApproved:       false,
			Message:            verr.Message,
			MonthlyInstallment: decimal.Zero,
		})
	case errors.Is(err, port.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decision evaluation failed"})
	}
}

func (h *LoanHandler) countDecision(operation string, approved bool) {
	if h.metrics == nil {
		return
	}
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	h.metrics.LoanDecisions.WithLabelValues(operation, outcome).Inc()
}
