package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumenbank/credit-approval/internal/application/dto"
	"github.com/lumenbank/credit-approval/internal/application/usecase"
)

// CustomerHandler serves customer registration.
type CustomerHandler struct {
	register *usecase.RegisterCustomerUseCase
}

// NewCustomerHandler creates the handler.
func NewCustomerHandler(register *usecase.RegisterCustomerUseCase) *CustomerHandler {
	return &CustomerHandler{register: register}
}

// Register handles POST /register.
func (h *CustomerHandler) Register(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		var verr usecase.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}
