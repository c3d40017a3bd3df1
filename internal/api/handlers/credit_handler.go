package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/services"
)

// CreditHandler handles REST requests for the credit ledger.
type CreditHandler struct {
	creditService services.ICreditService
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(creditService services.ICreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

type applyPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Notes  string  `json:"notes"`
}

// ApplyPayment handles POST /api/bills/:id/payments.
func (h *CreditHandler) ApplyPayment(c *gin.Context) {
	var req applyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payment, err := h.creditService.ApplyPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		case errors.Is(err, apperr.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperr.ErrInvalidOperation):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply payment"})
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// ListCreditCustomers handles GET /api/credit/customers.
func (h *CreditHandler) ListCreditCustomers(c *gin.Context) {
	customers, err := h.creditService.ListCreditCustomers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credit customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// ListPayments handles GET /api/credit/customers/:phone/payments.
func (h *CreditHandler) ListPayments(c *gin.Context) {
	payments, err := h.creditService.ListPayments(c.Request.Context(), c.Param("phone"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
