package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/models"
	"github.com/Sanjeev1695/billing-software/internal/services"
)

// BillHandler handles REST requests for bills.
type BillHandler struct {
	billService services.IBillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.IBillService) *BillHandler {
	return &BillHandler{billService: billService}
}

type createBillRequest struct {
	Items         []models.BillLineItem `json:"items" binding:"required"`
	PricingMode   string                `json:"pricing_mode" binding:"required"`
	TotalAmount   float64               `json:"total_amount"`
	AmountPaid    float64               `json:"amount_paid"`
	BillType      string                `json:"bill_type" binding:"required"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
}

type updateBillRequest struct {
	Items         *[]models.BillLineItem `json:"items"`
	PricingMode   *string                `json:"pricing_mode"`
	TotalAmount   *float64               `json:"total_amount"`
	AmountPaid    *float64               `json:"amount_paid"`
	BillType      *string                `json:"bill_type"`
	CustomerName  *string                `json:"customer_name"`
	CustomerPhone *string                `json:"customer_phone"`
}

// parseDateQuery reads an RFC 3339 or YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		return &t, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
	return nil, false
}

// CreateBill handles POST /api/bills.
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), services.BillCreate{
		Items:         req.Items,
		PricingMode:   req.PricingMode,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		BillType:      req.BillType,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

// ListBills handles GET /api/bills.
func (h *BillHandler) ListBills(c *gin.Context) {
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), services.BillFilter{
		BillType:      c.Query("bill_type"),
		CustomerPhone: c.Query("customer_phone"),
		Search:        c.Query("search"),
		Start:         start,
		End:           end,
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bills"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetBill handles GET /api/bills/:id.
func (h *BillHandler) GetBill(c *gin.Context) {
	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bill"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

// UpdateBill handles PUT /api/bills/:id.
func (h *BillHandler) UpdateBill(c *gin.Context) {
	var req updateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), c.Param("id"), services.BillUpdate{
		Items:         req.Items,
		PricingMode:   req.PricingMode,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		BillType:      req.BillType,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		case errors.Is(err, apperr.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bill"})
		}
		return
	}
	c.JSON(http.StatusOK, bill)
}

// DeleteBill handles DELETE /api/bills/:id.
func (h *BillHandler) DeleteBill(c *gin.Context) {
	err := h.billService.DeleteBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
