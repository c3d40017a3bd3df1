package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/services"
)

// ItemHandler handles REST requests for the item catalog.
type ItemHandler struct {
	itemService services.IItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.IItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type createItemRequest struct {
	Name           string  `json:"name" binding:"required"`
	CostPrice      float64 `json:"cost_price"`
	CustomerPrice  float64 `json:"customer_price"`
	CarpenterPrice float64 `json:"carpenter_price"`
}

type updateItemRequest struct {
	Name           *string  `json:"name"`
	CostPrice      *float64 `json:"cost_price"`
	CustomerPrice  *float64 `json:"customer_price"`
	CarpenterPrice *float64 `json:"carpenter_price"`
}

// CreateItem handles POST /api/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), services.ItemCreate{
		Name:           req.Name,
		CostPrice:      req.CostPrice,
		CustomerPrice:  req.CustomerPrice,
		CarpenterPrice: req.CarpenterPrice,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// ListItems handles GET /api/items.
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// SearchItems handles GET /api/items/search/:query.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.itemService.SearchItems(c.Request.Context(), c.Param("query"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateItem handles PUT /api/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), services.ItemUpdate{
		Name:           req.Name,
		CostPrice:      req.CostPrice,
		CustomerPrice:  req.CustomerPrice,
		CarpenterPrice: req.CarpenterPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, apperr.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/:id.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
