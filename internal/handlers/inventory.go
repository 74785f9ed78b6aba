// internal/handlers/inventory.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockflow/stockflow-backend/internal/metrics"
	"github.com/stockflow/stockflow-backend/internal/models"
	"github.com/stockflow/stockflow-backend/internal/store"
	"github.com/stockflow/stockflow-backend/internal/utils"
)

type InventoryHandler struct {
	store *store.Store
}

func NewInventoryHandler(st *store.Store) *InventoryHandler {
	return &InventoryHandler{store: st}
}

type ProductRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	SKU      string  `json:"sku" validate:"required,max=64"`
	Category string  `json:"category" validate:"required,max=100"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	MinLevel int     `json:"minLevel" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type TransactionRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

type AdjustmentRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Notes     string `json:"notes"`
}

// GET /v1/products
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"products": h.store.Products(),
		"mode":     h.store.Mode(),
	})
}

// POST /v1/products
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product := h.store.AddProduct(store.ProductDraft{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Quantity: req.Quantity,
		MinLevel: req.MinLevel,
		Price:    req.Price,
	})

	utils.CreatedResponse(c, gin.H{"product": product})
}

// PUT /v1/products/:id
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	updated := models.Product{
		ID:       c.Param("id"),
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Quantity: req.Quantity,
		MinLevel: req.MinLevel,
		Price:    req.Price,
	}

	if h.store.EditProduct(updated) == store.UnknownProduct {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"product": updated})
}

// DELETE /v1/products/:id
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if h.store.DeleteProduct(id) == store.UnknownProduct {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true, "id": id})
}

// GET /v1/transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	transactions := h.store.Transactions()

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			transactions = metrics.Recent(transactions, limit)
		}
	}

	utils.SuccessResponse(c, gin.H{"transactions": transactions})
}

// POST /v1/transactions
func (h *InventoryHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	tx, outcome := h.store.RecordTransaction(req.ProductID, models.TransactionType(req.Type), req.Quantity, req.Notes)
	switch outcome {
	case store.UnknownProduct:
		utils.NotFoundResponse(c, "Product")
	case store.InsufficientStock:
		utils.ConflictResponse(c, "Not enough stock for this transaction")
	default:
		utils.CreatedResponse(c, gin.H{"transaction": tx})
	}
}

// POST /v1/adjustments
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	tx, outcome := h.store.AdjustStock(req.ProductID, req.Quantity, req.Notes)
	switch outcome {
	case store.UnknownProduct:
		utils.NotFoundResponse(c, "Product")
	case store.InsufficientStock:
		utils.BadRequestResponse(c, "Quantity must not be negative", nil)
	default:
		utils.CreatedResponse(c, gin.H{"transaction": tx})
	}
}

// GET /v1/stats
func (h *InventoryHandler) GetStats(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"stats": metrics.Summarize(h.store.Products(), h.store.Transactions()),
	})
}
