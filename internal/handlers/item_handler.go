package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/services"
)

// BudgetItemHandler handles requests for items inside a budget.
type BudgetItemHandler struct {
	itemService  services.BudgetItemServicer
	auditService services.AuditServicer
}

// NewBudgetItemHandler creates a new BudgetItemHandler.
func NewBudgetItemHandler(itemService services.BudgetItemServicer, auditService services.AuditServicer) *BudgetItemHandler {
	return &BudgetItemHandler{itemService: itemService, auditService: auditService}
}

// CreateItemRequest represents the request payload for adding an item.
// estimated_amount accepts a JSON number or string and is parsed exactly.
type CreateItemRequest struct {
	Name            string           `json:"name" binding:"required,not_blank"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount" binding:"required,money" swaggertype:"string" example:"15.99"`
	IsOptional      bool             `json:"is_optional"`
	CreatedOn       string           `json:"created_on" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateItemRequest represents the request payload for editing an item.
type UpdateItemRequest struct {
	Name            *string          `json:"name"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount" binding:"omitempty,money" swaggertype:"string" example:"17.49"`
	IsOptional      *bool            `json:"is_optional"`
}

// CreateItem handles adding an item to a budget.
// @Summary     Add a budget item
// @Description Add an item with an estimated amount to an existing budget
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       id      path string            true "Budget ID"
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} BudgetItemResponse "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/items [post]
func (h *BudgetItemHandler) CreateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	createdOn, err := parseCreatedOn(req.CreatedOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.CreateItem(budgetID, req.Name, *req.EstimatedAmount, req.IsOptional, createdOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET_ITEM", "budget_item", item.ID, c.ClientIP(),
		map[string]interface{}{
			"budget_id":        budgetID,
			"name":             item.Name,
			"estimated_amount": item.EstimatedAmount.StringFixed(2),
			"is_optional":      item.IsOptional,
		})

	c.JSON(http.StatusCreated, gin.H{"item": newItemResponse(item)})
}

// GetItem handles retrieving a single item.
// @Summary     Get budget item
// @Description Get an item of a budget
// @Tags        items
// @Produce     json
// @Security    SessionCookie
// @Param       id     path string true "Budget ID"
// @Param       itemId path string true "Item ID"
// @Success     200 {object} BudgetItemResponse "Item details"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/items/{itemId} [get]
func (h *BudgetItemHandler) GetItem(c *gin.Context) {
	budgetID, itemID, err := parseItemPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.GetItem(budgetID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": newItemResponse(item)})
}

// UpdateItem handles editing an item.
// @Summary     Update budget item
// @Description Change the name, estimated amount or optional flag of an item
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       id      path string            true "Budget ID"
// @Param       itemId  path string            true "Item ID"
// @Param       request body UpdateItemRequest true "Fields to change"
// @Success     200 {object} BudgetItemResponse "Item updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/items/{itemId} [put]
func (h *BudgetItemHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, itemID, err := parseItemPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.UpdateItem(budgetID, itemID, services.ItemUpdate{
		Name:            req.Name,
		EstimatedAmount: req.EstimatedAmount,
		IsOptional:      req.IsOptional,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := make(map[string]interface{})
	if req.Name != nil {
		changes["name"] = item.Name
	}
	if req.EstimatedAmount != nil {
		changes["estimated_amount"] = item.EstimatedAmount.StringFixed(2)
	}
	if req.IsOptional != nil {
		changes["is_optional"] = item.IsOptional
	}
	h.auditService.Log(userID, "UPDATE_BUDGET_ITEM", "budget_item", itemID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"item": newItemResponse(item)})
}

// DeleteItem handles removing an item from its budget.
// @Summary     Delete budget item
// @Description Remove a single item from a budget
// @Tags        items
// @Produce     json
// @Security    SessionCookie
// @Param       id     path string true "Budget ID"
// @Param       itemId path string true "Item ID"
// @Success     200 {object} MessageResponse "Item deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/items/{itemId} [delete]
func (h *BudgetItemHandler) DeleteItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, itemID, err := parseItemPath(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(budgetID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET_ITEM", "budget_item", itemID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID})

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget item deleted successfully"})
}

func parseItemPath(c *gin.Context) (budgetID, itemID string, err error) {
	if budgetID, err = parsePathID(c, "id"); err != nil {
		return "", "", err
	}
	if itemID, err = parsePathID(c, "itemId"); err != nil {
		return "", "", err
	}
	return budgetID, itemID, nil
}
