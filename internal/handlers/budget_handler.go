package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
	"budgetdash/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Name      string `json:"name" binding:"required,not_blank"`
	CreatedOn string `json:"created_on" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateBudgetRequest represents the request payload for renaming a budget.
type UpdateBudgetRequest struct {
	Name string `json:"name" binding:"required,not_blank"`
}

// BudgetItemResponse is the wire form of a budget item.
type BudgetItemResponse struct {
	ID              string `json:"id"`
	BudgetID        string `json:"budget_id"`
	Name            string `json:"name"`
	EstimatedAmount string `json:"estimated_amount" example:"15.99"`
	IsOptional      bool   `json:"is_optional"`
	CreatedOn       string `json:"created_on" example:"2024-05-01"`
}

// BudgetResponse is the wire form of a budget with its items and totals.
type BudgetResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	CreatedOn      string               `json:"created_on" example:"2024-05-01"`
	Items          []BudgetItemResponse `json:"items"`
	TotalAmount    string               `json:"total_amount" example:"1215.99"`
	OptionalAmount string               `json:"optional_amount" example:"15.99"`
	RequiredAmount string               `json:"required_amount" example:"1200.00"`
}

// DashboardResponse summarises every budget.
type DashboardResponse struct {
	BudgetCount    int    `json:"budget_count"`
	ItemCount      int    `json:"item_count"`
	TotalAmount    string `json:"total_amount" example:"1255.89"`
	OptionalAmount string `json:"optional_amount" example:"55.89"`
	RequiredAmount string `json:"required_amount" example:"1200.00"`
}

// DeleteBudgetResponse reports how many rows a cascade delete removed.
type DeleteBudgetResponse struct {
	Message     string `json:"message"`
	RowsRemoved int64  `json:"rows_removed"`
}

func newItemResponse(item *models.BudgetItem) BudgetItemResponse {
	return BudgetItemResponse{
		ID:              item.ID,
		BudgetID:        item.BudgetID,
		Name:            item.Name,
		EstimatedAmount: item.EstimatedAmount.StringFixed(2),
		IsOptional:      item.IsOptional,
		CreatedOn:       item.CreatedOn.Format(models.DateLayout),
	}
}

func newBudgetResponse(budget models.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, 0, len(budget.Items))
	for i := range budget.Items {
		items = append(items, newItemResponse(&budget.Items[i]))
	}
	return BudgetResponse{
		ID:             budget.ID,
		Name:           budget.Name,
		CreatedOn:      budget.CreatedOn.Format(models.DateLayout),
		Items:          items,
		TotalAmount:    budget.TotalAmount().StringFixed(2),
		OptionalAmount: budget.OptionalAmount().StringFixed(2),
		RequiredAmount: budget.RequiredAmount().StringFixed(2),
	}
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a new, empty budget. created_on defaults to today.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} BudgetResponse "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	createdOn, err := parseCreatedOn(req.CreatedOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(req.Name, createdOn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name, "created_on": budget.CreatedOn.Format(models.DateLayout)})

	c.JSON(http.StatusCreated, gin.H{"budget": newBudgetResponse(*budget)})
}

// GetBudgets handles listing budgets.
// @Summary     Get budgets
// @Description Get a paginated list of budgets, newest first, with items and totals
// @Tags        budgets
// @Produce     json
// @Security    SessionCookie
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[BudgetResponse] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.ListBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Map(*result, newBudgetResponse))
}

// GetBudget handles retrieving a single budget.
// @Summary     Get budget by ID
// @Description Get a budget with its items and totals
// @Tags        budgets
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Budget ID"
// @Success     200 {object} BudgetResponse "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": newBudgetResponse(*budget)})
}

// UpdateBudget handles renaming a budget.
// @Summary     Update a budget
// @Description Rename an existing budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "New name"
// @Success     200 {object} BudgetResponse "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
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

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name})

	c.JSON(http.StatusOK, gin.H{"budget": newBudgetResponse(*budget)})
}

// DeleteBudget handles deleting a budget together with its items.
// @Summary     Delete a budget
// @Description Delete a budget and all of its items in one transaction
// @Tags        budgets
// @Produce     json
// @Security    SessionCookie
// @Param       id path string true "Budget ID"
// @Success     200 {object} DeleteBudgetResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
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

	removed, err := h.budgetService.DeleteBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"rows_removed": removed})

	c.JSON(http.StatusOK, DeleteBudgetResponse{Message: "Budget deleted successfully", RowsRemoved: removed})
}

// GetDashboard handles the summary across all budgets.
// @Summary     Dashboard summary
// @Description Budget and item counts with total and optional amounts across all budgets
// @Tags        budgets
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} DashboardResponse "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *BudgetHandler) GetDashboard(c *gin.Context) {
	summary, err := h.budgetService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		BudgetCount:    summary.BudgetCount,
		ItemCount:      summary.ItemCount,
		TotalAmount:    summary.TotalAmount.StringFixed(2),
		OptionalAmount: summary.OptionalAmount.StringFixed(2),
		RequiredAmount: summary.TotalAmount.Sub(summary.OptionalAmount).StringFixed(2),
	})
}
