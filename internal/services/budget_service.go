package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
	"budgetdash/internal/uuid"
)

// budgetService handles budget persistence.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// orderedItems preloads items in creation order.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_on").Order("id")
}

// CreateBudget persists a new, empty budget.
func (s *budgetService) CreateBudget(name string, createdOn time.Time) (*models.Budget, error) {
	name, err := models.ValidateName(name)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Name:      name,
		CreatedOn: models.DateOf(createdOn),
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget.Items = []models.BudgetItem{}
	return budget, nil
}

// ListBudgets returns a page of budgets, newest first, with their items loaded.
func (s *budgetService) ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Budget{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	err := s.db.Preload("Items", orderedItems).
		Order("created_on DESC").Order("id").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AllBudgets returns every budget with its items loaded.
func (s *budgetService) AllBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Preload("Items", orderedItems).Order("created_on DESC").Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudget returns a budget by ID with its items loaded.
func (s *budgetService) GetBudget(budgetID string) (*models.Budget, error) {
	if !uuid.IsValid(budgetID) {
		return nil, apperrors.ErrBudgetNotFound
	}

	var budget models.Budget
	if err := s.db.Preload("Items", orderedItems).Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget renames a budget.
func (s *budgetService) UpdateBudget(budgetID, name string) (*models.Budget, error) {
	name, err := models.ValidateName(name)
	if err != nil {
		return nil, err
	}

	budget, err := s.GetBudget(budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(budget).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Name = name
	return budget, nil
}

// DeleteBudget removes a budget and all of its items in one transaction and
// returns the number of rows removed. Nothing is removed if any step fails.
func (s *budgetService) DeleteBudget(budgetID string) (int64, error) {
	if !uuid.IsValid(budgetID) {
		return 0, apperrors.ErrBudgetNotFound
	}

	var removed int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.Select("id").Where("id = ?", budgetID).First(&budget).Error; err != nil {
			return err
		}

		items := tx.Where("budget_id = ?", budgetID).Delete(&models.BudgetItem{})
		if items.Error != nil {
			return items.Error
		}

		result := tx.Delete(&budget)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		removed = items.RowsAffected + result.RowsAffected
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrBudgetNotFound
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return removed, nil
}

// GetSummary aggregates counts and amounts across every budget.
func (s *budgetService) GetSummary() (*BudgetSummary, error) {
	budgets, err := s.AllBudgets()
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{
		BudgetCount:    len(budgets),
		TotalAmount:    models.TotalAcrossBudgets(budgets),
		OptionalAmount: models.OptionalAcrossBudgets(budgets),
	}
	for i := range budgets {
		summary.ItemCount += len(budgets[i].Items)
	}
	return summary, nil
}
