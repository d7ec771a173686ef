package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
	"budgetdash/internal/uuid"
)

// itemService handles budget item persistence.
type itemService struct {
	db *gorm.DB
}

// NewBudgetItemService creates a new BudgetItemServicer.
func NewBudgetItemService(db *gorm.DB) BudgetItemServicer {
	return &itemService{db: db}
}

// CreateItem adds an item to an existing budget. The budget check and the
// insert run in the same transaction.
func (s *itemService) CreateItem(
	budgetID, name string,
	estimatedAmount decimal.Decimal,
	isOptional bool,
	createdOn time.Time,
) (*models.BudgetItem, error) {
	name, err := models.ValidateName(name)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateAmount(estimatedAmount); err != nil {
		return nil, err
	}
	if !uuid.IsValid(budgetID) {
		return nil, apperrors.ErrBudgetNotFound
	}

	item := &models.BudgetItem{
		BudgetID:        budgetID,
		Name:            name,
		EstimatedAmount: estimatedAmount,
		IsOptional:      isOptional,
		CreatedOn:       models.DateOf(createdOn),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := tx.Select("id").Where("id = ?", budgetID).First(&budget).Error; err != nil {
			return err
		}
		return tx.Create(item).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetItem returns an item if it belongs to the given budget.
func (s *itemService) GetItem(budgetID, itemID string) (*models.BudgetItem, error) {
	if !uuid.IsValid(budgetID) || !uuid.IsValid(itemID) {
		return nil, apperrors.ErrBudgetItemNotFound
	}

	var item models.BudgetItem
	if err := s.db.Where("id = ? AND budget_id = ?", itemID, budgetID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem applies the non-nil fields of update to an item.
func (s *itemService) UpdateItem(budgetID, itemID string, update ItemUpdate) (*models.BudgetItem, error) {
	updates := make(map[string]interface{})
	if update.Name != nil {
		name, err := models.ValidateName(*update.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if update.EstimatedAmount != nil {
		if err := models.ValidateAmount(*update.EstimatedAmount); err != nil {
			return nil, err
		}
		updates["estimated_amount"] = *update.EstimatedAmount
	}
	if update.IsOptional != nil {
		updates["is_optional"] = *update.IsOptional
	}

	item, err := s.GetItem(budgetID, itemID)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetItem(budgetID, itemID)
}

// DeleteItem removes a single item from its budget.
func (s *itemService) DeleteItem(budgetID, itemID string) error {
	if !uuid.IsValid(budgetID) || !uuid.IsValid(itemID) {
		return apperrors.ErrBudgetItemNotFound
	}

	result := s.db.Where("id = ? AND budget_id = ?", itemID, budgetID).Delete(&models.BudgetItem{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetItemNotFound
	}
	return nil
}
