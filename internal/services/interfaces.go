package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
)

// IdentityServicer defines the contract for registration and sign-in.
type IdentityServicer interface {
	Register(email, password, confirmPassword string) (*models.User, error)
	SignIn(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// BudgetSummary aggregates every budget for the dashboard.
type BudgetSummary struct {
	BudgetCount    int
	ItemCount      int
	TotalAmount    decimal.Decimal
	OptionalAmount decimal.Decimal
}

// BudgetServicer defines the contract for budget persistence.
type BudgetServicer interface {
	CreateBudget(name string, createdOn time.Time) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	AllBudgets() ([]models.Budget, error)
	GetBudget(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID, name string) (*models.Budget, error)
	DeleteBudget(budgetID string) (int64, error)
	GetSummary() (*BudgetSummary, error)
}

// ItemUpdate holds the optional fields of an item edit. Nil fields are left unchanged.
type ItemUpdate struct {
	Name            *string
	EstimatedAmount *decimal.Decimal
	IsOptional      *bool
}

// BudgetItemServicer defines the contract for budget item persistence. Items
// are always addressed through their owning budget.
type BudgetItemServicer interface {
	CreateItem(budgetID, name string, estimatedAmount decimal.Decimal, isOptional bool, createdOn time.Time) (*models.BudgetItem, error)
	GetItem(budgetID, itemID string) (*models.BudgetItem, error)
	UpdateItem(budgetID, itemID string, update ItemUpdate) (*models.BudgetItem, error)
	DeleteItem(budgetID, itemID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
