package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetdash/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users created by CreateTestUser.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates an empty budget dated today.
func CreateTestBudget(t *testing.T, db *gorm.DB) *models.Budget {
	t.Helper()
	return CreateTestBudgetOn(t, db, models.DateOf(time.Now()))
}

// CreateTestBudgetOn creates an empty budget with the given creation date.
func CreateTestBudgetOn(t *testing.T, db *gorm.DB, createdOn time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:      fmt.Sprintf("Test Budget %d", nextID()),
		CreatedOn: models.DateOf(createdOn),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestItem adds an item with the given amount to a budget.
func CreateTestItem(t *testing.T, db *gorm.DB, budgetID, amount string, isOptional bool) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		BudgetID:        budgetID,
		Name:            fmt.Sprintf("Test Item %d", nextID()),
		EstimatedAmount: decimal.RequireFromString(amount),
		IsOptional:      isOptional,
		CreatedOn:       models.DateOf(time.Now()),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}
