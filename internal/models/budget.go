package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	apperrors "budgetdash/internal/errors"
)

// MaxNameLength is the maximum number of characters in a budget or item name.
const MaxNameLength = 200

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// maxAmount is the exclusive upper bound of a decimal(18,2) column.
var maxAmount = decimal.New(1, 16)

// Budget is a named collection of estimated expense items created on a given date.
type Budget struct {
	Base
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	CreatedOn time.Time `gorm:"type:date;not null" json:"created_on"`

	// Relationships
	Items []BudgetItem `gorm:"foreignKey:BudgetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// BudgetItem is a single estimated expense owned by a Budget. It refers to its
// budget by ID only.
type BudgetItem struct {
	Base
	BudgetID        string          `gorm:"type:uuid;not null;index" json:"budget_id"`
	Name            string          `gorm:"size:200;not null" json:"name"`
	EstimatedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"estimated_amount"`
	IsOptional      bool            `gorm:"not null;default:false" json:"is_optional"`
	CreatedOn       time.Time       `gorm:"type:date;not null" json:"created_on"`
}

// ValidateName trims name and checks it is non-empty and at most MaxNameLength
// characters. It returns the trimmed name.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidName, "name is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidName, "name must be at most 200 characters")
	}
	return trimmed, nil
}

// ValidateAmount checks that amount is representable as decimal(18,2) without rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must have at most 2 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount is out of range")
	}
	return nil
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}
