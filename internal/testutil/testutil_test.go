package testutil_test

import (
	stderrors "errors"
	"testing"

	"budgetdash/internal/errors"
	"budgetdash/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "budgets", "budget_items", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestBudget(t, first)
	if n := testutil.CountRows(t, second, "budgets"); n != 0 {
		t.Errorf("expected databases to be isolated, found %d budgets", n)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	budget := testutil.CreateTestBudget(t, db)
	if budget.ID == "" || budget.CreatedOn.IsZero() {
		t.Fatalf("unexpected budget: %+v", budget)
	}

	item := testutil.CreateTestItem(t, db, budget.ID, "15.99", true)
	if item.BudgetID != budget.ID || !item.IsOptional {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.EstimatedAmount.String() != "15.99" {
		t.Errorf("expected amount 15.99, got %s", item.EstimatedAmount)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budget := testutil.CreateTestBudget(t, db)
	testutil.CreateTestItem(t, db, budget.ID, "10.00", false)

	if err := db.Exec("DELETE FROM budgets WHERE id = ?", budget.ID).Error; err != nil {
		t.Fatalf("delete budget: %v", err)
	}
	if n := testutil.CountRows(t, db, "budget_items"); n != 0 {
		t.Errorf("expected items to cascade, %d left", n)
	}
}

func TestSetupTestDBStoresAmountsAsText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	budget := testutil.CreateTestBudget(t, db)
	item := testutil.CreateTestItem(t, db, budget.ID, "99999999999999.99", false)

	var kind string
	db.Raw("SELECT typeof(estimated_amount) FROM budget_items WHERE id = ?", item.ID).Scan(&kind)
	if kind != "text" {
		t.Errorf("expected amounts stored as text, got %s", kind)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	appErr := testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	if appErr.Message != "custom message" {
		t.Errorf("expected the custom message back, got %q", appErr.Message)
	}
}

func TestAssertAppErrorKind(t *testing.T) {
	testutil.AssertAppErrorKind(t, errors.Wrap(errors.ErrInternalServer, stderrors.New("disk full")), errors.KindInternal)
	testutil.AssertAppErrorKind(t, errors.ErrPasswordTooShort, errors.KindValidation)
	testutil.AssertAppErrorKind(t, errors.ErrBudgetItemNotFound, errors.KindNotFound)
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
