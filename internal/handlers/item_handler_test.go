package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
	"budgetdash/internal/services"
)

// --- mock item service ---

type mockItemService struct {
	createItemFn func(budgetID, name string, estimatedAmount decimal.Decimal, isOptional bool, createdOn time.Time) (*models.BudgetItem, error)
	getItemFn    func(budgetID, itemID string) (*models.BudgetItem, error)
	updateItemFn func(budgetID, itemID string, update services.ItemUpdate) (*models.BudgetItem, error)
	deleteItemFn func(budgetID, itemID string) error
}

func (m *mockItemService) CreateItem(budgetID, name string, estimatedAmount decimal.Decimal, isOptional bool, createdOn time.Time) (*models.BudgetItem, error) {
	if m.createItemFn != nil {
		return m.createItemFn(budgetID, name, estimatedAmount, isOptional, createdOn)
	}
	return &models.BudgetItem{}, nil
}

func (m *mockItemService) GetItem(budgetID, itemID string) (*models.BudgetItem, error) {
	if m.getItemFn != nil {
		return m.getItemFn(budgetID, itemID)
	}
	return &models.BudgetItem{}, nil
}

func (m *mockItemService) UpdateItem(budgetID, itemID string, update services.ItemUpdate) (*models.BudgetItem, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(budgetID, itemID, update)
	}
	return &models.BudgetItem{}, nil
}

func (m *mockItemService) DeleteItem(budgetID, itemID string) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(budgetID, itemID)
	}
	return nil
}

var _ services.BudgetItemServicer = (*mockItemService)(nil)

func setupItemRouter(handler *BudgetItemHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/budgets/:id/items", handler.CreateItem)
	auth.GET("/budgets/:id/items/:itemId", handler.GetItem)
	auth.PUT("/budgets/:id/items/:itemId", handler.UpdateItem)
	auth.DELETE("/budgets/:id/items/:itemId", handler.DeleteItem)
	return r
}

func echoItem(budgetID, name string, amount decimal.Decimal, isOptional bool, createdOn time.Time) (*models.BudgetItem, error) {
	return &models.BudgetItem{
		Base:            models.Base{ID: testItemID},
		BudgetID:        budgetID,
		Name:            name,
		EstimatedAmount: amount,
		IsOptional:      isOptional,
		CreatedOn:       createdOn,
	}, nil
}

func TestBudgetItemHandler_CreateItem(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotAmount decimal.Decimal
		svc := &mockItemService{
			createItemFn: func(budgetID, name string, amount decimal.Decimal, isOptional bool, createdOn time.Time) (*models.BudgetItem, error) {
				gotAmount = amount
				return echoItem(budgetID, name, amount, isOptional, createdOn)
			},
		}
		audit := &mockAuditService{}
		handler := NewBudgetItemHandler(svc, audit)
		r := setupItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/items",
			`{"name":"Netflix","estimated_amount":15.99,"is_optional":true,"created_on":"2024-05-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.RequireFromString("15.99")) {
			t.Errorf("expected exact amount 15.99, got %s", gotAmount)
		}
		item := parseJSON(t, rec)["item"].(map[string]interface{})
		if item["budget_id"] != testBudgetID || item["estimated_amount"] != "15.99" || item["is_optional"] != true {
			t.Errorf("unexpected item: %v", item)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_BUDGET_ITEM" {
			t.Errorf("expected CREATE_BUDGET_ITEM audit entry, got %+v", audit.entries)
		}
	})

	t.Run("leaves name length to the service after trimming", func(t *testing.T) {
		var gotName string
		svc := &mockItemService{
			createItemFn: func(budgetID, name string, amount decimal.Decimal, isOptional bool, createdOn time.Time) (*models.BudgetItem, error) {
				gotName = name
				return echoItem(budgetID, strings.TrimSpace(name), amount, isOptional, createdOn)
			},
		}
		handler := NewBudgetItemHandler(svc, &mockAuditService{})
		r := setupItemRouter(handler)

		name := " " + strings.Repeat("a", models.MaxNameLength) + " "
		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/items",
			`{"name":"`+name+`","estimated_amount":"1.00"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotName != name {
			t.Errorf("expected untrimmed name to reach the service, got %q", gotName)
		}
	})

	t.Run("accepts amount as string", func(t *testing.T) {
		svc := &mockItemService{createItemFn: echoItem}
		handler := NewBudgetItemHandler(svc, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/items", `{"name":"Rent","estimated_amount":"1200"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		item := parseJSON(t, rec)["item"].(map[string]interface{})
		if item["estimated_amount"] != "1200.00" || item["is_optional"] != false {
			t.Errorf("unexpected item: %v", item)
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockItemService{}, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/items", `{"name":"Rent"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on too many decimals", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockItemService{}, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/items", `{"name":"Coffee","estimated_amount":"3.455"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for unknown budget", func(t *testing.T) {
		svc := &mockItemService{
			createItemFn: func(_, _ string, _ decimal.Decimal, _ bool, _ time.Time) (*models.BudgetItem, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		audit := &mockAuditService{}
		handler := NewBudgetItemHandler(svc, audit)
		r := setupItemRouter(handler)

		rec := doRequest(r, "POST", "/budgets/"+testBudgetID+"/items", `{"name":"Rent","estimated_amount":1200}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
		if len(audit.entries) != 0 {
			t.Error("failed creates must not be audited")
		}
	})
}

func TestBudgetItemHandler_GetItem(t *testing.T) {
	t.Run("returns item", func(t *testing.T) {
		svc := &mockItemService{
			getItemFn: func(budgetID, itemID string) (*models.BudgetItem, error) {
				return echoItem(budgetID, "Rent", decimal.RequireFromString("1200"), false, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
			},
		}
		handler := NewBudgetItemHandler(svc, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/items/"+testItemID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if item := parseJSON(t, rec)["item"].(map[string]interface{}); item["id"] != testItemID {
			t.Errorf("unexpected item: %v", item)
		}
	})

	t.Run("returns 400 on malformed item id", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockItemService{}, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/items/7", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockItemService{
			getItemFn: func(_, _ string) (*models.BudgetItem, error) {
				return nil, apperrors.ErrBudgetItemNotFound
			},
		}
		handler := NewBudgetItemHandler(svc, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "GET", "/budgets/"+testBudgetID+"/items/"+testItemID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_ITEM_NOT_FOUND")
	})
}

func TestBudgetItemHandler_UpdateItem(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var got services.ItemUpdate
		svc := &mockItemService{
			updateItemFn: func(budgetID, _ string, update services.ItemUpdate) (*models.BudgetItem, error) {
				got = update
				return echoItem(budgetID, "Netflix", *update.EstimatedAmount, *update.IsOptional, time.Now())
			},
		}
		audit := &mockAuditService{}
		handler := NewBudgetItemHandler(svc, audit)
		r := setupItemRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID+"/items/"+testItemID,
			`{"estimated_amount":"17.49","is_optional":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name != nil {
			t.Errorf("expected name to be left unchanged, got %q", *got.Name)
		}
		if got.IsOptional == nil || *got.IsOptional {
			t.Errorf("expected is_optional=false to be passed, got %v", got.IsOptional)
		}
		if len(audit.entries) != 1 || len(audit.entries[0].changes) != 2 {
			t.Errorf("expected UPDATE_BUDGET_ITEM audit entry with 2 changes, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on bad amount", func(t *testing.T) {
		handler := NewBudgetItemHandler(&mockItemService{}, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/"+testBudgetID+"/items/"+testItemID, `{"estimated_amount":"0.001"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetItemHandler_DeleteItem(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotBudget, gotItem string
		svc := &mockItemService{
			deleteItemFn: func(budgetID, itemID string) error {
				gotBudget, gotItem = budgetID, itemID
				return nil
			},
		}
		handler := NewBudgetItemHandler(svc, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID+"/items/"+testItemID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotBudget != testBudgetID || gotItem != testItemID {
			t.Errorf("unexpected ids: %s / %s", gotBudget, gotItem)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockItemService{
			deleteItemFn: func(_, _ string) error { return apperrors.ErrBudgetItemNotFound },
		}
		handler := NewBudgetItemHandler(svc, &mockAuditService{})
		r := setupItemRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/"+testBudgetID+"/items/"+testItemID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
