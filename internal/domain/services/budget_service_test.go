package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBudgetActualAmount(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	budgets := NewBudgetService(db, cfg)
	txns := NewTransactionService(db, cfg)
	householdID, userID := seedHousehold(t, db, "Budget Family")
	groceries := seedCategory(t, db, householdID, "Groceries", "expense")
	travel := seedCategory(t, db, 0, "Travel", "expense")

	budget, err := budgets.CreateBudget(householdID, &CreateBudgetInput{
		CategoryID:    groceries,
		PeriodStart:   "2026-08-01",
		PeriodEnd:     "2026-08-31",
		PlannedAmount: decimal.RequireFromString("10000"),
	})
	if err != nil {
		t.Fatalf("创建预算失败: %v", err)
	}

	// 周期内同分类支出计入实际金额
	seedTransaction(t, txns, householdID, userID, groceries, "expense", "1200.50", "2026-08-05")
	seedTransaction(t, txns, householdID, userID, groceries, "expense", "800.25", "2026-08-20")
	// 周期外、其他分类与收入都不计入
	seedTransaction(t, txns, householdID, userID, groceries, "expense", "999", "2026-09-05")
	seedTransaction(t, txns, householdID, userID, travel, "expense", "5000", "2026-08-10")
	seedTransaction(t, txns, householdID, userID, groceries, "income", "300", "2026-08-10")

	result, err := budgets.GetBudgetByID(budget.ID, householdID)
	if err != nil {
		t.Fatalf("查询预算失败: %v", err)
	}
	expected := decimal.RequireFromString("2000.75")
	if !result.ActualAmount.Equal(expected) {
		t.Fatalf("实际支出不符: %s != %s", result.ActualAmount, expected)
	}
}

func TestBudgetTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestConfig())
	householdA, _ := seedHousehold(t, db, "Budget A")
	householdB, _ := seedHousehold(t, db, "Budget B")
	categoryID := seedCategory(t, db, 0, "Utilities", "expense")

	budget, err := svc.CreateBudget(householdA, &CreateBudgetInput{
		CategoryID:    categoryID,
		PeriodStart:   "2026-08-01",
		PeriodEnd:     "2026-08-31",
		PlannedAmount: decimal.RequireFromString("3000"),
	})
	if err != nil {
		t.Fatalf("创建预算失败: %v", err)
	}

	if _, err := svc.GetBudgetByID(budget.ID, householdB); !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("跨家庭查询应返回 ErrBudgetNotFound: %v", err)
	}
	if err := svc.DeleteBudget(budget.ID, householdB); !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("跨家庭删除应返回 ErrBudgetNotFound: %v", err)
	}
}

func TestCreateBudgetRejectsInvisibleCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestConfig())
	householdA, _ := seedHousehold(t, db, "Budget Cat A")
	householdB, _ := seedHousehold(t, db, "Budget Cat B")
	privateB := seedCategory(t, db, householdB, "B Only", "expense")

	_, err := svc.CreateBudget(householdA, &CreateBudgetInput{
		CategoryID:    privateB,
		PeriodStart:   "2026-08-01",
		PeriodEnd:     "2026-08-31",
		PlannedAmount: decimal.RequireFromString("1000"),
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("他人分类应返回 ErrCategoryNotFound: %v", err)
	}
}

func TestUpdateBudget(t *testing.T) {
	db := newTestDB(t)
	svc := NewBudgetService(db, newTestConfig())
	householdID, _ := seedHousehold(t, db, "Budget Update")
	categoryID := seedCategory(t, db, 0, "Healthcare", "expense")

	budget, err := svc.CreateBudget(householdID, &CreateBudgetInput{
		CategoryID:    categoryID,
		PeriodStart:   "2026-08-01",
		PeriodEnd:     "2026-08-31",
		PlannedAmount: decimal.RequireFromString("2000"),
	})
	if err != nil {
		t.Fatalf("创建预算失败: %v", err)
	}

	updated, err := svc.UpdateBudget(budget.ID, householdID, map[string]interface{}{
		"planned_amount": decimal.RequireFromString("2500"),
	})
	if err != nil {
		t.Fatalf("更新预算失败: %v", err)
	}
	if !updated.PlannedAmount.Equal(decimal.RequireFromString("2500")) {
		t.Fatalf("预算金额未更新: %s", updated.PlannedAmount)
	}
}
