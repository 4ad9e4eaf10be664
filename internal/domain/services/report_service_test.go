package services

import (
	"testing"
	"time"

	"assetnest-http-service/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestGetNetWorthSumsActiveAssets(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewReportService(db, cfg, nil, NewBudgetService(db, cfg))
	householdID, userID := seedHousehold(t, db, "NetWorth Family")
	otherHousehold, otherUser := seedHousehold(t, db, "NetWorth Other")

	if _, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 1, DisplayName: "Flat", CurrentValue: optDecimal("5000000"),
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}
	if _, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 3, DisplayName: "Gold", CurrentValue: optDecimal("250000.50"),
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}
	// 无估值的资产不计入
	if _, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 1, DisplayName: "Plot",
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}
	// 其他家庭的资产不计入
	if _, err := assets.CreateAsset(otherHousehold, otherUser, &CreateAssetInput{
		AssetTypeID: 1, DisplayName: "Other Flat", CurrentValue: optDecimal("9999999"),
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	report, err := svc.GetNetWorth(householdID)
	if err != nil {
		t.Fatalf("查询净值失败: %v", err)
	}
	expected := decimal.RequireFromString("5250000.50")
	if !report.TotalValue.Equal(expected) {
		t.Fatalf("净值不符: %s != %s", report.TotalValue, expected)
	}
	if report.AssetCount != 2 {
		t.Fatalf("计入资产数不符: %d", report.AssetCount)
	}
	if report.Currency != "INR" {
		t.Fatalf("净值货币不符: %s", report.Currency)
	}
}

func TestSnapshotNetWorth(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewReportService(db, cfg, nil, NewBudgetService(db, cfg))
	householdID, userID := seedHousehold(t, db, "Snapshot Family")

	if _, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 3, DisplayName: "Gold", CurrentValue: optDecimal("100000"),
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	if err := svc.SnapshotNetWorth(householdID); err != nil {
		t.Fatalf("落盘快照失败: %v", err)
	}

	var snapshot models.NetworthSnapshot
	if err := db.Where("household_id = ?", householdID).First(&snapshot).Error; err != nil {
		t.Fatalf("查询快照失败: %v", err)
	}
	if !snapshot.TotalValue.Equal(decimal.RequireFromString("100000")) {
		t.Fatalf("快照金额不符: %s", snapshot.TotalValue)
	}
}

func TestGetExpenseAnalysis(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	txns := NewTransactionService(db, cfg)
	svc := NewReportService(db, cfg, nil, NewBudgetService(db, cfg))
	householdID, userID := seedHousehold(t, db, "Expense Family")
	groceries := seedCategory(t, db, householdID, "Groceries", "expense")
	travel := seedCategory(t, db, 0, "Travel", "expense")
	salary := seedCategory(t, db, 0, "Salary", "income")

	seedTransaction(t, txns, householdID, userID, groceries, "expense", "1000", "2026-08-01")
	seedTransaction(t, txns, householdID, userID, groceries, "expense", "500", "2026-08-10")
	seedTransaction(t, txns, householdID, userID, travel, "expense", "3000", "2026-08-15")
	// 收入不计入支出分析
	seedTransaction(t, txns, householdID, userID, salary, "income", "75000", "2026-08-31")

	rows, err := svc.GetExpenseAnalysis(householdID, nil, nil)
	if err != nil {
		t.Fatalf("查询支出分析失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("分类行数不符: %d", len(rows))
	}
	// 按总额降序
	if rows[0].CategoryName != "Travel" || !rows[0].TotalAmount.Equal(decimal.RequireFromString("3000")) {
		t.Fatalf("首行不符: %+v", rows[0])
	}
	if rows[1].CategoryName != "Groceries" || rows[1].TxnCount != 2 {
		t.Fatalf("次行不符: %+v", rows[1])
	}

	// 日期过滤
	from := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	rows, err = svc.GetExpenseAnalysis(householdID, &from, nil)
	if err != nil {
		t.Fatalf("按日期过滤失败: %v", err)
	}
	for _, row := range rows {
		if row.CategoryName == "Groceries" && row.TxnCount != 1 {
			t.Fatalf("日期过滤未生效: %+v", row)
		}
	}
}

func TestGetAssetAllocationGroupsByCurrency(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewReportService(db, cfg, nil, NewBudgetService(db, cfg))
	householdID, userID := seedHousehold(t, db, "Allocation Family")

	if _, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 1, DisplayName: "Flat", CurrentValue: optDecimal("5000000"),
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}
	if _, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 2, DisplayName: "US Stock", CurrentValue: optDecimal("1200"), Currency: "USD",
	}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	rows, err := svc.GetAssetAllocation(householdID)
	if err != nil {
		t.Fatalf("查询资产分布失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("货币行数不符: %d", len(rows))
	}

	byCurrency := map[string]AllocationByCurrency{}
	for _, row := range rows {
		byCurrency[row.Currency] = row
	}
	if row := byCurrency["INR"]; row.AssetCount != 1 || !row.TotalValue.Equal(decimal.RequireFromString("5000000")) {
		t.Fatalf("INR 行不符: %+v", row)
	}
	if row := byCurrency["USD"]; row.AssetCount != 1 {
		t.Fatalf("USD 行不符: %+v", row)
	}
}

func TestGetBudgetVsActual(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	txns := NewTransactionService(db, cfg)
	budgets := NewBudgetService(db, cfg)
	svc := NewReportService(db, cfg, nil, budgets)
	householdID, userID := seedHousehold(t, db, "BvA Family")
	groceries := seedCategory(t, db, householdID, "Groceries", "expense")

	if _, err := budgets.CreateBudget(householdID, &CreateBudgetInput{
		CategoryID:    groceries,
		PeriodStart:   "2026-08-01",
		PeriodEnd:     "2026-08-31",
		PlannedAmount: decimal.RequireFromString("8000"),
	}); err != nil {
		t.Fatalf("创建预算失败: %v", err)
	}
	seedTransaction(t, txns, householdID, userID, groceries, "expense", "4500", "2026-08-12")

	rows, err := svc.GetBudgetVsActual(householdID)
	if err != nil {
		t.Fatalf("查询预算执行失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("预算行数不符: %d", len(rows))
	}
	if rows[0].CategoryName != "Groceries" {
		t.Fatalf("分类名不符: %s", rows[0].CategoryName)
	}
	if !rows[0].PlannedAmount.Equal(decimal.RequireFromString("8000")) || !rows[0].ActualAmount.Equal(decimal.RequireFromString("4500")) {
		t.Fatalf("金额不符: %+v", rows[0])
	}
}
