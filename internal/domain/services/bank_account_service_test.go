package services

import (
	"errors"
	"testing"
	"time"

	"assetnest-http-service/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestCreateBankAccount(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewBankAccountService(db, cfg, assets)
	householdID, userID := seedHousehold(t, db, "Bank Family")

	assetID, err := svc.CreateBankAccount(householdID, userID, &CreateBankAccountInput{
		DisplayName:    "HDFC Savings",
		BankName:       "HDFC Bank",
		AccountType:    "savings",
		AccountNumber:  "XXXX1234",
		IfscCode:       "HDFC0000123",
		OpeningBalance: optDecimal("50000"),
	})
	if err != nil {
		t.Fatalf("创建银行账户失败: %v", err)
	}

	// 资产主记录、明细与审计应一并写入
	account, err := svc.GetBankAccountByAssetID(assetID, householdID)
	if err != nil {
		t.Fatalf("查询银行账户失败: %v", err)
	}
	if account.TypeName != "Bank Account" {
		t.Fatalf("资产类型不符: %s", account.TypeName)
	}
	if account.CurrentValue == nil || !account.CurrentValue.Equal(decimal.RequireFromString("50000")) {
		t.Fatalf("当前估值应等于期初余额: %v", account.CurrentValue)
	}

	balance, err := coerceBalance(account.Detail["current_balance"])
	if err != nil {
		t.Fatalf("解析余额失败: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("50000")) {
		t.Fatalf("明细余额不符: %s", balance)
	}

	history, err := assets.GetAssetHistory(assetID, householdID)
	if err != nil {
		t.Fatalf("查询审计记录失败: %v", err)
	}
	if len(history) != 1 || history[0].ChangeType != "created" {
		t.Fatalf("创建审计记录不符: %+v", history)
	}

	views, err := svc.GetBankAccounts(householdID)
	if err != nil {
		t.Fatalf("查询账户列表失败: %v", err)
	}
	if len(views) != 1 || views[0].DisplayName != "HDFC Savings" {
		t.Fatalf("账户列表不符: %+v", views)
	}
}

func TestUpdateBalanceRecordsHistory(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewBankAccountService(db, cfg, assets)
	householdID, userID := seedHousehold(t, db, "Balance Family")

	assetID, err := svc.CreateBankAccount(householdID, userID, &CreateBankAccountInput{
		DisplayName:    "SBI Current",
		OpeningBalance: optDecimal("10000"),
	})
	if err != nil {
		t.Fatalf("创建银行账户失败: %v", err)
	}

	if err := svc.UpdateBalance(assetID, householdID, userID, decimal.RequireFromString("12500")); err != nil {
		t.Fatalf("对账失败: %v", err)
	}

	account, err := svc.GetBankAccountByAssetID(assetID, householdID)
	if err != nil {
		t.Fatalf("查询银行账户失败: %v", err)
	}
	if account.CurrentValue == nil || !account.CurrentValue.Equal(decimal.RequireFromString("12500")) {
		t.Fatalf("资产估值未同步: %v", account.CurrentValue)
	}
	balance, err := coerceBalance(account.Detail["current_balance"])
	if err != nil {
		t.Fatalf("解析余额失败: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("12500")) {
		t.Fatalf("明细余额未同步: %s", balance)
	}

	// 余额变更要留审计
	var row models.AssetHistory
	err = db.Where("asset_id = ? AND field_name = ?", assetID, "current_value").First(&row).Error
	if err != nil {
		t.Fatalf("查询审计行失败: %v", err)
	}
	if row.ChangeReason != "Value updated" {
		t.Fatalf("审计原因不符: %s", row.ChangeReason)
	}
}

func TestDeleteBankAccountGuards(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewBankAccountService(db, cfg, assets)
	householdID, userID := seedHousehold(t, db, "Guard Family")

	// 有余额的账户拒绝删除
	withBalance, err := svc.CreateBankAccount(householdID, userID, &CreateBankAccountInput{
		DisplayName:    "Rich Account",
		OpeningBalance: optDecimal("1000"),
	})
	if err != nil {
		t.Fatalf("创建银行账户失败: %v", err)
	}
	if err := svc.DeleteBankAccount(withBalance, householdID); !errors.Is(err, ErrBankAccountHasBalance) {
		t.Fatalf("有余额应返回 ErrBankAccountHasBalance: %v", err)
	}

	// 有关联交易的账户拒绝删除
	empty, err := svc.CreateBankAccount(householdID, userID, &CreateBankAccountInput{
		DisplayName:    "Linked Account",
		OpeningBalance: optDecimal("0"),
	})
	if err != nil {
		t.Fatalf("创建银行账户失败: %v", err)
	}
	categoryID := seedCategory(t, db, 0, "Misc", "expense")
	txn := models.Transaction{
		HouseholdID: householdID,
		UserID:      userID,
		AssetID:     &empty,
		CategoryID:  categoryID,
		TxnType:     "expense",
		Amount:      decimal.RequireFromString("50"),
		Currency:    "INR",
		TxnDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("创建交易失败: %v", err)
	}
	if err := svc.DeleteBankAccount(empty, householdID); !errors.Is(err, ErrBankAccountHasTransactions) {
		t.Fatalf("有交易应返回 ErrBankAccountHasTransactions: %v", err)
	}

	// 零余额且无交易的账户可以删除
	deletable, err := svc.CreateBankAccount(householdID, userID, &CreateBankAccountInput{
		DisplayName:    "Closed Account",
		OpeningBalance: optDecimal("0"),
	})
	if err != nil {
		t.Fatalf("创建银行账户失败: %v", err)
	}
	if err := svc.DeleteBankAccount(deletable, householdID); err != nil {
		t.Fatalf("删除账户失败: %v", err)
	}
	if _, err := svc.GetBankAccountByAssetID(deletable, householdID); !errors.Is(err, ErrBankAccountNotFound) {
		t.Fatalf("删除后查询应返回 ErrBankAccountNotFound: %v", err)
	}
}

func TestBankAccountRejectsOtherAssetTypes(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	assets := NewAssetService(db, cfg)
	svc := NewBankAccountService(db, cfg, assets)
	householdID, userID := seedHousehold(t, db, "Type Family")

	// 非银行账户类型的资产不应出现在银行账户接口里
	assetID, err := assets.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 1,
		DisplayName: "Mumbai Flat",
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}
	if _, err := svc.GetBankAccountByAssetID(assetID, householdID); !errors.Is(err, ErrBankAccountNotFound) {
		t.Fatalf("非银行资产应返回 ErrBankAccountNotFound: %v", err)
	}
}
