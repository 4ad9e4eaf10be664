package services

import (
	"errors"
	"testing"

	"assetnest-http-service/internal/domain/models"

	"github.com/shopspring/decimal"
)

func optDecimal(s string) models.OptionalDecimal {
	d := decimal.RequireFromString(s)
	return models.OptionalDecimal{Set: true, Value: &d}
}

func optDecimalNull() models.OptionalDecimal {
	return models.OptionalDecimal{Set: true}
}

func TestCreateAssetWritesDetailAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Sharma Family")

	acquisitionDt := "2024-01-15"
	assetID, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID:   2,
		DisplayName:   "Infosys Shares",
		AcquisitionDt: &acquisitionDt,
		PurchasePrice: optDecimal("150000"),
		CurrentValue:  optDecimal("180000"),
		Detail: map[string]interface{}{
			"ticker":         "INFY",
			"exchange_code":  "NSE",
			"units":          "100",
			"avg_cost_price": "1500",
			"unknown_field":  "dropped",
		},
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	asset, err := svc.GetAssetByID(assetID, householdID)
	if err != nil {
		t.Fatalf("查询资产失败: %v", err)
	}
	if asset.DisplayName != "Infosys Shares" || asset.TypeName != "Stock" {
		t.Fatalf("资产字段不符: %+v", asset)
	}
	// 未指定货币时回落到默认货币
	if asset.Currency != "INR" {
		t.Fatalf("默认货币不符: %s", asset.Currency)
	}
	if asset.Status != "active" {
		t.Fatalf("新建资产状态应为 active: %s", asset.Status)
	}
	if _, ok := asset.Detail["ticker"]; !ok {
		t.Fatalf("明细缺少 ticker: %+v", asset.Detail)
	}
	if _, ok := asset.Detail["unknown_field"]; ok {
		t.Fatal("未注册的明细字段不应落库")
	}

	// 创建后应有且仅有一条 created 审计记录
	history, err := svc.GetAssetHistory(assetID, householdID)
	if err != nil {
		t.Fatalf("查询审计记录失败: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("审计记录数不符: %d", len(history))
	}
	if history[0].ChangeType != "created" || history[0].FieldName != nil {
		t.Fatalf("创建审计记录不符: %+v", history[0])
	}
	if history[0].ChangeReason != "Asset created" {
		t.Fatalf("创建审计原因不符: %s", history[0].ChangeReason)
	}
}

func TestCreateAssetValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Verma Family")

	_, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{AssetTypeID: 1})
	if !errors.Is(err, ErrAssetNameRequired) {
		t.Fatalf("缺少名称应返回 ErrAssetNameRequired: %v", err)
	}

	_, err = svc.CreateAsset(householdID, userID, &CreateAssetInput{AssetTypeID: 99, DisplayName: "Ghost"})
	if !errors.Is(err, ErrInvalidAssetType) {
		t.Fatalf("未知类型应返回 ErrInvalidAssetType: %v", err)
	}
}

func TestCreateAssetRollsBackOnDetailFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Rollback Family")

	// 删除明细表使事务中的明细写入失败
	if err := db.Migrator().DropTable("stock_holdings"); err != nil {
		t.Fatalf("删除明细表失败: %v", err)
	}

	_, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 2,
		DisplayName: "Doomed Stock",
		Detail:      map[string]interface{}{"ticker": "FAIL"},
	})
	if !errors.Is(err, ErrCreationFailed) {
		t.Fatalf("明细写入失败应返回 ErrCreationFailed: %v", err)
	}

	// 主记录与审计记录必须一并回滚
	var assetCount, historyCount int64
	db.Model(&models.Asset{}).Count(&assetCount)
	db.Model(&models.AssetHistory{}).Count(&historyCount)
	if assetCount != 0 || historyCount != 0 {
		t.Fatalf("事务未回滚: assets=%d history=%d", assetCount, historyCount)
	}
}

func TestUpdateAssetRecordsFieldDiffs(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Diff Family")

	assetID, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID:  3,
		DisplayName:  "Wedding Gold",
		CurrentValue: optDecimal("250000"),
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	newName := "Family Gold"
	err = svc.UpdateAsset(assetID, householdID, userID, &UpdateAssetInput{
		DisplayName:  &newName,
		CurrentValue: optDecimal("300000"),
	})
	if err != nil {
		t.Fatalf("更新资产失败: %v", err)
	}

	history, err := svc.GetAssetHistory(assetID, householdID)
	if err != nil {
		t.Fatalf("查询审计记录失败: %v", err)
	}
	// created + 两个字段各一条
	if len(history) != 3 {
		t.Fatalf("审计记录数不符: %d", len(history))
	}

	reasons := map[string]string{}
	for _, h := range history {
		if h.FieldName != nil {
			reasons[*h.FieldName] = h.ChangeReason
		}
	}
	if reasons["display_name"] != "Name updated" {
		t.Fatalf("名称变更原因不符: %+v", reasons)
	}
	if reasons["current_value"] != "Value updated" {
		t.Fatalf("估值变更原因不符: %+v", reasons)
	}

	var valueRow models.AssetHistory
	err = db.Where("asset_id = ? AND field_name = ?", assetID, "current_value").First(&valueRow).Error
	if err != nil {
		t.Fatalf("查询估值审计行失败: %v", err)
	}
	if valueRow.OldValue == nil || *valueRow.OldValue != "250000" {
		t.Fatalf("旧值不符: %v", valueRow.OldValue)
	}
	if valueRow.NewValue == nil || *valueRow.NewValue != "300000" {
		t.Fatalf("新值不符: %v", valueRow.NewValue)
	}
}

func TestUpdateAssetNoopLeavesNoHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Noop Family")

	assetID, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID:  3,
		DisplayName:  "Gold Coins",
		CurrentValue: optDecimal("50000"),
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	// 数值等价（50000.00 == 50000）与相同名称都不算变更
	sameName := "Gold Coins"
	err = svc.UpdateAsset(assetID, householdID, userID, &UpdateAssetInput{
		DisplayName:  &sameName,
		CurrentValue: optDecimal("50000.00"),
	})
	if err != nil {
		t.Fatalf("空更新失败: %v", err)
	}

	history, err := svc.GetAssetHistory(assetID, householdID)
	if err != nil {
		t.Fatalf("查询审计记录失败: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("空更新不应产生审计记录: %d", len(history))
	}
}

func TestUpdateAssetExplicitNullValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Null Family")

	assetID, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID:  3,
		DisplayName:  "Gold Bar",
		CurrentValue: optDecimal("80000"),
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	// 显式置空（对应请求中的 null 或空字符串）
	err = svc.UpdateAsset(assetID, householdID, userID, &UpdateAssetInput{
		CurrentValue: optDecimalNull(),
	})
	if err != nil {
		t.Fatalf("置空更新失败: %v", err)
	}

	asset, err := svc.GetAssetByID(assetID, householdID)
	if err != nil {
		t.Fatalf("查询资产失败: %v", err)
	}
	if asset.CurrentValue != nil {
		t.Fatalf("估值应为 NULL: %v", asset.CurrentValue)
	}

	var row models.AssetHistory
	err = db.Where("asset_id = ? AND field_name = ?", assetID, "current_value").First(&row).Error
	if err != nil {
		t.Fatalf("查询审计行失败: %v", err)
	}
	if row.NewValue != nil {
		t.Fatalf("置空审计的新值应为 NULL: %v", row.NewValue)
	}
}

func TestAssetTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdA, userA := seedHousehold(t, db, "Family A")
	householdB, userB := seedHousehold(t, db, "Family B")

	assetID, err := svc.CreateAsset(householdA, userA, &CreateAssetInput{
		AssetTypeID: 1,
		DisplayName: "Pune Flat",
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	// 其他家庭的所有访问一律按不存在处理
	if _, err := svc.GetAssetByID(assetID, householdB); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("跨家庭查询应返回 ErrAssetNotFound: %v", err)
	}
	name := "Hijacked"
	if err := svc.UpdateAsset(assetID, householdB, userB, &UpdateAssetInput{DisplayName: &name}); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("跨家庭更新应返回 ErrAssetNotFound: %v", err)
	}
	if err := svc.DeleteAsset(assetID, householdB); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("跨家庭删除应返回 ErrAssetNotFound: %v", err)
	}
	if _, err := svc.GetAssetHistory(assetID, householdB); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("跨家庭查询审计应返回 ErrAssetNotFound: %v", err)
	}

	// 原家庭不受影响
	if _, err := svc.GetAssetByID(assetID, householdA); err != nil {
		t.Fatalf("原家庭查询失败: %v", err)
	}
}

func TestDeleteAssetRemovesDetailAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Delete Family")

	assetID, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID: 2,
		DisplayName: "TCS Shares",
		Detail:      map[string]interface{}{"ticker": "TCS", "units": "50"},
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	if err := svc.DeleteAsset(assetID, householdID); err != nil {
		t.Fatalf("删除资产失败: %v", err)
	}

	var assetCount, detailCount, historyCount int64
	db.Model(&models.Asset{}).Where("id = ?", assetID).Count(&assetCount)
	db.Table("stock_holdings").Where("asset_id = ?", assetID).Count(&detailCount)
	db.Model(&models.AssetHistory{}).Where("asset_id = ?", assetID).Count(&historyCount)
	if assetCount != 0 || detailCount != 0 || historyCount != 0 {
		t.Fatalf("删除后残留数据: asset=%d detail=%d history=%d", assetCount, detailCount, historyCount)
	}
}

func TestGetAssetHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdID, userID := seedHousehold(t, db, "Order Family")

	assetID, err := svc.CreateAsset(householdID, userID, &CreateAssetInput{
		AssetTypeID:  4,
		DisplayName:  "Index Fund",
		CurrentValue: optDecimal("10000"),
	})
	if err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	for _, v := range []string{"11000", "12000"} {
		if err := svc.UpdateAsset(assetID, householdID, userID, &UpdateAssetInput{CurrentValue: optDecimal(v)}); err != nil {
			t.Fatalf("更新资产失败: %v", err)
		}
	}

	history, err := svc.GetAssetHistory(assetID, householdID)
	if err != nil {
		t.Fatalf("查询审计记录失败: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("审计记录数不符: %d", len(history))
	}
	// 新记录在前，最后一条是创建记录
	if history[0].NewValue == nil || *history[0].NewValue != "12000" {
		t.Fatalf("最新记录不符: %+v", history[0])
	}
	if history[len(history)-1].ChangeType != "created" {
		t.Fatalf("最旧记录应为创建记录: %+v", history[len(history)-1])
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].ID < history[i].ID {
			t.Fatalf("审计记录未按新→旧排序: %d before %d", history[i-1].ID, history[i].ID)
		}
	}
}

func TestGetAssetsListsHouseholdOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(db, newTestConfig())
	householdA, userA := seedHousehold(t, db, "List A")
	householdB, userB := seedHousehold(t, db, "List B")

	if _, err := svc.CreateAsset(householdA, userA, &CreateAssetInput{AssetTypeID: 1, DisplayName: "A House"}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}
	if _, err := svc.CreateAsset(householdB, userB, &CreateAssetInput{AssetTypeID: 1, DisplayName: "B House"}); err != nil {
		t.Fatalf("创建资产失败: %v", err)
	}

	assets, err := svc.GetAssets(householdA)
	if err != nil {
		t.Fatalf("查询资产列表失败: %v", err)
	}
	if len(assets) != 1 || assets[0].DisplayName != "A House" {
		t.Fatalf("资产列表不符: %+v", assets)
	}
	if assets[0].TypeName != "Property" {
		t.Fatalf("类型名不符: %s", assets[0].TypeName)
	}
}
