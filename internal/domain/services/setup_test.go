package services

import (
	"fmt"
	"strings"
	"testing"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建共享内存 sqlite 数据库并迁移全部表、写入资产类型种子
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&models.Household{},
		&models.User{},
		&models.AssetType{},
		&models.Asset{},
		&models.PropertyAsset{},
		&models.StockHolding{},
		&models.GoldAsset{},
		&models.MFHolding{},
		&models.InsurancePolicy{},
		&models.BankAccount{},
		&models.AssetHistory{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
		&models.NetworthSnapshot{},
	)
	if err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	for id, variant := range assetTypeVariants {
		if err := db.Create(&models.AssetType{ID: id, TypeName: variant.TypeName}).Error; err != nil {
			t.Fatalf("写入资产类型种子失败: %v", err)
		}
	}
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:    "test-secret-key",
		DefaultCurrency: "INR",
		DefaultPlan:     "basic",
		DefaultPlanDays: 30,
	}
}

// seedHousehold 创建一个家庭与一名所有者用户，返回两者的ID
func seedHousehold(t *testing.T, db *gorm.DB, name string) (uint, uint) {
	t.Helper()

	household := models.Household{Name: name, SubscriptionPlan: "basic"}
	if err := db.Create(&household).Error; err != nil {
		t.Fatalf("创建测试家庭失败: %v", err)
	}

	user := models.User{
		HouseholdID: household.ID,
		Name:        name + " Owner",
		Email:       fmt.Sprintf("%s-owner@example.com", strings.ToLower(strings.ReplaceAll(name, " ", "-"))),
		Role:        "owner",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return household.ID, user.ID
}

// seedCategory 创建一个分类，householdID 为 0 时创建全局分类
func seedCategory(t *testing.T, db *gorm.DB, householdID uint, name, txnKind string) uint {
	t.Helper()

	category := models.Category{Name: name, TxnKind: txnKind}
	if householdID > 0 {
		category.HouseholdID = &householdID
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	return category.ID
}
