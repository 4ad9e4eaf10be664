// @title           AssetNest HTTP Service API
// @version         1.0
// @description     A household finance tracker: assets with typed details, audit history, transactions, budgets and reports

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"assetnest-http-service/internal/app/routes"
	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"
	"assetnest-http-service/internal/infrastructure/database"
	Logger "assetnest-http-service/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 创建优化的数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("无法创建数据库连接池: %v", err)
	}
	db := pool.GetDB()

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 写入资产类型与全局分类种子数据
	if err := seedDefaultData(db); err != nil {
		log.Fatalf("写入种子数据失败: %v", err)
	}

	// 初始化路由
	r := routes.SetupRouter(pool, cfg)

	// 使用配置中的端口，而不是直接从环境变量获取
	port := cfg.ServerPort

	// 打印系统信息
	printSystemInfo(pool)

	// 启动服务器 - 注意监听所有接口(0.0.0.0)而不是只监听localhost
	Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
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
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	// 获取底层SQL连接
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	// 禁用外键约束检查
	if _, err = sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("禁用外键约束检查失败: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1") // 确保在函数结束时重新启用外键约束

	// 删除所有表
	tables := []string{
		"networth_snapshots", "budgets", "transactions", "txn_categories",
		"asset_history", "property_assets", "stock_holdings", "gold_assets",
		"mf_holdings", "insurance_policies", "bank_accounts",
		"assets", "asset_types", "users", "households",
	}

	for _, table := range tables {
		log.Printf("删除表: %s", table)
		if _, err := sqlDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			log.Printf("删除表失败: %v", err)
		}
	}

	// 重新创建表
	return autoMigrate(db)
}

// seedDefaultData 写入固定的资产类型与全局默认分类
func seedDefaultData(db *gorm.DB) error {
	assetTypes := []models.AssetType{
		{ID: 1, TypeName: "Property"},
		{ID: 2, TypeName: "Stock"},
		{ID: 3, TypeName: "Gold"},
		{ID: 4, TypeName: "Mutual Fund"},
		{ID: 5, TypeName: "Insurance"},
		{ID: 6, TypeName: "Bank Account"},
	}
	for _, t := range assetTypes {
		var count int64
		if err := db.Model(&models.AssetType{}).Where("id = ?", t.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&t).Error; err != nil {
				return err
			}
		}
	}

	// 全局分类（household_id 为 NULL），仅在空表时写入
	var categoryCount int64
	if err := db.Model(&models.Category{}).Where("household_id IS NULL").Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		defaults := []models.Category{
			{Name: "Salary", TxnKind: "income"},
			{Name: "Investment Income", TxnKind: "income"},
			{Name: "Groceries", TxnKind: "expense"},
			{Name: "Utilities", TxnKind: "expense"},
			{Name: "Rent", TxnKind: "expense"},
			{Name: "Healthcare", TxnKind: "expense"},
			{Name: "Education", TxnKind: "expense"},
			{Name: "Entertainment", TxnKind: "expense"},
			{Name: "Travel", TxnKind: "expense"},
			{Name: "Other", TxnKind: "expense"},
		}
		for _, c := range defaults {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		}
	}

	log.Println("种子数据检查完成")
	return nil
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	// 打印数据库连接池信息
	stats, err := pool.Stats()
	if err == nil {
		log.Printf("数据库连接池状态: %+v", stats)
	}

	// 打印系统资源信息
	log.Printf("系统CPU核心数: %d", runtime.NumCPU())
	log.Printf("当前Go协程数: %d", runtime.NumGoroutine())

	// 打印内存信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("系统内存使用: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
