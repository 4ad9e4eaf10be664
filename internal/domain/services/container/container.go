package container

import (
	"context"
	"log"
	"sync"
	"time"

	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 业务服务
	assetService       services.InterfaceAssetService
	bankAccountService services.InterfaceBankAccountService
	transactionService services.InterfaceTransactionService
	budgetService      services.InterfaceBudgetService
	householdService   services.InterfaceHouseholdService
	reportService      services.InterfaceReportService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config)

	// 初始化业务服务
	c.assetService = services.NewAssetService(c.db, c.config)
	c.bankAccountService = services.NewBankAccountService(c.db, c.config, c.assetService)
	c.transactionService = services.NewTransactionService(c.db, c.config)
	c.budgetService = services.NewBudgetService(c.db, c.config)
	c.householdService = services.NewHouseholdService(c.db, c.config)
	c.reportService = services.NewReportService(c.db, c.config, c.redisService, c.budgetService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "asset":
		return c.assetService
	case "bank_account":
		return c.bankAccountService
	case "transaction":
		return c.transactionService
	case "budget":
		return c.budgetService
	case "household":
		return c.householdService
	case "report":
		return c.reportService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
