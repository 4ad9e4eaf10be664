package routes

import (
	"time"

	"assetnest-http-service/internal/app/controllers"
	"assetnest-http-service/internal/app/middleware"
	"assetnest-http-service/internal/domain/services/container"
	"assetnest-http-service/internal/infrastructure/config"
	"assetnest-http-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "assetnest-http-service/docs"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(pool *database.ConnectionPool, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	db := pool.GetDB()
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer, pool)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container, pool)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	healthController := controllers.NewHealthCheckController(pool)
	api.GET("/ping", healthController.Ping)
	api.GET("/health", healthController.Ping) // 兼容Docker健康检查的路由

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", healthController.Status)
	healthGroup.GET("/cache-stats", healthController.CacheStats)

	// 认证路由
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.CombinedRateLimiter(5, 10)) // 每秒5个请求，最多突发10个
	authGroup.POST("/register", controllers.HandleJWTFunc(container, "register"))
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 会话路由
	auth.POST("/auth/logout", controllers.HandleJWTFunc(container, "logout"))
	auth.GET("/auth/profile", controllers.HandleJWTFunc(container, "getProfile"))

	// 资产路由
	assetGroup := auth.Group("/assets")
	assetGroup.GET("/types", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleAssetFunc(container, "getAssetTypes"))
	assetGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleAssetFunc(container, "getAssets"))
	assetGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleAssetFunc(container, "getAsset"))
	assetGroup.POST("", controllers.HandleAssetFunc(container, "createAsset"))
	assetGroup.PUT("/:id", controllers.HandleAssetFunc(container, "updateAsset"))
	assetGroup.DELETE("/:id", controllers.HandleAssetFunc(container, "deleteAsset"))
	assetGroup.GET("/:id/history", controllers.HandleAssetFunc(container, "getAssetHistory"))

	// 银行账户路由
	bankGroup := auth.Group("/bank-accounts")
	bankGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleBankAccountFunc(container, "getBankAccounts"))
	bankGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleBankAccountFunc(container, "getBankAccount"))
	bankGroup.POST("", controllers.HandleBankAccountFunc(container, "createBankAccount"))
	bankGroup.PUT("/:id", controllers.HandleBankAccountFunc(container, "updateBankAccount"))
	bankGroup.PUT("/:id/balance", controllers.HandleBankAccountFunc(container, "updateBalance"))
	bankGroup.DELETE("/:id", controllers.HandleBankAccountFunc(container, "deleteBankAccount"))

	// 交易路由
	txnGroup := auth.Group("/transactions")
	txnGroup.GET("/categories", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleTransactionFunc(container, "getCategories"))
	txnGroup.GET("/export", controllers.HandleTransactionFunc(container, "exportTransactions"))
	txnGroup.GET("", controllers.HandleTransactionFunc(container, "getTransactions"))
	txnGroup.GET("/:id", controllers.HandleTransactionFunc(container, "getTransaction"))
	txnGroup.POST("", controllers.HandleTransactionFunc(container, "createTransaction"))
	txnGroup.PUT("/:id", controllers.HandleTransactionFunc(container, "updateTransaction"))
	txnGroup.DELETE("/:id", controllers.HandleTransactionFunc(container, "deleteTransaction"))

	// 预算路由
	budgetGroup := auth.Group("/budgets")
	budgetGroup.GET("", controllers.HandleBudgetFunc(container, "getBudgets"))
	budgetGroup.GET("/:id", controllers.HandleBudgetFunc(container, "getBudget"))
	budgetGroup.POST("", controllers.HandleBudgetFunc(container, "createBudget"))
	budgetGroup.PUT("/:id", controllers.HandleBudgetFunc(container, "updateBudget"))
	budgetGroup.DELETE("/:id", controllers.HandleBudgetFunc(container, "deleteBudget"))

	// 家庭路由
	householdGroup := auth.Group("/households")
	householdGroup.GET("/info", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleHouseholdFunc(container, "getHouseholdInfo"))
	householdGroup.GET("/members", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleHouseholdFunc(container, "getMembers"))
	householdGroup.POST("/members/invite", middleware.RequireOwner(), controllers.HandleHouseholdFunc(container, "inviteMember"))

	// 报表路由
	reportGroup := auth.Group("/reports")
	reportGroup.GET("/networth", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleReportFunc(container, "getNetWorth"))
	reportGroup.GET("/expenses", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleReportFunc(container, "getExpenseAnalysis"))
	reportGroup.GET("/allocation", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleReportFunc(container, "getAssetAllocation"))
	reportGroup.GET("/budget-vs-actual", controllers.HandleReportFunc(container, "getBudgetVsActual"))
	reportGroup.POST("/networth/snapshot", controllers.HandleReportFunc(container, "snapshotNetWorth"))
}
