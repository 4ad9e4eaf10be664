package controllers

import (
	"github.com/gin-gonic/gin"

	"assetnest-http-service/internal/app/middleware"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"
	"assetnest-http-service/internal/infrastructure/database"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Pool *database.ConnectionPool
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(pool *database.ConnectionPool) *HealthCheckController {
	return &HealthCheckController{Pool: pool}
}

// Ping 健康检查端点
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status 数据库与连接池状态
func (h *HealthCheckController) Status(c *gin.Context) {
	if err := h.Pool.HealthCheck(); err != nil {
		response.FailWithMessage(c, code.ErrDatabase, "数据库连接异常: "+err.Error(), nil)
		return
	}

	stats, err := h.Pool.Stats()
	if err != nil {
		response.FailWithMessage(c, code.ErrDatabase, "获取连接池状态失败: "+err.Error(), nil)
		return
	}

	response.Success(c, gin.H{
		"status": "healthy",
		"pool":   stats,
	})
}

// CacheStats 响应缓存统计
func (h *HealthCheckController) CacheStats(c *gin.Context) {
	response.Success(c, middleware.CacheStats())
}
