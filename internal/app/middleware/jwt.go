package middleware

import (
	"strings"

	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authentication 认证中间件：校验令牌并将用户与家庭写入上下文。
// 之后的所有查询都以 householdID 做租户隔离。
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header is required", nil)
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid token: "+err.Error(), nil)
			c.Abort()
			return
		}

		if claims.UserID == 0 || claims.HouseholdID == 0 {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid token claims", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("householdID", claims.HouseholdID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireOwner 仅允许家庭所有者访问，须在 Authentication 之后使用
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "owner" {
			response.Fail(c, code.ErrNotHouseholdOwner, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
