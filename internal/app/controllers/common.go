package controllers

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"401"`
	Message string      `json:"message" example:"Invalid email or password"`
	Data    interface{} `json:"data"`
}

// authClaims 读取认证中间件写入上下文的用户身份
func authClaims(ctx *gin.Context) (userID, householdID uint, role string) {
	return ctx.GetUint("userID"), ctx.GetUint("householdID"), ctx.GetString("role")
}
