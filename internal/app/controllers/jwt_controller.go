package controllers

import (
	"errors"

	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/domain/services/container"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Register()
	Login()
	Logout()
	GetProfile()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"owner@example.com"`
	Password string `json:"password" binding:"required" example:"secret1234"`
}

// LoginResponse 表示登录响应
type LoginResponse struct {
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"成功"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "getProfile":
			controller.GetProfile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. Register 注册新家庭及其所有者
// @Summary      注册
// @Description  创建家庭与所有者账号并返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body services.RegisterInput true "注册信息"
// @Success      201  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (c *JWTController) Register() {
	var req services.RegisterInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "注册失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, result)
}

// 2. Login 处理用户登录
// @Summary      登录
// @Description  邮箱密码登录，返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录信息"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Ctx, code.ErrUserPasswordIncorrect, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "登录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// 3. Logout 登出
// @Summary      登出
// @Description  无状态JWT下由客户端丢弃令牌，服务端返回成功
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  LoginResponse
// @Router       /auth/logout [post]
func (c *JWTController) Logout() {
	response.Success(c.Ctx, nil)
}

// 4. GetProfile 获取当前用户信息
// @Summary      当前用户信息
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/profile [get]
func (c *JWTController) GetProfile() {
	userID, _, _ := authClaims(c.Ctx)

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	user, err := jwtService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取用户信息失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}
