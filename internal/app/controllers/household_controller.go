package controllers

import (
	"errors"

	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/domain/services/container"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceHouseholdController 定义家庭控制器接口
type InterfaceHouseholdController interface {
	GetHouseholdInfo()
	GetMembers()
	InviteMember()
}

// HouseholdController 处理家庭相关的请求
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController 创建一个新的家庭控制器
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHouseholdFunc 返回一个处理家庭请求的Gin处理函数
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "getHouseholdInfo":
			controller.GetHouseholdInfo()
		case "getMembers":
			controller.GetMembers()
		case "inviteMember":
			controller.InviteMember()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetHouseholdInfo 获取家庭信息
// @Summary      家庭信息
// @Description  返回当前家庭信息及成员数
// @Tags         Household
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /households/info [get]
func (c *HouseholdController) GetHouseholdInfo() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("household").(services.InterfaceHouseholdService)
	info, err := service.GetHouseholdInfo(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取家庭信息失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, info)
}

// 2. GetMembers 获取家庭成员列表
// @Summary      成员列表
// @Tags         Household
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /households/members [get]
func (c *HouseholdController) GetMembers() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("household").(services.InterfaceHouseholdService)
	members, err := service.GetMembers(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取成员列表失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, members)
}

// 3. InviteMember 邀请成员
// @Summary      邀请成员
// @Description  仅家庭所有者可邀请，受邀成员需另行设置密码
// @Tags         Household
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.InviteMemberInput true "成员信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /households/members/invite [post]
func (c *HouseholdController) InviteMember() {
	var req services.InviteMemberInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("household").(services.InterfaceHouseholdService)
	member, err := service.InviteMember(householdID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotHouseholdOwner):
			response.Fail(c.Ctx, code.ErrNotHouseholdOwner, nil)
		case errors.Is(err, services.ErrUserExists):
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "邀请成员失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, member)
}
