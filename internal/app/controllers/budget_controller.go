package controllers

import (
	"errors"
	"strconv"

	"assetnest-http-service/internal/app/middleware"
	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/domain/services/container"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InterfaceBudgetController 定义预算控制器接口
type InterfaceBudgetController interface {
	GetBudgets()
	GetBudget()
	CreateBudget()
	UpdateBudget()
	DeleteBudget()
}

// BudgetController 处理预算相关的请求
type BudgetController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBudgetController 创建一个新的预算控制器
func NewBudgetController(ctx *gin.Context, container *container.ServiceContainer) *BudgetController {
	return &BudgetController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateBudgetRequest 更新预算请求
type UpdateBudgetRequest struct {
	CategoryID    *uint            `json:"category_id"`
	PeriodStart   *string          `json:"period_start"` // 格式 YYYY-MM-DD
	PeriodEnd     *string          `json:"period_end"`
	PlannedAmount *decimal.Decimal `json:"planned_amount"`
}

// HandleBudgetFunc 返回一个处理预算请求的Gin处理函数
func HandleBudgetFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBudgetController(ctx, container)

		switch method {
		case "getBudgets":
			controller.GetBudgets()
		case "getBudget":
			controller.GetBudget()
		case "createBudget":
			controller.CreateBudget()
		case "updateBudget":
			controller.UpdateBudget()
		case "deleteBudget":
			controller.DeleteBudget()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// budgetID 解析路径中的预算ID
func (c *BudgetController) budgetID() (uint, bool) {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil || id <= 0 {
		response.ParamError(c.Ctx, "无效的预算ID")
		return 0, false
	}
	return uint(id), true
}

// failBudget 将预算服务的哨兵错误映射到错误码
func (c *BudgetController) failBudget(err error) {
	switch {
	case errors.Is(err, services.ErrBudgetNotFound):
		response.Fail(c.Ctx, code.ErrBudgetNotFound, nil)
	case errors.Is(err, services.ErrCategoryNotFound):
		response.Fail(c.Ctx, code.ErrCategoryNotFound, nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
	}
}

// 1. GetBudgets 获取预算列表
// @Summary      预算列表
// @Description  返回全部预算及各周期内的实际支出
// @Tags         Budget
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /budgets [get]
func (c *BudgetController) GetBudgets() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("budget").(services.InterfaceBudgetService)
	budgets, err := service.GetBudgets(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取预算列表失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, budgets)
}

// 2. GetBudget 获取单个预算
// @Summary      预算详情
// @Tags         Budget
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "预算ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /budgets/{id} [get]
func (c *BudgetController) GetBudget() {
	id, ok := c.budgetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("budget").(services.InterfaceBudgetService)
	budget, err := service.GetBudgetByID(id, householdID)
	if err != nil {
		c.failBudget(err)
		return
	}
	response.Success(c.Ctx, budget)
}

// 3. CreateBudget 创建预算
// @Summary      创建预算
// @Tags         Budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.CreateBudgetInput true "预算信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /budgets [post]
func (c *BudgetController) CreateBudget() {
	var req services.CreateBudgetInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("budget").(services.InterfaceBudgetService)
	budget, err := service.CreateBudget(householdID, &req)
	if err != nil {
		c.failBudget(err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, budget)
}

// 4. UpdateBudget 更新预算
// @Summary      更新预算
// @Tags         Budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "预算ID"
// @Param        request body UpdateBudgetRequest true "更新内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /budgets/{id} [put]
func (c *BudgetController) UpdateBudget() {
	id, ok := c.budgetID()
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	// 创建更新映射
	updates := make(map[string]interface{})
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.PeriodStart != nil {
		updates["period_start"] = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		updates["period_end"] = *req.PeriodEnd
	}
	if req.PlannedAmount != nil {
		updates["planned_amount"] = *req.PlannedAmount
	}

	service := c.Container.GetService("budget").(services.InterfaceBudgetService)
	budget, err := service.UpdateBudget(id, householdID, updates)
	if err != nil {
		c.failBudget(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, budget)
}

// 5. DeleteBudget 删除预算
// @Summary      删除预算
// @Tags         Budget
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "预算ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /budgets/{id} [delete]
func (c *BudgetController) DeleteBudget() {
	id, ok := c.budgetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("budget").(services.InterfaceBudgetService)
	if err := service.DeleteBudget(id, householdID); err != nil {
		c.failBudget(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}
