package controllers

import (
	"time"

	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/domain/services/container"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceReportController 定义报表控制器接口
type InterfaceReportController interface {
	GetNetWorth()
	GetExpenseAnalysis()
	GetAssetAllocation()
	GetBudgetVsActual()
	SnapshotNetWorth()
}

// ReportController 处理报表相关的请求
type ReportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportController 创建一个新的报表控制器
func NewReportController(ctx *gin.Context, container *container.ServiceContainer) *ReportController {
	return &ReportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReportFunc 返回一个处理报表请求的Gin处理函数
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportController(ctx, container)

		switch method {
		case "getNetWorth":
			controller.GetNetWorth()
		case "getExpenseAnalysis":
			controller.GetExpenseAnalysis()
		case "getAssetAllocation":
			controller.GetAssetAllocation()
		case "getBudgetVsActual":
			controller.GetBudgetVsActual()
		case "snapshotNetWorth":
			controller.SnapshotNetWorth()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetNetWorth 获取净值报表
// @Summary      家庭净值
// @Description  优先返回当日快照，否则实时汇总活跃资产估值
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/networth [get]
func (c *ReportController) GetNetWorth() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("report").(services.InterfaceReportService)
	report, err := service.GetNetWorth(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取净值失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, report)
}

// 2. GetExpenseAnalysis 获取支出分析
// @Summary      支出分析
// @Description  按分类汇总指定时间段内的支出
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Param        date_from query string false "起始日期 YYYY-MM-DD"
// @Param        date_to query string false "截止日期 YYYY-MM-DD"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/expenses [get]
func (c *ReportController) GetExpenseAnalysis() {
	_, householdID, _ := authClaims(c.Ctx)

	var from, to *time.Time
	if s := c.Ctx.Query("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ParamError(c.Ctx, "无效的起始日期")
			return
		}
		from = &t
	}
	if s := c.Ctx.Query("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.ParamError(c.Ctx, "无效的截止日期")
			return
		}
		to = &t
	}

	service := c.Container.GetService("report").(services.InterfaceReportService)
	rows, err := service.GetExpenseAnalysis(householdID, from, to)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取支出分析失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, rows)
}

// 3. GetAssetAllocation 获取资产分布
// @Summary      资产分布
// @Description  按货币统计活跃资产的估值分布
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/allocation [get]
func (c *ReportController) GetAssetAllocation() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("report").(services.InterfaceReportService)
	rows, err := service.GetAssetAllocation(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取资产分布失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, rows)
}

// 4. GetBudgetVsActual 获取预算执行报表
// @Summary      预算执行
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/budget-vs-actual [get]
func (c *ReportController) GetBudgetVsActual() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("report").(services.InterfaceReportService)
	rows, err := service.GetBudgetVsActual(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取预算执行报表失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, rows)
}

// 5. SnapshotNetWorth 落盘净值快照
// @Summary      生成净值快照
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /reports/networth/snapshot [post]
func (c *ReportController) SnapshotNetWorth() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("report").(services.InterfaceReportService)
	if err := service.SnapshotNetWorth(householdID); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "生成净值快照失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, nil)
}
