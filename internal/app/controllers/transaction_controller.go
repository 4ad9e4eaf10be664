package controllers

import (
	"errors"
	"path/filepath"
	"strconv"

	"assetnest-http-service/internal/app/middleware"
	"assetnest-http-service/internal/domain/services"
	"assetnest-http-service/internal/domain/services/container"
	"assetnest-http-service/internal/error/code"
	"assetnest-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InterfaceTransactionController 定义交易控制器接口
type InterfaceTransactionController interface {
	GetTransactions()
	GetTransaction()
	CreateTransaction()
	UpdateTransaction()
	DeleteTransaction()
	GetCategories()
	ExportTransactions()
}

// TransactionController 处理交易相关的请求
type TransactionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTransactionController 创建一个新的交易控制器
func NewTransactionController(ctx *gin.Context, container *container.ServiceContainer) *TransactionController {
	return &TransactionController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateTransactionRequest 更新交易请求
type UpdateTransactionRequest struct {
	CategoryID *uint            `json:"category_id"`
	Purpose    *string          `json:"purpose"`
	TxnType    *string          `json:"txn_type"`
	Amount     *decimal.Decimal `json:"amount"`
	Currency   *string          `json:"currency"`
	TxnDate    *string          `json:"txn_date"` // 格式 YYYY-MM-DD
	Notes      *string          `json:"notes"`
}

// HandleTransactionFunc 返回一个处理交易请求的Gin处理函数
func HandleTransactionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTransactionController(ctx, container)

		switch method {
		case "getTransactions":
			controller.GetTransactions()
		case "getTransaction":
			controller.GetTransaction()
		case "createTransaction":
			controller.CreateTransaction()
		case "updateTransaction":
			controller.UpdateTransaction()
		case "deleteTransaction":
			controller.DeleteTransaction()
		case "getCategories":
			controller.GetCategories()
		case "exportTransactions":
			controller.ExportTransactions()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// txnID 解析路径中的交易ID
func (c *TransactionController) txnID() (uint, bool) {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil || id <= 0 {
		response.ParamError(c.Ctx, "无效的交易ID")
		return 0, false
	}
	return uint(id), true
}

// failTransaction 将交易服务的哨兵错误映射到错误码
func (c *TransactionController) failTransaction(err error) {
	switch {
	case errors.Is(err, services.ErrTransactionNotFound):
		response.Fail(c.Ctx, code.ErrTransactionNotFound, nil)
	case errors.Is(err, services.ErrCategoryNotFound):
		response.Fail(c.Ctx, code.ErrCategoryNotFound, nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
	}
}

// 1. GetTransactions 获取交易列表
// @Summary      交易列表
// @Description  支持分类、类型、日期范围过滤与分页
// @Tags         Transaction
// @Produce      json
// @Security     BearerAuth
// @Param        category_id query int false "分类ID"
// @Param        asset_id query int false "关联资产ID"
// @Param        txn_type query string false "交易类型" Enums(income, expense, transfer)
// @Param        date_from query string false "起始日期 YYYY-MM-DD"
// @Param        date_to query string false "截止日期 YYYY-MM-DD"
// @Param        pageNum query int false "页码，默认为1"
// @Param        pageSize query int false "每页条数，默认为20"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /transactions [get]
func (c *TransactionController) GetTransactions() {
	var filter services.TransactionFilter
	if err := c.Ctx.ShouldBindQuery(&filter); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的查询参数: "+err.Error(), nil)
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	txns, total, err := service.GetTransactions(householdID, &filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取交易列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total": total,
		"data":  txns,
	})
}

// 2. GetTransaction 获取单笔交易
// @Summary      交易详情
// @Tags         Transaction
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "交易ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /transactions/{id} [get]
func (c *TransactionController) GetTransaction() {
	id, ok := c.txnID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	txn, err := service.GetTransactionByID(id, householdID)
	if err != nil {
		c.failTransaction(err)
		return
	}
	response.Success(c.Ctx, txn)
}

// 3. CreateTransaction 创建交易
// @Summary      创建交易
// @Tags         Transaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.CreateTransactionInput true "交易信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /transactions [post]
func (c *TransactionController) CreateTransaction() {
	var req services.CreateTransactionInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	txn, err := service.CreateTransaction(householdID, userID, &req)
	if err != nil {
		c.failTransaction(err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, txn)
}

// 4. UpdateTransaction 更新交易
// @Summary      更新交易
// @Tags         Transaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "交易ID"
// @Param        request body UpdateTransactionRequest true "更新内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /transactions/{id} [put]
func (c *TransactionController) UpdateTransaction() {
	id, ok := c.txnID()
	if !ok {
		return
	}

	var req UpdateTransactionRequest
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
	if req.Purpose != nil {
		updates["purpose"] = *req.Purpose
	}
	if req.TxnType != nil {
		updates["txn_type"] = *req.TxnType
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.TxnDate != nil {
		updates["txn_date"] = *req.TxnDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	txn, err := service.UpdateTransaction(id, householdID, updates)
	if err != nil {
		c.failTransaction(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, txn)
}

// 5. DeleteTransaction 删除交易
// @Summary      删除交易
// @Tags         Transaction
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "交易ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /transactions/{id} [delete]
func (c *TransactionController) DeleteTransaction() {
	id, ok := c.txnID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	if err := service.DeleteTransaction(id, householdID); err != nil {
		c.failTransaction(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// 6. GetCategories 获取可用分类
// @Summary      分类列表
// @Description  返回家庭自建分类与全局默认分类
// @Tags         Transaction
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /transactions/categories [get]
func (c *TransactionController) GetCategories() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	categories, err := service.GetCategories(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取分类失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, categories)
}

// 7. ExportTransactions 导出交易
// @Summary      导出交易
// @Description  按当前过滤条件导出交易为xlsx文件
// @Tags         Transaction
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        category_id query int false "分类ID"
// @Param        txn_type query string false "交易类型"
// @Param        date_from query string false "起始日期 YYYY-MM-DD"
// @Param        date_to query string false "截止日期 YYYY-MM-DD"
// @Success      200  {file}  file
// @Failure      500  {object}  ErrorResponse
// @Router       /transactions/export [get]
func (c *TransactionController) ExportTransactions() {
	var filter services.TransactionFilter
	if err := c.Ctx.ShouldBindQuery(&filter); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的查询参数: "+err.Error(), nil)
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("transaction").(services.InterfaceTransactionService)
	path, err := service.ExportTransactions(householdID, &filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrExportFailed, "导出失败: "+err.Error(), nil)
		return
	}

	c.Ctx.FileAttachment(path, filepath.Base(path))
}
