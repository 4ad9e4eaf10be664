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

// InterfaceBankAccountController 定义银行账户控制器接口
type InterfaceBankAccountController interface {
	GetBankAccounts()
	GetBankAccount()
	CreateBankAccount()
	UpdateBankAccount()
	UpdateBalance()
	DeleteBankAccount()
}

// BankAccountController 处理银行账户相关的请求
type BankAccountController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBankAccountController 创建一个新的银行账户控制器
func NewBankAccountController(ctx *gin.Context, container *container.ServiceContainer) *BankAccountController {
	return &BankAccountController{
		Ctx:       ctx,
		Container: container,
	}
}

// BalanceRequest 对账请求
type BalanceRequest struct {
	Balance decimal.Decimal `json:"balance" binding:"required"`
}

// HandleBankAccountFunc 返回一个处理银行账户请求的Gin处理函数
func HandleBankAccountFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBankAccountController(ctx, container)

		switch method {
		case "getBankAccounts":
			controller.GetBankAccounts()
		case "getBankAccount":
			controller.GetBankAccount()
		case "createBankAccount":
			controller.CreateBankAccount()
		case "updateBankAccount":
			controller.UpdateBankAccount()
		case "updateBalance":
			controller.UpdateBalance()
		case "deleteBankAccount":
			controller.DeleteBankAccount()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// accountAssetID 解析路径中的账户资产ID
func (c *BankAccountController) accountAssetID() (uint, bool) {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil || id <= 0 {
		response.ParamError(c.Ctx, "无效的账户ID")
		return 0, false
	}
	return uint(id), true
}

// failBankAccount 将银行账户服务的哨兵错误映射到错误码
func (c *BankAccountController) failBankAccount(err error) {
	switch {
	case errors.Is(err, services.ErrBankAccountNotFound):
		response.Fail(c.Ctx, code.ErrBankAccountNotFound, nil)
	case errors.Is(err, services.ErrBankAccountHasBalance):
		response.Fail(c.Ctx, code.ErrBankAccountHasBalance, nil)
	case errors.Is(err, services.ErrBankAccountHasTransactions):
		response.Fail(c.Ctx, code.ErrBankAccountHasTransactions, nil)
	case errors.Is(err, services.ErrAssetNameRequired):
		response.ParamError(c.Ctx, "账户名称不能为空")
	case errors.Is(err, services.ErrCreationFailed):
		response.FailWithMessage(c.Ctx, code.ErrAssetCreateFailed, err.Error(), nil)
	case errors.Is(err, services.ErrUpdateFailed):
		response.FailWithMessage(c.Ctx, code.ErrAssetUpdateFailed, err.Error(), nil)
	case errors.Is(err, services.ErrDeletionFailed):
		response.FailWithMessage(c.Ctx, code.ErrAssetDeleteFailed, err.Error(), nil)
	default:
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
	}
}

// 1. GetBankAccounts 获取家庭全部银行账户
// @Summary      银行账户列表
// @Tags         BankAccount
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /bank-accounts [get]
func (c *BankAccountController) GetBankAccounts() {
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("bank_account").(services.InterfaceBankAccountService)
	accounts, err := service.GetBankAccounts(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取银行账户失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, accounts)
}

// 2. GetBankAccount 获取单个银行账户
// @Summary      银行账户详情
// @Tags         BankAccount
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账户资产ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /bank-accounts/{id} [get]
func (c *BankAccountController) GetBankAccount() {
	id, ok := c.accountAssetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("bank_account").(services.InterfaceBankAccountService)
	account, err := service.GetBankAccountByAssetID(id, householdID)
	if err != nil {
		c.failBankAccount(err)
		return
	}
	response.Success(c.Ctx, account)
}

// 3. CreateBankAccount 创建银行账户
// @Summary      创建银行账户
// @Description  作为类型为银行账户的资产创建，主记录与明细原子写入
// @Tags         BankAccount
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.CreateBankAccountInput true "账户信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /bank-accounts [post]
func (c *BankAccountController) CreateBankAccount() {
	var req services.CreateBankAccountInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("bank_account").(services.InterfaceBankAccountService)
	assetID, err := service.CreateBankAccount(householdID, userID, &req)
	if err != nil {
		c.failBankAccount(err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, gin.H{"asset_id": assetID})
}

// 4. UpdateBankAccount 更新银行账户
// @Summary      更新银行账户
// @Tags         BankAccount
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账户资产ID"
// @Param        request body services.UpdateAssetInput true "更新内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /bank-accounts/{id} [put]
func (c *BankAccountController) UpdateBankAccount() {
	id, ok := c.accountAssetID()
	if !ok {
		return
	}

	var req services.UpdateAssetInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("bank_account").(services.InterfaceBankAccountService)
	if err := service.UpdateBankAccount(id, householdID, userID, &req); err != nil {
		c.failBankAccount(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// 5. UpdateBalance 对账
// @Summary      更新账户余额
// @Description  同步更新账户余额与资产当前估值，并记录审计
// @Tags         BankAccount
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账户资产ID"
// @Param        request body BalanceRequest true "余额"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /bank-accounts/{id}/balance [put]
func (c *BankAccountController) UpdateBalance() {
	id, ok := c.accountAssetID()
	if !ok {
		return
	}

	var req BalanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("bank_account").(services.InterfaceBankAccountService)
	if err := service.UpdateBalance(id, householdID, userID, req.Balance); err != nil {
		c.failBankAccount(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// 6. DeleteBankAccount 删除银行账户
// @Summary      删除银行账户
// @Description  有余额或存在交易记录的账户拒绝删除
// @Tags         BankAccount
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "账户资产ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /bank-accounts/{id} [delete]
func (c *BankAccountController) DeleteBankAccount() {
	id, ok := c.accountAssetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	service := c.Container.GetService("bank_account").(services.InterfaceBankAccountService)
	if err := service.DeleteBankAccount(id, householdID); err != nil {
		c.failBankAccount(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}
