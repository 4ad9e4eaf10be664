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
)

// InterfaceAssetController 定义资产控制器接口
type InterfaceAssetController interface {
	GetAssetTypes()
	GetAssets()
	GetAsset()
	CreateAsset()
	UpdateAsset()
	DeleteAsset()
	GetAssetHistory()
}

// AssetController 处理资产相关的请求
type AssetController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAssetController 创建一个新的资产控制器
func NewAssetController(ctx *gin.Context, container *container.ServiceContainer) *AssetController {
	return &AssetController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAssetFunc 返回一个处理资产请求的Gin处理函数
func HandleAssetFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAssetController(ctx, container)

		switch method {
		case "getAssetTypes":
			controller.GetAssetTypes()
		case "getAssets":
			controller.GetAssets()
		case "getAsset":
			controller.GetAsset()
		case "createAsset":
			controller.CreateAsset()
		case "updateAsset":
			controller.UpdateAsset()
		case "deleteAsset":
			controller.DeleteAsset()
		case "getAssetHistory":
			controller.GetAssetHistory()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// assetID 解析路径中的资产ID
func (c *AssetController) assetID() (uint, bool) {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil || id <= 0 {
		response.ParamError(c.Ctx, "无效的资产ID")
		return 0, false
	}
	return uint(id), true
}

// failAsset 将资产服务的哨兵错误映射到错误码
func (c *AssetController) failAsset(err error) {
	switch {
	case errors.Is(err, services.ErrAssetNotFound):
		response.Fail(c.Ctx, code.ErrAssetNotFound, nil)
	case errors.Is(err, services.ErrInvalidAssetType):
		response.Fail(c.Ctx, code.ErrInvalidAssetType, nil)
	case errors.Is(err, services.ErrAssetNameRequired):
		response.ParamError(c.Ctx, "资产名称不能为空")
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

// 1. GetAssetTypes 获取资产类型列表
// @Summary      资产类型列表
// @Tags         Asset
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /assets/types [get]
func (c *AssetController) GetAssetTypes() {
	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	types, err := assetService.GetAssetTypes()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取资产类型失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, types)
}

// 2. GetAssets 获取家庭全部资产
// @Summary      资产列表
// @Description  获取当前家庭的全部资产，含类型名称
// @Tags         Asset
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /assets [get]
func (c *AssetController) GetAssets() {
	_, householdID, _ := authClaims(c.Ctx)

	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	assets, err := assetService.GetAssets(householdID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取资产列表失败: "+err.Error(), nil)
		return
	}
	response.Success(c.Ctx, assets)
}

// 3. GetAsset 获取单个资产详情
// @Summary      资产详情
// @Description  获取资产主记录与类型明细
// @Tags         Asset
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "资产ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /assets/{id} [get]
func (c *AssetController) GetAsset() {
	id, ok := c.assetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	asset, err := assetService.GetAssetByID(id, householdID)
	if err != nil {
		c.failAsset(err)
		return
	}
	response.Success(c.Ctx, asset)
}

// 4. CreateAsset 创建资产
// @Summary      创建资产
// @Description  创建资产主记录、审计记录与类型明细，整体原子提交
// @Tags         Asset
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.CreateAssetInput true "资产信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /assets [post]
func (c *AssetController) CreateAsset() {
	var req services.CreateAssetInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	assetID, err := assetService.CreateAsset(householdID, userID, &req)
	if err != nil {
		c.failAsset(err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, gin.H{"asset_id": assetID})
}

// 5. UpdateAsset 更新资产
// @Summary      更新资产
// @Description  仅更新提供的字段，每个实际变化的字段追加一条审计记录
// @Tags         Asset
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "资产ID"
// @Param        request body services.UpdateAssetInput true "更新内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /assets/{id} [put]
func (c *AssetController) UpdateAsset() {
	id, ok := c.assetID()
	if !ok {
		return
	}

	var req services.UpdateAssetInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	userID, householdID, _ := authClaims(c.Ctx)

	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	if err := assetService.UpdateAsset(id, householdID, userID, &req); err != nil {
		c.failAsset(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// 6. DeleteAsset 删除资产
// @Summary      删除资产
// @Description  同一事务内移除资产及其明细与审计记录
// @Tags         Asset
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "资产ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /assets/{id} [delete]
func (c *AssetController) DeleteAsset() {
	id, ok := c.assetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	if err := assetService.DeleteAsset(id, householdID); err != nil {
		c.failAsset(err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// 7. GetAssetHistory 获取资产审计记录
// @Summary      资产变更历史
// @Description  按时间倒序返回资产的审计记录
// @Tags         Asset
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "资产ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /assets/{id}/history [get]
func (c *AssetController) GetAssetHistory() {
	id, ok := c.assetID()
	if !ok {
		return
	}
	_, householdID, _ := authClaims(c.Ctx)

	assetService := c.Container.GetService("asset").(services.InterfaceAssetService)
	history, err := assetService.GetAssetHistory(id, householdID)
	if err != nil {
		c.failAsset(err)
		return
	}
	response.Success(c.Ctx, history)
}
