package services

import "errors"

// 服务层哨兵错误，控制器用 errors.Is 判断后映射到错误码。
var (
	// 资产
	ErrInvalidAssetType  = errors.New("无效的资产类型")
	ErrAssetNotFound     = errors.New("资产不存在")
	ErrAssetNameRequired = errors.New("资产名称不能为空")
	ErrCreationFailed    = errors.New("资产创建失败")
	ErrUpdateFailed      = errors.New("资产更新失败")
	ErrDeletionFailed    = errors.New("资产删除失败")

	// 用户与认证
	ErrUserExists         = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrNotHouseholdOwner  = errors.New("仅家庭所有者可执行该操作")

	// 交易与预算
	ErrTransactionNotFound = errors.New("交易不存在")
	ErrCategoryNotFound    = errors.New("分类不存在")
	ErrBudgetNotFound      = errors.New("预算不存在")

	// 银行账户
	ErrBankAccountNotFound        = errors.New("银行账户不存在")
	ErrBankAccountHasBalance      = errors.New("银行账户仍有余额")
	ErrBankAccountHasTransactions = errors.New("银行账户存在交易记录")
)
