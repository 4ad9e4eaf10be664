package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户与家庭相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrHouseholdNotFound - 404: 家庭不存在.
	ErrHouseholdNotFound
	// ErrNotHouseholdOwner - 403: 仅家庭所有者可执行该操作.
	ErrNotHouseholdOwner
)

// 资产相关错误码 (102xxx).
const (
	// ErrAssetNotFound - 404: 资产不存在.
	ErrAssetNotFound int = iota + 102000
	// ErrInvalidAssetType - 400: 无效的资产类型.
	ErrInvalidAssetType
	// ErrAssetCreateFailed - 500: 资产创建失败.
	ErrAssetCreateFailed
	// ErrAssetUpdateFailed - 500: 资产更新失败.
	ErrAssetUpdateFailed
	// ErrAssetDeleteFailed - 500: 资产删除失败.
	ErrAssetDeleteFailed
)

// 交易相关错误码 (103xxx).
const (
	// ErrTransactionNotFound - 404: 交易不存在.
	ErrTransactionNotFound int = iota + 103000
	// ErrCategoryNotFound - 404: 分类不存在.
	ErrCategoryNotFound
	// ErrExportFailed - 500: 导出失败.
	ErrExportFailed
)

// 预算相关错误码 (104xxx).
const (
	// ErrBudgetNotFound - 404: 预算不存在.
	ErrBudgetNotFound int = iota + 104000
)

// 银行账户相关错误码 (105xxx).
const (
	// ErrBankAccountNotFound - 404: 银行账户不存在.
	ErrBankAccountNotFound int = iota + 105000
	// ErrBankAccountHasBalance - 400: 银行账户仍有余额.
	ErrBankAccountHasBalance
	// ErrBankAccountHasTransactions - 400: 银行账户存在交易记录.
	ErrBankAccountHasTransactions
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
