package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 用户与家庭相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "该邮箱已被注册",
	ErrUserPasswordIncorrect: "邮箱或密码错误",
	ErrHouseholdNotFound:     "家庭不存在",
	ErrNotHouseholdOwner:     "仅家庭所有者可执行该操作",

	// 资产相关错误码
	ErrAssetNotFound:     "资产不存在",
	ErrInvalidAssetType:  "无效的资产类型",
	ErrAssetCreateFailed: "资产创建失败",
	ErrAssetUpdateFailed: "资产更新失败",
	ErrAssetDeleteFailed: "资产删除失败",

	// 交易相关错误码
	ErrTransactionNotFound: "交易不存在",
	ErrCategoryNotFound:    "分类不存在",
	ErrExportFailed:        "导出交易记录失败",

	// 预算相关错误码
	ErrBudgetNotFound: "预算不存在",

	// 银行账户相关错误码
	ErrBankAccountNotFound:        "银行账户不存在",
	ErrBankAccountHasBalance:      "银行账户仍有余额，请先转出或取出全部资金",
	ErrBankAccountHasTransactions: "银行账户存在交易记录，请改为归档账户",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户与家庭相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrHouseholdNotFound:     StatusNotFound,
	ErrNotHouseholdOwner:     StatusForbidden,

	// 资产相关错误码
	ErrAssetNotFound:     StatusNotFound,
	ErrInvalidAssetType:  StatusBadRequest,
	ErrAssetCreateFailed: StatusInternalServerError,
	ErrAssetUpdateFailed: StatusInternalServerError,
	ErrAssetDeleteFailed: StatusInternalServerError,

	// 交易相关错误码
	ErrTransactionNotFound: StatusNotFound,
	ErrCategoryNotFound:    StatusNotFound,
	ErrExportFailed:        StatusInternalServerError,

	// 预算相关错误码
	ErrBudgetNotFound: StatusNotFound,

	// 银行账户相关错误码
	ErrBankAccountNotFound:        StatusNotFound,
	ErrBankAccountHasBalance:      StatusBadRequest,
	ErrBankAccountHasTransactions: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
