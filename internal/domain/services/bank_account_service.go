package services

import (
	"errors"
	"fmt"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 银行账户对应的资产类型ID
const bankAccountTypeID = 6

// BankAccountView 银行账户列表响应：明细行 + 所属资产的展示字段
type BankAccountView struct {
	models.BankAccount
	DisplayName string `json:"display_name"`
}

// CreateBankAccountInput 创建银行账户的请求体
type CreateBankAccountInput struct {
	DisplayName    string                 `json:"display_name" binding:"required"`
	BankName       string                 `json:"bank_name"`
	AccountType    string                 `json:"account_type"`
	AccountNumber  string                 `json:"account_number"`
	IfscCode       string                 `json:"ifsc_code"`
	BranchName     string                 `json:"branch_name"`
	OpeningBalance models.OptionalDecimal `json:"opening_balance"`
	Currency       string                 `json:"currency"`
	Notes          *string                `json:"notes"`
}

// InterfaceBankAccountService defines the bank account service interface
type InterfaceBankAccountService interface {
	GetBankAccounts(householdID uint) ([]BankAccountView, error)
	GetBankAccountByAssetID(assetID, householdID uint) (*models.AssetWithDetail, error)
	CreateBankAccount(householdID, userID uint, input *CreateBankAccountInput) (uint, error)
	UpdateBankAccount(assetID, householdID, userID uint, input *UpdateAssetInput) error
	UpdateBalance(assetID, householdID, userID uint, balance decimal.Decimal) error
	DeleteBankAccount(assetID, householdID uint) error
}

// BankAccountService 提供银行账户相关的服务。
// 资产主记录的写入全部经由 AssetService，保证审计记录一致。
type BankAccountService struct {
	DB     *gorm.DB
	Config *config.Config
	Assets InterfaceAssetService
}

// NewBankAccountService 创建一个新的银行账户服务
func NewBankAccountService(db *gorm.DB, cfg *config.Config, assets InterfaceAssetService) InterfaceBankAccountService {
	return &BankAccountService{
		DB:     db,
		Config: cfg,
		Assets: assets,
	}
}

// 1 GetBankAccounts 获取家庭全部银行账户
func (s *BankAccountService) GetBankAccounts(householdID uint) ([]BankAccountView, error) {
	var accounts []BankAccountView
	err := s.DB.Table("bank_accounts").
		Select("bank_accounts.*, assets.display_name").
		Joins("JOIN assets ON assets.id = bank_accounts.asset_id").
		Where("assets.household_id = ?", householdID).
		Order("bank_accounts.id").
		Scan(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// 2 GetBankAccountByAssetID 按所属资产ID获取银行账户
func (s *BankAccountService) GetBankAccountByAssetID(assetID, householdID uint) (*models.AssetWithDetail, error) {
	asset, err := s.Assets.GetAssetByID(assetID, householdID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return nil, ErrBankAccountNotFound
		}
		return nil, err
	}
	if asset.AssetTypeID != bankAccountTypeID {
		return nil, ErrBankAccountNotFound
	}
	return asset, nil
}

// 3 CreateBankAccount 创建银行账户：资产主记录、审计与明细行一次写入
func (s *BankAccountService) CreateBankAccount(householdID, userID uint, input *CreateBankAccountInput) (uint, error) {
	currency := input.Currency
	if currency == "" {
		currency = s.Config.DefaultCurrency
	}

	detail := map[string]interface{}{
		"bank_name":      input.BankName,
		"account_type":   input.AccountType,
		"account_number": input.AccountNumber,
		"ifsc_code":      input.IfscCode,
		"branch_name":    input.BranchName,
		"currency":       currency,
	}
	if input.OpeningBalance.Set && input.OpeningBalance.Value != nil {
		detail["opening_balance"] = *input.OpeningBalance.Value
		detail["current_balance"] = *input.OpeningBalance.Value
	}

	createInput := &CreateAssetInput{
		AssetTypeID:  bankAccountTypeID,
		DisplayName:  input.DisplayName,
		CurrentValue: input.OpeningBalance,
		Currency:     currency,
		Notes:        input.Notes,
		Detail:       detail,
	}
	return s.Assets.CreateAsset(householdID, userID, createInput)
}

// 4 UpdateBankAccount 更新银行账户的资产字段与明细
func (s *BankAccountService) UpdateBankAccount(assetID, householdID, userID uint, input *UpdateAssetInput) error {
	if _, err := s.GetBankAccountByAssetID(assetID, householdID); err != nil {
		return err
	}
	return s.Assets.UpdateAsset(assetID, householdID, userID, input)
}

// 5 UpdateBalance 对账：同步更新明细余额与资产当前估值
func (s *BankAccountService) UpdateBalance(assetID, householdID, userID uint, balance decimal.Decimal) error {
	if _, err := s.GetBankAccountByAssetID(assetID, householdID); err != nil {
		return err
	}
	input := &UpdateAssetInput{
		CurrentValue: models.OptionalDecimal{Set: true, Value: &balance},
		Detail:       map[string]interface{}{"current_balance": balance},
	}
	return s.Assets.UpdateAsset(assetID, householdID, userID, input)
}

// 6 DeleteBankAccount 删除银行账户。
// 有余额或已有交易记录的账户拒绝删除，避免报表悬空。
func (s *BankAccountService) DeleteBankAccount(assetID, householdID uint) error {
	account, err := s.GetBankAccountByAssetID(assetID, householdID)
	if err != nil {
		return err
	}

	if raw, ok := account.Detail["current_balance"]; ok && raw != nil {
		balance, err := coerceBalance(raw)
		if err != nil {
			return err
		}
		if balance.IsPositive() {
			return ErrBankAccountHasBalance
		}
	}

	var txnCount int64
	if err := s.DB.Model(&models.Transaction{}).Where("asset_id = ?", assetID).Count(&txnCount).Error; err != nil {
		return err
	}
	if txnCount > 0 {
		return ErrBankAccountHasTransactions
	}

	return s.Assets.DeleteAsset(assetID, householdID)
}

// coerceBalance 明细映射中的余额可能是驱动返回的字符串或浮点
func coerceBalance(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		return decimal.NewFromString(v)
	case []byte:
		return decimal.NewFromString(string(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case decimal.Decimal:
		return v, nil
	default:
		return decimal.Zero, fmt.Errorf("无法识别的余额类型: %T", raw)
	}
}
