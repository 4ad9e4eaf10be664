package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 各资产类型的明细表，与 assets 一对一（asset_id 唯一）。
// 明细字段全部可空：请求未提供或提供空串时落库为 NULL。

// PropertyAsset 房产明细
type PropertyAsset struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AssetID       uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	PropertyKind  *string          `gorm:"type:varchar(50)" json:"property_kind"`  // 类型：apartment, plot, house
	OwnershipMode *string          `gorm:"type:varchar(50)" json:"ownership_mode"` // 持有方式：sole, joint
	AddressLine1  *string          `gorm:"type:varchar(200)" json:"address_line1"`
	City          *string          `gorm:"type:varchar(100)" json:"city"`
	State         *string          `gorm:"type:varchar(100)" json:"state"`
	Country       *string          `gorm:"type:varchar(100)" json:"country"`
	Postcode      *string          `gorm:"type:varchar(20)" json:"postcode"`
	AreaSqft      *decimal.Decimal `gorm:"type:decimal(15,2)" json:"area_sqft"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(15,2)" json:"purchase_price"`
	PurchaseDt    *time.Time       `gorm:"type:date" json:"purchase_dt"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (PropertyAsset) TableName() string {
	return "property_assets"
}

// StockHolding 股票持仓明细
type StockHolding struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AssetID       uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	Ticker        *string          `gorm:"type:varchar(20)" json:"ticker"`
	ExchangeCode  *string          `gorm:"type:varchar(20)" json:"exchange_code"`
	BrokerAccount *string          `gorm:"type:varchar(100)" json:"broker_account"`
	Units         *decimal.Decimal `gorm:"type:decimal(15,4)" json:"units"`
	AvgCostPrice  *decimal.Decimal `gorm:"type:decimal(15,2)" json:"avg_cost_price"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (StockHolding) TableName() string {
	return "stock_holdings"
}

// GoldAsset 黄金资产明细
type GoldAsset struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AssetID       uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	GoldForm      *string          `gorm:"type:varchar(50)" json:"gold_form"` // 形态：jewellery, coin, bar, ETF
	WeightGrams   *decimal.Decimal `gorm:"type:decimal(10,3)" json:"weight_grams"`
	PurityPercent *decimal.Decimal `gorm:"type:decimal(5,2)" json:"purity_percent"`
	StoragePlace  *string          `gorm:"type:varchar(100)" json:"storage_place"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (GoldAsset) TableName() string {
	return "gold_assets"
}

// MFHolding 基金持仓明细
type MFHolding struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AssetID      uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	FundName     *string          `gorm:"type:varchar(150)" json:"fund_name"`
	FolioNumber  *string          `gorm:"type:varchar(50)" json:"folio_number"`
	Units        *decimal.Decimal `gorm:"type:decimal(15,4)" json:"units"`
	AvgNav       *decimal.Decimal `gorm:"type:decimal(15,4)" json:"avg_nav"`
	Registrar    *string          `gorm:"type:varchar(50)" json:"registrar"` // 登记机构：CAMS, KFintech
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (MFHolding) TableName() string {
	return "mf_holdings"
}

// InsurancePolicy 保险保单明细
type InsurancePolicy struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AssetID       uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	PolicyNumber  *string          `gorm:"type:varchar(50)" json:"policy_number"`
	Provider      *string          `gorm:"type:varchar(100)" json:"provider"`
	PolicyType    *string          `gorm:"type:varchar(50)" json:"policy_type"` // 险种：term, endowment, health
	SumAssured    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"sum_assured"`
	PremiumAmount *decimal.Decimal `gorm:"type:decimal(15,2)" json:"premium_amount"`
	PremiumFreq   *string          `gorm:"type:varchar(20)" json:"premium_freq"` // 缴费频率：monthly, yearly
	StartDate     *time.Time       `gorm:"type:date" json:"start_date"`
	EndDate       *time.Time       `gorm:"type:date" json:"end_date"`
	Nominee       *string          `gorm:"type:varchar(100)" json:"nominee"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

// BankAccount 银行账户明细
type BankAccount struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	AssetID        uint             `gorm:"not null;uniqueIndex" json:"asset_id"`
	BankName       *string          `gorm:"type:varchar(100)" json:"bank_name"`
	AccountType    *string          `gorm:"type:varchar(30)" json:"account_type"` // 账户类型：savings, current, fd
	AccountNumber  *string          `gorm:"type:varchar(30)" json:"account_number"`
	IfscCode       *string          `gorm:"type:varchar(20)" json:"ifsc_code"`
	BranchName     *string          `gorm:"type:varchar(100)" json:"branch_name"`
	OpeningBalance *decimal.Decimal `gorm:"type:decimal(15,2)" json:"opening_balance"`
	CurrentBalance *decimal.Decimal `gorm:"type:decimal(15,2)" json:"current_balance"`
	Currency       *string          `gorm:"type:char(3)" json:"currency"`
	IsActive       bool             `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName 指定表名
func (BankAccount) TableName() string {
	return "bank_accounts"
}
