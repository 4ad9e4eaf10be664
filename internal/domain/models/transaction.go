package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 家庭收支交易记录
type Transaction struct {
	BaseModel
	HouseholdID uint            `gorm:"not null;index" json:"household_id"`           // 所属家庭ID
	UserID      uint            `gorm:"not null" json:"user_id"`                      // 记录人
	AssetID     *uint           `gorm:"index" json:"asset_id,omitempty"`              // 关联资产（如银行账户），可空
	CategoryID  uint            `gorm:"not null" json:"category_id"`                  // 分类ID
	Purpose     string          `gorm:"type:varchar(200)" json:"purpose"`             // 用途描述
	TxnType     string          `gorm:"type:varchar(20);not null" json:"txn_type"`    // 类型：income, expense, transfer
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`    // 金额
	Currency    string          `gorm:"type:char(3);default:'INR'" json:"currency"`   // 货币代码
	TxnDate     time.Time       `gorm:"type:date;not null;index" json:"txn_date"`     // 交易日期
	Notes       string          `gorm:"type:text" json:"notes"`                       // 备注

	// Relations - 关联关系
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类（多对一）
}

// TableName 指定表名
func (Transaction) TableName() string {
	return "transactions"
}
