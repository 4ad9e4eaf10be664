package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset 表示家庭资产主记录，每条记录按类型关联一张明细表
type Asset struct {
	BaseModel
	HouseholdID     uint             `gorm:"not null;index" json:"household_id"`                   // 所属家庭ID
	AssetTypeID     uint             `gorm:"not null" json:"asset_type_id"`                        // 资产类型ID
	DisplayName     string           `gorm:"type:varchar(150);not null" json:"display_name"`       // 显示名称
	AcquisitionDt   *time.Time       `gorm:"type:date" json:"acquisition_dt,omitempty"`            // 取得日期
	PurchasePrice   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"purchase_price"`             // 购入价格
	CurrentValue    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"current_value"`              // 当前估值
	Currency        string           `gorm:"type:char(3);default:'INR'" json:"currency"`           // 货币代码
	Notes           string           `gorm:"type:text" json:"notes"`                               // 备注
	Status          string           `gorm:"type:varchar(20);default:'active'" json:"status"`      // 状态：active, sold, closed
	UpdatedByUserID *uint            `json:"updated_by_user_id,omitempty"`                         // 最后修改人

	// Relations - 关联关系
	AssetType *AssetType `gorm:"foreignKey:AssetTypeID" json:"asset_type,omitempty"` // 资产类型（多对一）
}

// AssetWithDetail 资产详情响应：主记录 + 类型名 + 明细字段
type AssetWithDetail struct {
	Asset
	TypeName string                 `json:"type_name"`
	Detail   map[string]interface{} `json:"detail,omitempty"`
}
