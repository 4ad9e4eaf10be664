package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget 分类预算，按周期设定计划金额
type Budget struct {
	BaseModel
	HouseholdID   uint            `gorm:"not null;index" json:"household_id"`              // 所属家庭ID
	CategoryID    uint            `gorm:"not null" json:"category_id"`                     // 分类ID
	PeriodStart   time.Time       `gorm:"type:date;not null" json:"period_start"`          // 周期开始
	PeriodEnd     time.Time       `gorm:"type:date;not null" json:"period_end"`            // 周期结束
	PlannedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"planned_amount"` // 计划金额

	// Relations - 关联关系
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类（多对一）
}

// TableName 指定表名
func (Budget) TableName() string {
	return "budgets"
}

// BudgetWithActual 预算列表响应：预算 + 周期内实际支出
type BudgetWithActual struct {
	Budget
	ActualAmount decimal.Decimal `json:"actual_amount"`
}
