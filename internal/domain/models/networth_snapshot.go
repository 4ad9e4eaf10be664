package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetworthSnapshot 家庭净值快照，报表服务按日落盘
type NetworthSnapshot struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	HouseholdID uint            `gorm:"not null;index" json:"household_id"`
	SnapshotDt  time.Time       `gorm:"type:date;not null" json:"snapshot_dt"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_value"`
	Currency    string          `gorm:"type:char(3);default:'INR'" json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName 指定表名
func (NetworthSnapshot) TableName() string {
	return "networth_snapshots"
}
