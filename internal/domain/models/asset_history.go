package models

import "time"

// AssetHistory 资产变更审计记录，只追加不修改
type AssetHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssetID      uint      `gorm:"not null;index" json:"asset_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`                        // 操作人
	ChangeType   string    `gorm:"type:varchar(20);not null" json:"change_type"`   // created, updated
	FieldName    *string   `gorm:"type:varchar(50)" json:"field_name"`             // 变更字段，创建记录为 NULL
	OldValue     *string   `gorm:"type:text" json:"old_value"`
	NewValue     *string   `gorm:"type:text" json:"new_value"`
	ChangeReason string    `gorm:"type:varchar(100)" json:"change_reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (AssetHistory) TableName() string {
	return "asset_history"
}

// AssetHistoryEntry 历史查询响应：审计行 + 操作人姓名
type AssetHistoryEntry struct {
	AssetHistory
	UserName string `json:"user_name"`
}
