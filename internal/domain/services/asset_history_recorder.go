package services

import (
	"assetnest-http-service/internal/domain/models"

	"gorm.io/gorm"
)

// historyRecorder 在资产写事务内追加审计记录，仅供 AssetService 使用
type historyRecorder struct{}

// recordCreated 追加资产创建记录，field_name 为 NULL
func (historyRecorder) recordCreated(tx *gorm.DB, assetID uint, userID uint) error {
	entry := models.AssetHistory{
		AssetID:      assetID,
		UserID:       userID,
		ChangeType:   "created",
		ChangeReason: "Asset created",
	}
	return tx.Create(&entry).Error
}

// recordFieldChange 追加单个字段的变更记录
func (historyRecorder) recordFieldChange(tx *gorm.DB, assetID uint, userID uint, field string, oldValue, newValue *string, reason string) error {
	entry := models.AssetHistory{
		AssetID:      assetID,
		UserID:       userID,
		ChangeType:   "updated",
		FieldName:    &field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangeReason: reason,
	}
	return tx.Create(&entry).Error
}
