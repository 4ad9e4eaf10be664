package models

// AssetType 表示资产类型字典表，启动时写入固定种子数据
type AssetType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TypeName string `gorm:"type:varchar(50);uniqueIndex;not null" json:"type_name"` // 类型名称，如 Property, Stock
}

// TableName 指定表名
func (AssetType) TableName() string {
	return "asset_types"
}
