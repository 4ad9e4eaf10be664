package models

// Category 交易分类，household_id 为 NULL 表示全局默认分类
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);not null" json:"name"`
	TxnKind     string `gorm:"type:varchar(20);not null" json:"txn_kind"` // 适用交易类型：income, expense
	ParentID    *uint  `json:"parent_id,omitempty"`                       // 父分类ID
	HouseholdID *uint  `gorm:"index" json:"household_id,omitempty"`       // 所属家庭，NULL 为全局
}

// TableName 指定表名
func (Category) TableName() string {
	return "txn_categories"
}
