package models

// User 表示家庭成员用户
type User struct {
	BaseModel
	HouseholdID  uint   `gorm:"not null;index" json:"household_id"`                 // 所属家庭ID
	Name         string `gorm:"type:varchar(100);not null" json:"name"`             // 姓名
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"` // 邮箱，登录凭证
	Phone        string `gorm:"type:varchar(20)" json:"phone"`                      // 电话
	Role         string `gorm:"type:varchar(20);default:'member'" json:"role"`      // 角色：owner, member
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`                         // 密码哈希，不序列化

	// Relations - 关联关系
	Household *Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"` // 所属家庭（多对一）
}
