package models

import "time"

// Household 表示一个家庭（租户）
type Household struct {
	BaseModel
	Name             string     `gorm:"type:varchar(100);not null" json:"name"`                        // 家庭名称
	SubscriptionPlan string     `gorm:"type:varchar(20);default:'basic'" json:"subscription_plan"`     // 订阅计划：basic, premium
	PlanStart        *time.Time `json:"plan_start,omitempty"`                                          // 计划开始日期
	PlanEnd          *time.Time `json:"plan_end,omitempty"`                                            // 计划结束日期

	// Relations - 关联关系
	Users []User `gorm:"foreignKey:HouseholdID" json:"users,omitempty"` // 家庭成员（一对多）
}
