package services

import (
	"errors"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// HouseholdInfo 家庭信息响应
type HouseholdInfo struct {
	models.Household
	MemberCount int64 `json:"member_count"`
}

// InviteMemberInput 邀请成员请求体
type InviteMemberInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// InterfaceHouseholdService defines the household service interface
type InterfaceHouseholdService interface {
	GetHouseholdInfo(householdID uint) (*HouseholdInfo, error)
	GetMembers(householdID uint) ([]models.User, error)
	InviteMember(householdID, actorUserID uint, input *InviteMemberInput) (*models.User, error)
}

// HouseholdService 提供家庭相关的服务
type HouseholdService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseholdService 创建一个新的家庭服务
func NewHouseholdService(db *gorm.DB, cfg *config.Config) InterfaceHouseholdService {
	return &HouseholdService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetHouseholdInfo 获取家庭信息及成员数
func (s *HouseholdService) GetHouseholdInfo(householdID uint) (*HouseholdInfo, error) {
	var household models.Household
	if err := s.DB.First(&household, householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var memberCount int64
	if err := s.DB.Model(&models.User{}).Where("household_id = ?", householdID).Count(&memberCount).Error; err != nil {
		return nil, err
	}

	return &HouseholdInfo{Household: household, MemberCount: memberCount}, nil
}

// 2 GetMembers 获取家庭成员列表
func (s *HouseholdService) GetMembers(householdID uint) ([]models.User, error) {
	var members []models.User
	if err := s.DB.Where("household_id = ?", householdID).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// 3 InviteMember 邀请新成员，仅家庭所有者可操作。
// 受邀成员没有密码，首次登录前需另行设置。
func (s *HouseholdService) InviteMember(householdID, actorUserID uint, input *InviteMemberInput) (*models.User, error) {
	var actor models.User
	if err := s.DB.Where("id = ? AND household_id = ?", actorUserID, householdID).First(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if actor.Role != "owner" {
		return nil, ErrNotHouseholdOwner
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	member := models.User{
		HouseholdID: householdID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Role:        "member",
	}
	if err := s.DB.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
