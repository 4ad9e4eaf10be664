package services

import (
	"errors"
	"testing"

	"assetnest-http-service/internal/domain/models"
)

func TestRegisterCreatesHouseholdAndOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)

	result, err := svc.Register(&RegisterInput{
		HouseholdName: "Gupta Family",
		Name:          "Asha Gupta",
		Email:         "asha@example.com",
		Password:      "correct-horse",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if result.Token == "" {
		t.Fatal("注册应返回令牌")
	}
	if result.Role != "owner" {
		t.Fatalf("注册用户角色应为 owner: %s", result.Role)
	}

	var household models.Household
	if err := db.First(&household, result.HouseholdID).Error; err != nil {
		t.Fatalf("查询家庭失败: %v", err)
	}
	if household.Name != "Gupta Family" || household.SubscriptionPlan != "basic" {
		t.Fatalf("家庭记录不符: %+v", household)
	}
	if household.PlanStart == nil || household.PlanEnd == nil {
		t.Fatal("订阅周期未写入")
	}

	// 令牌中必须携带家庭ID，后续所有查询按此隔离
	claims, err := svc.ExtractClaims(result.Token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != result.UserID || claims.HouseholdID != result.HouseholdID {
		t.Fatalf("令牌声明不符: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)

	input := &RegisterInput{
		HouseholdName: "First Family",
		Name:          "First",
		Email:         "dup@example.com",
		Password:      "password123",
	}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	input.HouseholdName = "Second Family"
	if _, err := svc.Register(input); !errors.Is(err, ErrUserExists) {
		t.Fatalf("重复邮箱应返回 ErrUserExists: %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)

	if _, err := svc.Register(&RegisterInput{
		HouseholdName: "Login Family",
		Name:          "Ravi",
		Email:         "ravi@example.com",
		Password:      "secret-password",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	result, err := svc.Login("ravi@example.com", "secret-password")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if result.Token == "" || result.Email != "ravi@example.com" {
		t.Fatalf("登录结果不符: %+v", result)
	}

	if _, err := svc.Login("ravi@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("错误密码应返回 ErrInvalidCredentials: %v", err)
	}
	if _, err := svc.Login("nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("未知邮箱应返回 ErrInvalidCredentials: %v", err)
	}
}

func TestLoginInvitedMemberWithoutPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)
	householdID, _ := seedHousehold(t, db, "Invite Login")

	member := models.User{
		HouseholdID: householdID,
		Name:        "Passwordless",
		Email:       "invited@example.com",
		Role:        "member",
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("创建成员失败: %v", err)
	}

	// 未设置密码的受邀成员不能登录
	if _, err := svc.Login("invited@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("无密码成员登录应返回 ErrInvalidCredentials: %v", err)
	}
}
