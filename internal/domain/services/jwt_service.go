package services

import (
	"errors"
	"fmt"
	"time"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt 哈希成本
const passwordHashCost = 12

// RegisterInput 注册请求体：同时创建家庭与所有者用户
type RegisterInput struct {
	HouseholdName string `json:"household_name" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Password      string `json:"password" binding:"required,min=8"`
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token       string      `json:"token"`
	UserID      uint        `json:"user_id"`
	HouseholdID uint        `json:"household_id"`
	Role        string      `json:"role"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	CreatedAt   interface{} `json:"created_at"`
}

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(userID, householdID uint, role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Register(input *RegisterInput) (*LoginResult, error)
	Login(email, password string) (*LoginResult, error)
	GetProfile(userID uint) (*models.User, error)
}

// JWTService 提供JWT与账号相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
	Config    *config.Config
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID      uint   `json:"user_id"`
	HouseholdID uint   `json:"household_id"` // 所属家庭，所有查询按此隔离
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "assetnest-http-service",
		DB:        db,
		Config:    cfg,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(userID, householdID uint, role string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		UserID:      userID,
		HouseholdID: householdID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	jwtClaims := &JWTClaims{}
	if issuer, ok := claims["iss"].(string); ok {
		jwtClaims.Issuer = issuer
	}
	if userID, ok := claims["user_id"].(float64); ok {
		jwtClaims.UserID = uint(userID)
	}
	if householdID, ok := claims["household_id"].(float64); ok {
		jwtClaims.HouseholdID = uint(householdID)
	}
	if role, ok := claims["role"].(string); ok {
		jwtClaims.Role = role
	}
	return jwtClaims, nil
}

// Register 注册：同一事务内创建家庭与所有者用户并签发令牌
func (s *JWTService) Register(input *RegisterInput) (*LoginResult, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		planStart := time.Now()
		planEnd := planStart.AddDate(0, 0, s.Config.DefaultPlanDays)
		household := models.Household{
			Name:             input.HouseholdName,
			SubscriptionPlan: s.Config.DefaultPlan,
			PlanStart:        &planStart,
			PlanEnd:          &planEnd,
		}
		if err := tx.Create(&household).Error; err != nil {
			return err
		}

		user = models.User{
			HouseholdID:  household.ID,
			Name:         input.Name,
			Email:        input.Email,
			Phone:        input.Phone,
			Role:         "owner",
			PasswordHash: string(hash),
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user.ID, user.HouseholdID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:       token,
		UserID:      user.ID,
		HouseholdID: user.HouseholdID,
		Role:        user.Role,
		Name:        user.Name,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// Login 处理用户登录请求
func (s *JWTService) Login(email, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 受邀成员在设置密码前无法登录
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID, user.HouseholdID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:       token,
		UserID:      user.ID,
		HouseholdID: user.HouseholdID,
		Role:        user.Role,
		Name:        user.Name,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// GetProfile 获取当前用户信息
func (s *JWTService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
