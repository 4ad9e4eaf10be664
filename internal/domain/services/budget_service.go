package services

import (
	"errors"
	"fmt"
	"time"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateBudgetInput 创建预算的请求体
type CreateBudgetInput struct {
	CategoryID    uint            `json:"category_id" binding:"required"`
	PeriodStart   string          `json:"period_start" binding:"required"` // 格式 YYYY-MM-DD
	PeriodEnd     string          `json:"period_end" binding:"required"`
	PlannedAmount decimal.Decimal `json:"planned_amount" binding:"required"`
}

// InterfaceBudgetService defines the budget service interface
type InterfaceBudgetService interface {
	GetBudgets(householdID uint) ([]models.BudgetWithActual, error)
	GetBudgetByID(budgetID, householdID uint) (*models.BudgetWithActual, error)
	CreateBudget(householdID uint, input *CreateBudgetInput) (*models.Budget, error)
	UpdateBudget(budgetID, householdID uint, updates map[string]interface{}) (*models.Budget, error)
	DeleteBudget(budgetID, householdID uint) error
}

// BudgetService 提供预算相关的服务
type BudgetService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBudgetService 创建一个新的预算服务
func NewBudgetService(db *gorm.DB, cfg *config.Config) InterfaceBudgetService {
	return &BudgetService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetBudgets 获取家庭全部预算及周期内实际支出
func (s *BudgetService) GetBudgets(householdID uint) ([]models.BudgetWithActual, error) {
	var budgets []models.Budget
	err := s.DB.Preload("Category").
		Where("household_id = ?", householdID).
		Order("period_start DESC, id DESC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.BudgetWithActual, 0, len(budgets))
	for _, b := range budgets {
		actual, err := s.actualAmount(&b)
		if err != nil {
			return nil, err
		}
		result = append(result, models.BudgetWithActual{Budget: b, ActualAmount: actual})
	}
	return result, nil
}

// 2 GetBudgetByID 按 (预算ID, 家庭ID) 获取预算
func (s *BudgetService) GetBudgetByID(budgetID, householdID uint) (*models.BudgetWithActual, error) {
	var budget models.Budget
	err := s.DB.Preload("Category").
		Where("id = ? AND household_id = ?", budgetID, householdID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	actual, err := s.actualAmount(&budget)
	if err != nil {
		return nil, err
	}
	return &models.BudgetWithActual{Budget: budget, ActualAmount: actual}, nil
}

// 3 CreateBudget 创建预算
func (s *BudgetService) CreateBudget(householdID uint, input *CreateBudgetInput) (*models.Budget, error) {
	var count int64
	err := s.DB.Model(&models.Category{}).
		Where("id = ? AND (household_id = ? OR household_id IS NULL)", input.CategoryID, householdID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCategoryNotFound
	}

	periodStart, err := time.Parse("2006-01-02", input.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("日期格式无效: %q", input.PeriodStart)
	}
	periodEnd, err := time.Parse("2006-01-02", input.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("日期格式无效: %q", input.PeriodEnd)
	}

	budget := models.Budget{
		HouseholdID:   householdID,
		CategoryID:    input.CategoryID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		PlannedAmount: input.PlannedAmount,
	}
	if err := s.DB.Create(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// 4 UpdateBudget 更新预算
func (s *BudgetService) UpdateBudget(budgetID, householdID uint, updates map[string]interface{}) (*models.Budget, error) {
	var budget models.Budget
	err := s.DB.Where("id = ? AND household_id = ?", budgetID, householdID).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&budget).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&budget, budgetID).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// 5 DeleteBudget 删除预算
func (s *BudgetService) DeleteBudget(budgetID, householdID uint) error {
	var budget models.Budget
	err := s.DB.Where("id = ? AND household_id = ?", budgetID, householdID).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBudgetNotFound
		}
		return err
	}
	return s.DB.Delete(&budget).Error
}

// actualAmount 汇总预算周期内该分类的实际支出。
// 日期区间比较在 SQL 层完成，金额累加用 decimal 避免精度损失。
func (s *BudgetService) actualAmount(budget *models.Budget) (decimal.Decimal, error) {
	var amounts []string
	err := s.DB.Model(&models.Transaction{}).
		Where("household_id = ? AND category_id = ? AND txn_type = ?", budget.HouseholdID, budget.CategoryID, "expense").
		Where("txn_date >= ? AND txn_date <= ?", budget.PeriodStart, budget.PeriodEnd).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(d)
	}
	return total, nil
}
