package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// TransactionFilter 交易列表过滤条件
type TransactionFilter struct {
	CategoryID uint       `form:"category_id"`
	AssetID    uint       `form:"asset_id"`
	TxnType    string     `form:"txn_type"`
	DateFrom   *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"date_to" time_format:"2006-01-02"`
	PageNum    int        `form:"pageNum"`
	PageSize   int        `form:"pageSize"`
}

// CreateTransactionInput 创建交易的请求体
type CreateTransactionInput struct {
	CategoryID uint            `json:"category_id" binding:"required"`
	AssetID    *uint           `json:"asset_id"`
	Purpose    string          `json:"purpose"`
	TxnType    string          `json:"txn_type" binding:"required,oneof=income expense transfer"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency"`
	TxnDate    string          `json:"txn_date" binding:"required"` // 格式 YYYY-MM-DD
	Notes      string          `json:"notes"`
}

// InterfaceTransactionService defines the transaction service interface
type InterfaceTransactionService interface {
	GetTransactions(householdID uint, filter *TransactionFilter) ([]models.Transaction, int64, error)
	GetTransactionByID(txnID, householdID uint) (*models.Transaction, error)
	CreateTransaction(householdID, userID uint, input *CreateTransactionInput) (*models.Transaction, error)
	UpdateTransaction(txnID, householdID uint, updates map[string]interface{}) (*models.Transaction, error)
	DeleteTransaction(txnID, householdID uint) error
	GetCategories(householdID uint) ([]models.Category, error)
	ExportTransactions(householdID uint, filter *TransactionFilter) (string, error)
}

// TransactionService 提供交易记录相关的服务
type TransactionService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTransactionService 创建一个新的交易服务
func NewTransactionService(db *gorm.DB, cfg *config.Config) InterfaceTransactionService {
	return &TransactionService{
		DB:     db,
		Config: cfg,
	}
}

// filteredQuery 构建带过滤条件的家庭交易查询
func (s *TransactionService) filteredQuery(householdID uint, filter *TransactionFilter) *gorm.DB {
	query := s.DB.Model(&models.Transaction{}).Where("household_id = ?", householdID)
	if filter == nil {
		return query
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AssetID > 0 {
		query = query.Where("asset_id = ?", filter.AssetID)
	}
	if filter.TxnType != "" {
		query = query.Where("txn_type = ?", filter.TxnType)
	}
	if filter.DateFrom != nil {
		query = query.Where("txn_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("txn_date <= ?", *filter.DateTo)
	}
	return query
}

// 1 GetTransactions 获取交易列表，支持过滤与分页
func (s *TransactionService) GetTransactions(householdID uint, filter *TransactionFilter) ([]models.Transaction, int64, error) {
	var total int64
	if err := s.filteredQuery(householdID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageNum, pageSize := 1, 20
	if filter != nil {
		if filter.PageNum > 0 {
			pageNum = filter.PageNum
		}
		if filter.PageSize > 0 {
			pageSize = filter.PageSize
		}
	}

	var txns []models.Transaction
	err := s.filteredQuery(householdID, filter).
		Preload("Category").
		Order("txn_date DESC, id DESC").
		Offset((pageNum - 1) * pageSize).
		Limit(pageSize).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// 2 GetTransactionByID 按 (交易ID, 家庭ID) 获取交易
func (s *TransactionService) GetTransactionByID(txnID, householdID uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.DB.Preload("Category").Where("id = ? AND household_id = ?", txnID, householdID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// 3 CreateTransaction 创建交易记录
func (s *TransactionService) CreateTransaction(householdID, userID uint, input *CreateTransactionInput) (*models.Transaction, error) {
	if err := s.ensureCategoryVisible(input.CategoryID, householdID); err != nil {
		return nil, err
	}

	txnDate, err := time.Parse("2006-01-02", input.TxnDate)
	if err != nil {
		return nil, fmt.Errorf("日期格式无效: %q", input.TxnDate)
	}

	currency := input.Currency
	if currency == "" {
		currency = s.Config.DefaultCurrency
	}

	txn := models.Transaction{
		HouseholdID: householdID,
		UserID:      userID,
		AssetID:     input.AssetID,
		CategoryID:  input.CategoryID,
		Purpose:     input.Purpose,
		TxnType:     input.TxnType,
		Amount:      input.Amount,
		Currency:    currency,
		TxnDate:     txnDate,
		Notes:       input.Notes,
	}
	if err := s.DB.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// 4 UpdateTransaction 更新交易记录
func (s *TransactionService) UpdateTransaction(txnID, householdID uint, updates map[string]interface{}) (*models.Transaction, error) {
	txn, err := s.GetTransactionByID(txnID, householdID)
	if err != nil {
		return nil, err
	}

	// 更换分类时校验可见性
	if categoryID, ok := updates["category_id"].(uint); ok {
		if err := s.ensureCategoryVisible(categoryID, householdID); err != nil {
			return nil, err
		}
	}

	if err := s.DB.Model(txn).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetTransactionByID(txnID, householdID)
}

// 5 DeleteTransaction 删除交易记录
func (s *TransactionService) DeleteTransaction(txnID, householdID uint) error {
	txn, err := s.GetTransactionByID(txnID, householdID)
	if err != nil {
		return err
	}
	return s.DB.Delete(txn).Error
}

// 6 GetCategories 获取家庭可见分类（自有 + 全局默认）
func (s *TransactionService) GetCategories(householdID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.DB.Where("household_id = ? OR household_id IS NULL", householdID).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// 7 ExportTransactions 导出交易为 xlsx 文件，返回生成的文件路径
func (s *TransactionService) ExportTransactions(householdID uint, filter *TransactionFilter) (string, error) {
	var txns []models.Transaction
	err := s.filteredQuery(householdID, filter).
		Preload("Category").
		Order("txn_date DESC, id DESC").
		Find(&txns).Error
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"日期", "类型", "分类", "用途", "金额", "货币", "备注"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, txn := range txns {
		categoryName := ""
		if txn.Category != nil {
			categoryName = txn.Category.Name
		}
		values := []interface{}{
			txn.TxnDate.Format("2006-01-02"),
			txn.TxnType,
			categoryName,
			txn.Purpose,
			txn.Amount.String(),
			txn.Currency,
			txn.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	exportDir := filepath.Join(os.TempDir(), "assetnest-exports")
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(exportDir, fmt.Sprintf("transactions_%s.xlsx", uuid.NewString()))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

// ensureCategoryVisible 校验分类属于该家庭或为全局默认
func (s *TransactionService) ensureCategoryVisible(categoryID, householdID uint) error {
	var count int64
	err := s.DB.Model(&models.Category{}).
		Where("id = ? AND (household_id = ? OR household_id IS NULL)", categoryID, householdID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
