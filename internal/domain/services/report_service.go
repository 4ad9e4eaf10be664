package services

import (
	"time"

	"assetnest-http-service/internal/domain/models"
	"assetnest-http-service/internal/infrastructure/config"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 报表缓存有效期
const reportCacheTTL = 10 * time.Minute

// NetWorthReport 净值报表
type NetWorthReport struct {
	TotalValue decimal.Decimal `json:"total_value"`
	Currency   string          `json:"currency"`
	AssetCount int64           `json:"asset_count"`
	AsOf       time.Time       `json:"as_of"`
	FromSnapshot bool          `json:"from_snapshot"`
}

// ExpenseByCategory 分类支出汇总行
type ExpenseByCategory struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TxnCount     int64           `json:"txn_count"`
}

// AllocationByCurrency 按货币统计的资产分布行
type AllocationByCurrency struct {
	Currency   string          `json:"currency"`
	TotalValue decimal.Decimal `json:"total_value"`
	AssetCount int64           `json:"asset_count"`
}

// BudgetVsActualRow 预算执行报表行
type BudgetVsActualRow struct {
	BudgetID      uint            `json:"budget_id"`
	CategoryName  string          `json:"category_name"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
	ActualAmount  decimal.Decimal `json:"actual_amount"`
}

// InterfaceReportService defines the report service interface
type InterfaceReportService interface {
	GetNetWorth(householdID uint) (*NetWorthReport, error)
	GetExpenseAnalysis(householdID uint, from, to *time.Time) ([]ExpenseByCategory, error)
	GetAssetAllocation(householdID uint) ([]AllocationByCurrency, error)
	GetBudgetVsActual(householdID uint) ([]BudgetVsActualRow, error)
	SnapshotNetWorth(householdID uint) error
}

// ReportService 提供报表相关的服务，结果在 Redis 可用时缓存
type ReportService struct {
	DB      *gorm.DB
	Config  *config.Config
	Redis   InterfaceRedisService
	Budgets InterfaceBudgetService
}

// NewReportService 创建一个新的报表服务，redis 可为 nil
func NewReportService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService, budgets InterfaceBudgetService) InterfaceReportService {
	return &ReportService{
		DB:      db,
		Config:  cfg,
		Redis:   redis,
		Budgets: budgets,
	}
}

// 1 GetNetWorth 获取家庭净值：优先当日快照，否则实时汇总
func (s *ReportService) GetNetWorth(householdID uint) (*NetWorthReport, error) {
	if s.Redis != nil {
		var cached NetWorthReport
		if err := s.Redis.GetCachedReport(householdID, "networth", &cached); err == nil {
			return &cached, nil
		}
	}

	report := &NetWorthReport{Currency: s.Config.DefaultCurrency, AsOf: time.Now()}

	var snapshot models.NetworthSnapshot
	today := time.Now().Format("2006-01-02")
	err := s.DB.Where("household_id = ? AND snapshot_dt = ?", householdID, today).
		Order("id DESC").First(&snapshot).Error
	if err == nil {
		report.TotalValue = snapshot.TotalValue
		report.Currency = snapshot.Currency
		report.FromSnapshot = true
	} else {
		total, count, err := s.liveNetWorth(householdID)
		if err != nil {
			return nil, err
		}
		report.TotalValue = total
		report.AssetCount = count
	}

	if s.Redis != nil {
		_ = s.Redis.CacheReport(householdID, "networth", report, reportCacheTTL)
	}
	return report, nil
}

// 2 GetExpenseAnalysis 按分类汇总支出
func (s *ReportService) GetExpenseAnalysis(householdID uint, from, to *time.Time) ([]ExpenseByCategory, error) {
	query := s.DB.Table("transactions").
		Select("transactions.category_id, txn_categories.name AS category_name, SUM(transactions.amount) AS total_amount, COUNT(*) AS txn_count").
		Joins("JOIN txn_categories ON txn_categories.id = transactions.category_id").
		Where("transactions.household_id = ? AND transactions.txn_type = ?", householdID, "expense")
	if from != nil {
		query = query.Where("transactions.txn_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("transactions.txn_date <= ?", *to)
	}

	var rows []ExpenseByCategory
	err := query.Group("transactions.category_id, txn_categories.name").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// 3 GetAssetAllocation 按货币统计资产分布
func (s *ReportService) GetAssetAllocation(householdID uint) ([]AllocationByCurrency, error) {
	if s.Redis != nil {
		var cached []AllocationByCurrency
		if err := s.Redis.GetCachedReport(householdID, "allocation", &cached); err == nil {
			return cached, nil
		}
	}

	var rows []AllocationByCurrency
	err := s.DB.Table("assets").
		Select("currency, SUM(COALESCE(current_value, 0)) AS total_value, COUNT(*) AS asset_count").
		Where("household_id = ? AND status = ?", householdID, "active").
		Group("currency").
		Order("total_value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		_ = s.Redis.CacheReport(householdID, "allocation", rows, reportCacheTTL)
	}
	return rows, nil
}

// 4 GetBudgetVsActual 预算执行情况
func (s *ReportService) GetBudgetVsActual(householdID uint) ([]BudgetVsActualRow, error) {
	budgets, err := s.Budgets.GetBudgets(householdID)
	if err != nil {
		return nil, err
	}

	rows := make([]BudgetVsActualRow, 0, len(budgets))
	for _, b := range budgets {
		row := BudgetVsActualRow{
			BudgetID:      b.ID,
			PeriodStart:   b.PeriodStart,
			PeriodEnd:     b.PeriodEnd,
			PlannedAmount: b.PlannedAmount,
			ActualAmount:  b.ActualAmount,
		}
		if b.Category != nil {
			row.CategoryName = b.Category.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// 5 SnapshotNetWorth 落盘当日净值快照
func (s *ReportService) SnapshotNetWorth(householdID uint) error {
	total, _, err := s.liveNetWorth(householdID)
	if err != nil {
		return err
	}

	snapshot := models.NetworthSnapshot{
		HouseholdID: householdID,
		SnapshotDt:  time.Now().Truncate(24 * time.Hour),
		TotalValue:  total,
		Currency:    s.Config.DefaultCurrency,
	}
	if err := s.DB.Create(&snapshot).Error; err != nil {
		return err
	}

	if s.Redis != nil {
		_ = s.Redis.InvalidateReports(householdID)
	}
	return nil
}

// liveNetWorth 实时汇总家庭活跃资产的当前估值
func (s *ReportService) liveNetWorth(householdID uint) (decimal.Decimal, int64, error) {
	var values []string
	err := s.DB.Model(&models.Asset{}).
		Where("household_id = ? AND status = ? AND current_value IS NOT NULL", householdID, "active").
		Pluck("current_value", &values).Error
	if err != nil {
		return decimal.Zero, 0, err
	}

	total := decimal.Zero
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, 0, err
		}
		total = total.Add(d)
	}
	return total, int64(len(values)), nil
}
