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

// CreateAssetInput 创建资产的请求体
type CreateAssetInput struct {
	AssetTypeID   uint                   `json:"asset_type_id" binding:"required"`
	DisplayName   string                 `json:"display_name"`
	AcquisitionDt *string                `json:"acquisition_dt"` // 格式 YYYY-MM-DD
	PurchasePrice models.OptionalDecimal `json:"purchase_price"`
	CurrentValue  models.OptionalDecimal `json:"current_value"`
	Currency      string                 `json:"currency"`
	Notes         *string                `json:"notes"`
	Detail        map[string]interface{} `json:"detail"`
}

// UpdateAssetInput 更新资产的请求体，指针字段缺省表示不修改
type UpdateAssetInput struct {
	DisplayName   *string                `json:"display_name"`
	AcquisitionDt *string                `json:"acquisition_dt"`
	PurchasePrice models.OptionalDecimal `json:"purchase_price"`
	CurrentValue  models.OptionalDecimal `json:"current_value"`
	Currency      *string                `json:"currency"`
	Notes         *string                `json:"notes"`
	Detail        map[string]interface{} `json:"detail"`
}

// InterfaceAssetService defines the asset service interface
type InterfaceAssetService interface {
	GetAssetTypes() ([]models.AssetType, error)
	GetAssets(householdID uint) ([]models.AssetWithDetail, error)
	GetAssetByID(assetID, householdID uint) (*models.AssetWithDetail, error)
	CreateAsset(householdID, userID uint, input *CreateAssetInput) (uint, error)
	UpdateAsset(assetID, householdID, userID uint, input *UpdateAssetInput) error
	DeleteAsset(assetID, householdID uint) error
	GetAssetHistory(assetID, householdID uint) ([]models.AssetHistoryEntry, error)
}

// AssetService 提供资产生命周期相关的服务
type AssetService struct {
	DB      *gorm.DB
	Config  *config.Config
	history historyRecorder
}

// NewAssetService 创建一个新的资产服务
func NewAssetService(db *gorm.DB, cfg *config.Config) InterfaceAssetService {
	return &AssetService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAssetTypes 获取资产类型列表
func (s *AssetService) GetAssetTypes() ([]models.AssetType, error) {
	var types []models.AssetType
	if err := s.DB.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// 2 GetAssets 获取家庭全部资产（含类型名，不含明细）
func (s *AssetService) GetAssets(householdID uint) ([]models.AssetWithDetail, error) {
	var assets []models.AssetWithDetail
	err := s.DB.Table("assets").
		Select("assets.*, asset_types.type_name").
		Joins("JOIN asset_types ON asset_types.id = assets.asset_type_id").
		Where("assets.household_id = ?", householdID).
		Order("assets.created_at DESC").
		Scan(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// 3 GetAssetByID 按 (资产ID, 家庭ID) 获取单个资产及其明细
func (s *AssetService) GetAssetByID(assetID, householdID uint) (*models.AssetWithDetail, error) {
	var asset models.Asset
	if err := s.DB.Where("id = ? AND household_id = ?", assetID, householdID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	variant, err := LookupAssetType(asset.AssetTypeID)
	if err != nil {
		return nil, err
	}

	result := &models.AssetWithDetail{Asset: asset, TypeName: variant.TypeName}

	raw := map[string]interface{}{}
	err = s.DB.Table(variant.DetailTable).Where("asset_id = ?", assetID).Take(&raw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}

	// 只暴露注册表声明的列
	detail := make(map[string]interface{})
	for _, col := range variant.Columns {
		if v, ok := raw[col.Name]; ok {
			detail[col.Name] = v
		}
	}
	result.Detail = detail
	return result, nil
}

// 4 CreateAsset 创建资产：主记录、创建审计、明细行在同一事务内写入
func (s *AssetService) CreateAsset(householdID, userID uint, input *CreateAssetInput) (uint, error) {
	if input.DisplayName == "" {
		return 0, ErrAssetNameRequired
	}

	// 写库前校验类型并解析明细，避免半成品事务
	variant, err := LookupAssetType(input.AssetTypeID)
	if err != nil {
		return 0, err
	}
	detail, err := variant.DecodePayload(input.Detail)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	acquisitionDt, err := parseDatePtr(input.AcquisitionDt)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	currency := input.Currency
	if currency == "" {
		currency = s.Config.DefaultCurrency
	}

	asset := models.Asset{
		HouseholdID:     householdID,
		AssetTypeID:     input.AssetTypeID,
		DisplayName:     input.DisplayName,
		AcquisitionDt:   acquisitionDt,
		PurchasePrice:   input.PurchasePrice.Value,
		CurrentValue:    input.CurrentValue.Value,
		Currency:        currency,
		Status:          "active",
		UpdatedByUserID: &userID,
	}
	if input.Notes != nil {
		asset.Notes = *input.Notes
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}
		if err := s.history.recordCreated(tx, asset.ID, userID); err != nil {
			return err
		}
		if len(detail) > 0 {
			row := make(map[string]interface{}, len(detail)+3)
			for k, v := range detail {
				row[k] = v
			}
			now := time.Now()
			row["asset_id"] = asset.ID
			row["created_at"] = now
			row["updated_at"] = now
			if err := tx.Table(variant.DetailTable).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	return asset.ID, nil
}

// 5 UpdateAsset 更新资产：按字段差异追加审计，明细通过注册表 upsert
func (s *AssetService) UpdateAsset(assetID, householdID, userID uint, input *UpdateAssetInput) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("id = ? AND household_id = ?", assetID, householdID).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		variant, err := LookupAssetType(asset.AssetTypeID)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		type fieldChange struct {
			field    string
			oldValue *string
			newValue *string
			reason   string
		}
		var changes []fieldChange

		if input.DisplayName != nil && *input.DisplayName != asset.DisplayName {
			if *input.DisplayName == "" {
				return ErrAssetNameRequired
			}
			updates["display_name"] = *input.DisplayName
			changes = append(changes, fieldChange{"display_name", strPtr(asset.DisplayName), input.DisplayName, "Name updated"})
		}
		if input.CurrentValue.Set && !decimalPtrEqual(input.CurrentValue.Value, asset.CurrentValue) {
			updates["current_value"] = decimalPtrOrNil(input.CurrentValue.Value)
			changes = append(changes, fieldChange{"current_value", decimalPtrString(asset.CurrentValue), decimalPtrString(input.CurrentValue.Value), "Value updated"})
		}
		if input.PurchasePrice.Set && !decimalPtrEqual(input.PurchasePrice.Value, asset.PurchasePrice) {
			updates["purchase_price"] = decimalPtrOrNil(input.PurchasePrice.Value)
			changes = append(changes, fieldChange{"purchase_price", decimalPtrString(asset.PurchasePrice), decimalPtrString(input.PurchasePrice.Value), "Purchase price updated"})
		}
		if input.Currency != nil && *input.Currency != "" && *input.Currency != asset.Currency {
			updates["currency"] = *input.Currency
			changes = append(changes, fieldChange{"currency", strPtr(asset.Currency), input.Currency, "Currency updated"})
		}
		if input.Notes != nil && *input.Notes != asset.Notes {
			updates["notes"] = *input.Notes
			changes = append(changes, fieldChange{"notes", strPtr(asset.Notes), input.Notes, "Notes updated"})
		}
		if input.AcquisitionDt != nil {
			dt, err := parseDatePtr(input.AcquisitionDt)
			if err != nil {
				return err
			}
			updates["acquisition_dt"] = dt
		}

		if len(updates) > 0 {
			updates["updated_by_user_id"] = userID
			if err := tx.Model(&models.Asset{}).Where("id = ?", assetID).Updates(updates).Error; err != nil {
				return err
			}
		}

		for _, c := range changes {
			if err := s.history.recordFieldChange(tx, assetID, userID, c.field, c.oldValue, c.newValue, c.reason); err != nil {
				return err
			}
		}

		// 明细 upsert：已有明细行则更新，否则插入
		if len(input.Detail) > 0 {
			detail, err := variant.DecodePayload(input.Detail)
			if err != nil {
				return err
			}
			if len(detail) > 0 {
				var count int64
				if err := tx.Table(variant.DetailTable).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
					return err
				}
				detail["updated_at"] = time.Now()
				if count > 0 {
					if err := tx.Table(variant.DetailTable).Where("asset_id = ?", assetID).Updates(detail).Error; err != nil {
						return err
					}
				} else {
					detail["asset_id"] = assetID
					detail["created_at"] = time.Now()
					if err := tx.Table(variant.DetailTable).Create(detail).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) || errors.Is(err, ErrInvalidAssetType) || errors.Is(err, ErrAssetNameRequired) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// 6 DeleteAsset 删除资产：同一事务内移除明细、审计与主记录
func (s *AssetService) DeleteAsset(assetID, householdID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("id = ? AND household_id = ?", assetID, householdID).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		if variant, err := LookupAssetType(asset.AssetTypeID); err == nil {
			if err := tx.Exec("DELETE FROM "+variant.DetailTable+" WHERE asset_id = ?", assetID).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("asset_id = ?", assetID).Delete(&models.AssetHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
	return nil
}

// 7 GetAssetHistory 获取资产审计记录，新→旧排序并带操作人姓名
func (s *AssetService) GetAssetHistory(assetID, householdID uint) ([]models.AssetHistoryEntry, error) {
	var count int64
	if err := s.DB.Model(&models.Asset{}).
		Where("id = ? AND household_id = ?", assetID, householdID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrAssetNotFound
	}

	var entries []models.AssetHistoryEntry
	err := s.DB.Table("asset_history").
		Select("asset_history.*, users.name AS user_name").
		Joins("JOIN users ON users.id = asset_history.user_id").
		Where("asset_history.asset_id = ?", assetID).
		Order("asset_history.created_at DESC, asset_history.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// parseDatePtr 解析 YYYY-MM-DD 日期指针，空串等价于 NULL
func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("日期格式无效: %q", *s)
	}
	return &t, nil
}

func strPtr(s string) *string {
	return &s
}

// decimalPtrEqual 按数值比较，1.50 与 1.5 视为相等
func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func decimalPtrString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// decimalPtrOrNil 避免向 gorm 更新映射传入携带 nil 的具体类型指针
func decimalPtrOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
