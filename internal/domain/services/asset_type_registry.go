package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// 明细字段的值类型
const (
	ColumnString  = "string"
	ColumnDecimal = "decimal"
	ColumnDate    = "date"
)

// DetailColumn 描述明细表中的一个可写列
type DetailColumn struct {
	Name string // 列名
	Kind string // 值类型：string, decimal, date
}

// AssetTypeVariant 描述一种资产类型及其明细表结构。
// 创建、更新、查询共用同一份描述，新增资产类型只需在注册表中追加条目。
type AssetTypeVariant struct {
	TypeID      uint
	TypeName    string
	DetailTable string
	Columns     []DetailColumn
}

// 资产类型注册表，键为类型ID，与 asset_types 种子数据一致
var assetTypeVariants = map[uint]*AssetTypeVariant{
	1: {
		TypeID: 1, TypeName: "Property", DetailTable: "property_assets",
		Columns: []DetailColumn{
			{Name: "property_kind", Kind: ColumnString},
			{Name: "ownership_mode", Kind: ColumnString},
			{Name: "address_line1", Kind: ColumnString},
			{Name: "city", Kind: ColumnString},
			{Name: "state", Kind: ColumnString},
			{Name: "country", Kind: ColumnString},
			{Name: "postcode", Kind: ColumnString},
			{Name: "area_sqft", Kind: ColumnDecimal},
			{Name: "purchase_price", Kind: ColumnDecimal},
			{Name: "purchase_dt", Kind: ColumnDate},
		},
	},
	2: {
		TypeID: 2, TypeName: "Stock", DetailTable: "stock_holdings",
		Columns: []DetailColumn{
			{Name: "ticker", Kind: ColumnString},
			{Name: "exchange_code", Kind: ColumnString},
			{Name: "broker_account", Kind: ColumnString},
			{Name: "units", Kind: ColumnDecimal},
			{Name: "avg_cost_price", Kind: ColumnDecimal},
		},
	},
	3: {
		TypeID: 3, TypeName: "Gold", DetailTable: "gold_assets",
		Columns: []DetailColumn{
			{Name: "gold_form", Kind: ColumnString},
			{Name: "weight_grams", Kind: ColumnDecimal},
			{Name: "purity_percent", Kind: ColumnDecimal},
			{Name: "storage_place", Kind: ColumnString},
		},
	},
	4: {
		TypeID: 4, TypeName: "Mutual Fund", DetailTable: "mf_holdings",
		Columns: []DetailColumn{
			{Name: "fund_name", Kind: ColumnString},
			{Name: "folio_number", Kind: ColumnString},
			{Name: "units", Kind: ColumnDecimal},
			{Name: "avg_nav", Kind: ColumnDecimal},
			{Name: "registrar", Kind: ColumnString},
		},
	},
	5: {
		TypeID: 5, TypeName: "Insurance", DetailTable: "insurance_policies",
		Columns: []DetailColumn{
			{Name: "policy_number", Kind: ColumnString},
			{Name: "provider", Kind: ColumnString},
			{Name: "policy_type", Kind: ColumnString},
			{Name: "sum_assured", Kind: ColumnDecimal},
			{Name: "premium_amount", Kind: ColumnDecimal},
			{Name: "premium_freq", Kind: ColumnString},
			{Name: "start_date", Kind: ColumnDate},
			{Name: "end_date", Kind: ColumnDate},
			{Name: "nominee", Kind: ColumnString},
		},
	},
	6: {
		TypeID: 6, TypeName: "Bank Account", DetailTable: "bank_accounts",
		Columns: []DetailColumn{
			{Name: "bank_name", Kind: ColumnString},
			{Name: "account_type", Kind: ColumnString},
			{Name: "account_number", Kind: ColumnString},
			{Name: "ifsc_code", Kind: ColumnString},
			{Name: "branch_name", Kind: ColumnString},
			{Name: "opening_balance", Kind: ColumnDecimal},
			{Name: "current_balance", Kind: ColumnDecimal},
			{Name: "currency", Kind: ColumnString},
		},
	},
}

// LookupAssetType 根据类型ID查找资产类型描述
func LookupAssetType(typeID uint) (*AssetTypeVariant, error) {
	variant, ok := assetTypeVariants[typeID]
	if !ok {
		return nil, ErrInvalidAssetType
	}
	return variant, nil
}

// DecodePayload 将请求中的明细字段过滤为可落库的列值映射。
// 未注册的键直接忽略；空字符串统一落为 NULL；
// 返回的映射只包含请求中出现过的列。
func (v *AssetTypeVariant) DecodePayload(payload map[string]interface{}) (map[string]interface{}, error) {
	decoded := make(map[string]interface{})
	if len(payload) == 0 {
		return decoded, nil
	}

	for _, col := range v.Columns {
		raw, ok := payload[col.Name]
		if !ok {
			continue
		}

		value, err := coerceColumnValue(col, raw)
		if err != nil {
			return nil, err
		}
		decoded[col.Name] = value
	}
	return decoded, nil
}

// coerceColumnValue 按列类型转换单个值，nil 与空字符串统一为 NULL
func coerceColumnValue(col DetailColumn, raw interface{}) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && s == "" {
		return nil, nil
	}

	switch col.Kind {
	case ColumnDecimal:
		switch value := raw.(type) {
		case string:
			d, err := decimal.NewFromString(value)
			if err != nil {
				return nil, fmt.Errorf("字段 %s 的金额格式无效: %q", col.Name, value)
			}
			return d, nil
		case float64:
			return decimal.NewFromFloat(value), nil
		case int:
			return decimal.NewFromInt(int64(value)), nil
		case int64:
			return decimal.NewFromInt(value), nil
		case decimal.Decimal:
			return value, nil
		default:
			return nil, fmt.Errorf("字段 %s 的金额格式无效", col.Name)
		}
	case ColumnDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("字段 %s 的日期格式无效", col.Name)
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("字段 %s 的日期格式无效: %q", col.Name, s)
		}
		return t, nil
	default:
		return fmt.Sprintf("%v", raw), nil
	}
}
