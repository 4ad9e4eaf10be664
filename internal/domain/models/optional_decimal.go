package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OptionalDecimal 区分"未提供"、"显式置空"与"有值"三种状态的金额字段。
// 请求体中缺失该字段时 Set 为 false；字段为 null 或空字符串时 Set 为
// true 且 Value 为 nil；否则解析为 decimal 值。
type OptionalDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

// UnmarshalJSON 实现 json.Unmarshaler。
// 空字符串与 null 等价，统一落库为 NULL。
func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		o.Value = nil
		return nil
	}

	// 字符串形式："" 视为置空，其余按数字解析
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s == "" {
			o.Value = nil
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("无效的金额格式: %q", s)
		}
		o.Value = &d
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return fmt.Errorf("无效的金额格式: %s", string(trimmed))
	}
	o.Value = &d
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (o OptionalDecimal) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
