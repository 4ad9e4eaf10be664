package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOptionalDecimalUnmarshal(t *testing.T) {
	type payload struct {
		Value OptionalDecimal `json:"value"`
	}

	// 字段缺失：未提供
	var missing payload
	if err := json.Unmarshal([]byte(`{}`), &missing); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if missing.Value.Set {
		t.Fatal("缺失字段不应标记为 Set")
	}

	// null 与空字符串：显式置空
	for _, raw := range []string{`{"value": null}`, `{"value": ""}`} {
		var p payload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatalf("解析 %s 失败: %v", raw, err)
		}
		if !p.Value.Set || p.Value.Value != nil {
			t.Fatalf("%s 应解析为显式置空: %+v", raw, p.Value)
		}
	}

	// 数字与数字字符串都接受
	for _, raw := range []string{`{"value": 1500.25}`, `{"value": "1500.25"}`} {
		var p payload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatalf("解析 %s 失败: %v", raw, err)
		}
		if !p.Value.Set || p.Value.Value == nil {
			t.Fatalf("%s 应解析出值: %+v", raw, p.Value)
		}
		if !p.Value.Value.Equal(decimal.RequireFromString("1500.25")) {
			t.Fatalf("%s 值不符: %s", raw, p.Value.Value)
		}
	}

	// 非法格式报错
	var bad payload
	if err := json.Unmarshal([]byte(`{"value": "abc"}`), &bad); err == nil {
		t.Fatal("非法金额应报错")
	}
}

func TestOptionalDecimalMarshal(t *testing.T) {
	d := decimal.RequireFromString("99.9")

	data, err := json.Marshal(OptionalDecimal{Set: true, Value: &d})
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if string(data) != `"99.9"` {
		t.Fatalf("序列化结果不符: %s", data)
	}

	data, err = json.Marshal(OptionalDecimal{Set: true})
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("空值序列化结果不符: %s", data)
	}
}
