package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func TestAssetIsActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	date := func(y int, m time.Month, d int) *datatypes.Date {
		v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
		return &v
	}

	tests := []struct {
		name string
		end  *datatypes.Date
		want bool
	}{
		{"no end date", nil, true},
		{"ends today", date(2025, 6, 1), true},
		{"ends later", date(2026, 1, 1), true},
		{"ended yesterday", date(2025, 5, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Asset{EndDate: tt.end}
			if got := a.IsActive(now); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssetMarshalJSON(t *testing.T) {
	past := datatypes.Date(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name         string
		asset        Asset
		wantActive   bool
		wantLocation bool
	}{
		{
			name:         "open land holding",
			asset:        Asset{Name: "Plot", Category: CategoryLand, Value: decimal.NewFromInt(100)},
			wantActive:   true,
			wantLocation: true,
		},
		{
			name:       "matured deposit",
			asset:      Asset{Name: "FD", Category: CategoryFixedDeposit, Value: decimal.NewFromInt(100), EndDate: &past},
			wantActive: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pointer and value forms must render the same document.
			for _, v := range []interface{}{tt.asset, &tt.asset} {
				raw, err := json.Marshal(v)
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				var got map[string]interface{}
				if err := json.Unmarshal(raw, &got); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if got["is_active"] != tt.wantActive {
					t.Errorf("is_active = %v, want %v", got["is_active"], tt.wantActive)
				}
				if got["has_location"] != tt.wantLocation {
					t.Errorf("has_location = %v, want %v", got["has_location"], tt.wantLocation)
				}
				if got["name"] != tt.asset.Name || got["value"] != "100" {
					t.Errorf("stored columns missing from %s", raw)
				}
			}
		})
	}
}
