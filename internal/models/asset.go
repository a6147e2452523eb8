package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AssetCategory is the fixed set of holdings the tracker understands.
type AssetCategory string

const (
	CategoryMutualFund       AssetCategory = "mutual_fund"
	CategoryStock            AssetCategory = "stock"
	CategoryLand             AssetCategory = "land"
	CategoryFlat             AssetCategory = "flat"
	CategoryFixedDeposit     AssetCategory = "fixed_deposit"
	CategoryMedicalInsurance AssetCategory = "medical_insurance"
	CategoryLifeInsurance    AssetCategory = "life_insurance"
	CategoryGold             AssetCategory = "gold"
)

// AssetCategories lists every category in display order.
var AssetCategories = []AssetCategory{
	CategoryMutualFund,
	CategoryStock,
	CategoryLand,
	CategoryFlat,
	CategoryFixedDeposit,
	CategoryMedicalInsurance,
	CategoryLifeInsurance,
	CategoryGold,
}

var categoryLabels = map[AssetCategory]string{
	CategoryMutualFund:       "Mutual Funds",
	CategoryStock:            "Stocks",
	CategoryLand:             "Lands",
	CategoryFlat:             "Flats",
	CategoryFixedDeposit:     "Fixed Deposit",
	CategoryMedicalInsurance: "Medical Insurance",
	CategoryLifeInsurance:    "Life Insurance",
	CategoryGold:             "Gold",
}

var categoryColors = map[AssetCategory]string{
	CategoryMutualFund:       "#3B82F6",
	CategoryStock:            "#10B981",
	CategoryLand:             "#8B5CF6",
	CategoryFlat:             "#F59E0B",
	CategoryFixedDeposit:     "#EF4444",
	CategoryMedicalInsurance: "#EC4899",
	CategoryLifeInsurance:    "#06B6D4",
	CategoryGold:             "#F97316",
}

const fallbackCategoryColor = "#6B7280"

// ParseAssetCategory accepts the stored form ("mutual_fund") as well as the
// upper-case form ("MUTUAL_FUND").
func ParseAssetCategory(s string) (AssetCategory, bool) {
	c := AssetCategory(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Valid reports whether c is one of the fixed categories.
func (c AssetCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable category name.
func (c AssetCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Color returns the chart color for the category.
func (c AssetCategory) Color() string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return fallbackCategoryColor
}

// HasLocation reports whether coordinates and area are meaningful for the category.
func (c AssetCategory) HasLocation() bool {
	return c == CategoryLand || c == CategoryFlat
}

// Optional enumerations for category-specific detail fields.
var (
	AreaUnits          = []string{"sqft", "sqm", "acres", "hectares", "cents", "guntha"}
	GoldPurities       = []string{"24k", "22k", "18k", "14k"}
	PremiumFrequencies = []string{"monthly", "quarterly", "half_yearly", "yearly", "one_time"}
)

// Asset is one financial holding owned by exactly one user.
type Asset struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Category    AssetCategory   `gorm:"size:50;not null;index" json:"category"`
	Value       decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"value" swaggertype:"string" example:"1250000.50"`
	Description string          `json:"description"`
	StartDate   *datatypes.Date `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *datatypes.Date `gorm:"type:date" json:"end_date,omitempty"`

	// Land and flats
	Latitude  decimal.NullDecimal `gorm:"type:numeric(10,7)" json:"latitude"`
	Longitude decimal.NullDecimal `gorm:"type:numeric(10,7)" json:"longitude"`
	Area      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"area"`
	AreaUnit  string              `gorm:"size:20" json:"area_unit,omitempty"`

	// Gold
	WeightGrams decimal.NullDecimal `gorm:"type:numeric(10,3)" json:"weight_grams"`
	GoldPurity  string              `gorm:"size:10" json:"gold_purity,omitempty"`

	// Stocks and mutual funds
	Units                decimal.NullDecimal `gorm:"type:numeric(15,4)" json:"units"`
	PurchasePricePerUnit decimal.NullDecimal `gorm:"type:numeric(12,4)" json:"purchase_price_per_unit"`
	CurrentNAV           decimal.NullDecimal `gorm:"column:current_nav;type:numeric(12,4)" json:"current_nav"`
	FolioNumber          string              `gorm:"size:50" json:"folio_number,omitempty"`

	// Insurance
	SumAssured       decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"sum_assured"`
	PremiumAmount    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"premium_amount"`
	PremiumFrequency string              `gorm:"size:20" json:"premium_frequency,omitempty"`
	Nominee          string              `gorm:"size:255" json:"nominee,omitempty"`

	// Fixed deposits
	InterestRate   decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"interest_rate"`
	MaturityAmount decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"maturity_amount"`

	PolicyNumber string `gorm:"size:100" json:"policy_number,omitempty"`
	Institution  string `gorm:"size:255" json:"institution,omitempty"`

	Documents []AssetDocument `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

// IsActive reports whether the asset has not yet passed its end date.
func (a *Asset) IsActive(now time.Time) bool {
	if a.EndDate == nil {
		return true
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := time.Time(*a.EndDate).Date()
	return !time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Before(today)
}

// MarshalJSON adds the derived is_active and has_location flags to the
// stored columns.
func (a Asset) MarshalJSON() ([]byte, error) {
	type asset Asset
	return json.Marshal(struct {
		asset
		IsActive    bool `json:"is_active"`
		HasLocation bool `json:"has_location"`
	}{asset(a), a.IsActive(time.Now()), a.Category.HasLocation()})
}
