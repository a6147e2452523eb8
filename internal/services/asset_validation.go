package services

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/models"
)

var (
	hundred      = decimal.NewFromInt(100)
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// numericColumn is the precision and scale of a numeric column.
type numericColumn struct {
	maxDigits int32
	places    int32
}

// numericColumns mirrors the numeric column types of the assets table.
var numericColumns = map[string]numericColumn{
	"value":                   {15, 2},
	"latitude":                {10, 7},
	"longitude":               {10, 7},
	"area":                    {12, 2},
	"weight_grams":            {10, 3},
	"units":                   {15, 4},
	"purchase_price_per_unit": {12, 4},
	"current_nav":             {12, 4},
	"sum_assured":             {15, 2},
	"premium_amount":          {12, 2},
	"interest_rate":           {5, 2},
	"maturity_amount":         {15, 2},
}

// checkPrecision rejects values the column would round or overflow on.
func checkPrecision(errs fieldErrors, field string, d decimal.Decimal) {
	col, ok := numericColumns[field]
	if !ok {
		return
	}
	whole := col.maxDigits - col.places
	switch {
	case !d.Equal(d.Round(col.places)):
		errs.add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", col.places))
	case d.Abs().GreaterThanOrEqual(decimal.New(1, whole)):
		errs.add(field, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", whole))
	}
}

// fieldErrors collects one message per field; the first problem wins.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.WithFields(apperrors.ErrValidation, f)
}

// validateAssetInput applies every field and cross-field rule and returns a
// VALIDATION_ERROR carrying all problems at once.
func validateAssetInput(in *AssetInput) error {
	errs := fieldErrors{}

	switch {
	case in.Name == "":
		errs.add("name", "This field is required.")
	case len([]rune(in.Name)) > 255:
		errs.add("name", "Ensure this value has at most 255 characters.")
	}

	if !in.Category.Valid() {
		errs.add("category", "Select a valid choice.")
	}

	if in.Value.IsNegative() {
		errs.add("value", "Ensure this value is greater than or equal to 0.")
	}
	checkPrecision(errs, "value", in.Value)

	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		errs.add("end_date", "End date cannot be before start date.")
	}

	// Coordinates are optional on every category and only shown for land and flats.
	if in.Latitude.Valid {
		if in.Latitude.Decimal.Abs().GreaterThan(maxLatitude) {
			errs.add("latitude", "Latitude must be between -90 and 90.")
		}
		checkPrecision(errs, "latitude", in.Latitude.Decimal)
	}
	if in.Longitude.Valid {
		if in.Longitude.Decimal.Abs().GreaterThan(maxLongitude) {
			errs.add("longitude", "Longitude must be between -180 and 180.")
		}
		checkPrecision(errs, "longitude", in.Longitude.Decimal)
	}

	nonNegative := map[string]decimal.NullDecimal{
		"area":                    in.Area,
		"weight_grams":            in.WeightGrams,
		"units":                   in.Units,
		"purchase_price_per_unit": in.PurchasePricePerUnit,
		"current_nav":             in.CurrentNAV,
		"sum_assured":             in.SumAssured,
		"premium_amount":          in.PremiumAmount,
		"interest_rate":           in.InterestRate,
		"maturity_amount":         in.MaturityAmount,
	}
	for field, v := range nonNegative {
		if !v.Valid {
			continue
		}
		if v.Decimal.IsNegative() {
			errs.add(field, "Ensure this value is greater than or equal to 0.")
		}
		checkPrecision(errs, field, v.Decimal)
	}
	if in.InterestRate.Valid && in.InterestRate.Decimal.GreaterThan(hundred) {
		errs.add("interest_rate", "Ensure this value is less than or equal to 100.")
	}

	checkChoice(errs, "area_unit", in.AreaUnit, models.AreaUnits)
	checkChoice(errs, "gold_purity", in.GoldPurity, models.GoldPurities)
	checkChoice(errs, "premium_frequency", in.PremiumFrequency, models.PremiumFrequencies)

	return errs.err()
}

func checkChoice(errs fieldErrors, field, value string, choices []string) {
	if value != "" && !slices.Contains(choices, value) {
		errs.add(field, "Select a valid choice.")
	}
}
