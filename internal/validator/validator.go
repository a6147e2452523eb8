// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"assetledger/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("asset_category", validateAssetCategory)
		_ = v.RegisterValidation("area_unit", oneOfFold(models.AreaUnits))
		_ = v.RegisterValidation("gold_purity", oneOfFold(models.GoldPurities))
		_ = v.RegisterValidation("premium_frequency", oneOfFold(models.PremiumFrequencies))
	}
}

// jsonFieldName reports field errors under the request's JSON name. Untagged
// fields keep their Go name.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseAssetCategory(fl.Field().String())
	return ok
}

// oneOfFold accepts the empty string or any of choices, ignoring case.
// Pair it with "required" when a value must be present.
func oneOfFold(choices []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		return s == "" || slices.Contains(choices, s)
	}
}
