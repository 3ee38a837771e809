// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom validators on v.
func RegisterOn(v *validator.Validate) {
	// Present decimals to the validator as strings so tags apply to them
	// instead of recursing into the struct.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("decimal_gt0", validateDecimalGT0)
	_ = v.RegisterValidation("decimal_gte0", validateDecimalGTE0)
	_ = v.RegisterValidation("phase", validatePhase)
	_ = v.RegisterValidation("debt_type", validateDebtType)
	_ = v.RegisterValidation("contract_type", validateContractType)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.IsPositive() && d.Equal(domain.RoundMoney(d))
}

func validateDecimalGTE0(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative()
}

func validatePhase(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "building", "operating":
		return true
	}
	return false
}

func validateDebtType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "owed_to_us", "owed_by_us":
		return true
	}
	return false
}

func validateContractType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "full-time", "part-time", "contract":
		return true
	}
	return false
}
