package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Product codes follow the catalog convention: 2-6 uppercase letters followed
// by digits, e.g. CAF001, FRI010, C1.
var productCodeRe = regexp.MustCompile(`^[A-Z]{1,6}[0-9]{1,6}$`)

// ProductCodeValidator backs the "productcode" binding tag.
func ProductCodeValidator(fl validator.FieldLevel) bool {
	return productCodeRe.MatchString(fl.Field().String())
}

// RegisterCustomValidators installs the engine's custom binding validators.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("productcode", ProductCodeValidator)
}
