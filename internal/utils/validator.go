// internal/utils/validator.go
package utils

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("cuit", validateCUIT)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

// validateCUIT checks an AFIP CUIT/CUIL: 11 digits (hyphens optional) with a
// mod-11 check digit.
func validateCUIT(fl validator.FieldLevel) bool {
	return ValidCUIT(fl.Field().String())
}

var cuitWeights = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

func ValidCUIT(cuit string) bool {
	digits := strings.ReplaceAll(cuit, "-", "")
	if len(digits) != 11 {
		return false
	}

	sum := 0
	for i, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
		if i < 10 {
			sum += int(r-'0') * cuitWeights[i]
		}
	}

	verificador := 11 - sum%11
	switch verificador {
	case 11:
		verificador = 0
	case 10:
		verificador = 9
	}

	return verificador == int(digits[10]-'0')
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "cuit":
		return "Invalid CUIT/CUIL"
	case "strong_password":
		return "Password must contain at least 8 characters with uppercase, lowercase and number"
	default:
		return e.Field() + " is invalid"
	}
}
