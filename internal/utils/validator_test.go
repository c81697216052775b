// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCUIT(t *testing.T) {
	valid := []string{
		"20-12345678-6",
		"20123456786",
		"27-00000000-6",
	}
	for _, cuit := range valid {
		assert.True(t, ValidCUIT(cuit), cuit)
	}

	invalid := []string{
		"",
		"20-12345678-5",  // wrong check digit
		"20-1234567-6",   // too short
		"20-123456789-6", // too long
		"2a-12345678-6",  // non-digit
		"20 12345678 6",  // spaces are not separators
	}
	for _, cuit := range invalid {
		assert.False(t, ValidCUIT(cuit), cuit)
	}
}

func TestStrongPasswordValidation(t *testing.T) {
	type form struct {
		Password string `validate:"strong_password"`
	}

	assert.NoError(t, ValidateStruct(&form{Password: "Segura123"}))
	assert.Error(t, ValidateStruct(&form{Password: "corta1A"}))
	assert.Error(t, ValidateStruct(&form{Password: "sinmayuscula1"}))
	assert.Error(t, ValidateStruct(&form{Password: "SINMINUSCULA1"}))
	assert.Error(t, ValidateStruct(&form{Password: "SinNumeros"}))
}

func TestGetValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Cuit  string `validate:"required,cuit"`
	}

	errs := GetValidationErrors(ValidateStruct(&form{Email: "no-es-email", Cuit: "123"}))

	assert.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "Invalid email format", errs[0].Message)
	assert.Equal(t, "Invalid CUIT/CUIL", errs[1].Message)
}
