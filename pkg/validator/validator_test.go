package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDate(t *testing.T) {
	for in, want := range map[string]bool{
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-02-30": false,
		"2024-13-01": false,
		"2024-1-01":  false,
		"20240101":   false,
		"":           false,
	} {
		assert.Equal(t, want, IsDate(in), in)
	}
}

func TestDateOr(t *testing.T) {
	assert.Equal(t, "2024-02-29", DateOr(" 2024-02-29 ", "today"))
	assert.Equal(t, "today", DateOr("2024-02-30", "today"))
	assert.Equal(t, "today", DateOr("", "today"))
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Name   string `validate:"required"`
		Date   string `validate:"omitempty,ymd"`
		Method string `validate:"omitempty,payment_method"`
	}

	assert.Empty(t, ValidateStruct(&req{Name: "a", Date: "2024-01-31", Method: "Transfer"}))

	errs := ValidateStruct(&req{Date: "2024-01-32", Method: "cek"})
	if assert.Len(t, errs, 3) {
		assert.Equal(t, "req.Name", errs[0].FailedField)
		assert.Equal(t, "required", errs[0].Tag)
		assert.Equal(t, "ymd", errs[1].Tag)
		assert.Equal(t, "payment_method", errs[2].Tag)
	}
}
