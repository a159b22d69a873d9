package service

import (
	"errors"
	"fmt"

	"go-catat-jualan/pkg/validator"
)

var (
	ErrInvalidCredentials  = errors.New("Invalid username/email or password")
	ErrInvalidToken        = errors.New("Invalid or expired token")
	ErrInvalidResetToken   = errors.New("Link tidak valid atau sudah kadaluarsa")
	ErrUserNotFound        = errors.New("User not found")
	ErrUsernameTaken       = errors.New("Username already registered")
	ErrEmailTaken          = errors.New("Email already registered")
	ErrProductNotFound     = errors.New("Product not found")
	ErrOrderNotFound       = errors.New("Order not found")
	ErrTransactionNotFound = errors.New("Transaction not found")
	ErrForbidden           = errors.New("Akses hanya untuk admin. Set ADMIN_USER_IDS di server.")
)

// ValidationError is a client input problem; handlers answer 400 with its message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// validate runs struct tags and reports the first failure.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return invalid(fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}
	return nil
}
