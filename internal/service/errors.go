package service

import (
	"errors"
	"fmt"

	"go-mrp-api/pkg/validator"
)

// Business errors shared across services. Handlers map these onto HTTP
// status codes with errors.Is; anything not wrapped in one of them is
// treated as an internal failure.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrJobNotFound      = errors.New("production job not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrBOMNotFound      = errors.New("bill of materials not found")

	ErrDuplicateSKU      = errors.New("SKU already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")

	ErrValidation        = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrInvalidTransition = errors.New("status transition not allowed")

	ErrProductReferenced = errors.New("product is referenced by orders, jobs or logs")
	ErrOrderHasHistory   = errors.New("order has completed production jobs")
	ErrJobCompleted      = errors.New("completed jobs cannot be deleted")
	ErrBOMReleased       = errors.New("released BOMs cannot be modified")
)

// invalidInput wraps a message in ErrValidation so handlers answer 400.
func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// validateInput runs struct validation and tags failures as ErrValidation.
func validateInput(data interface{}) error {
	if err := validator.FirstError(data); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
