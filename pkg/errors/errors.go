package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrMissingToken       = errors.New("authentication required")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username or email already registered")

	ErrItemNotFound     = errors.New("item not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrSKUNotFound      = errors.New("sku not found")
	ErrSKUAlreadyExists = errors.New("sku already exists for this item and location")
	ErrUPCAlreadyExists = errors.New("item with this upc already exists")
	ErrAlertNotFound    = errors.New("alert not found")

	ErrListNotFound         = errors.New("shopping list not found or access denied")
	ErrListItemNotFound     = errors.New("item not found in shopping list")
	ErrListItemAlreadyAdded = errors.New("item is already on the shopping list")

	ErrScannerNotAssociated = errors.New("scanner is not currently associated")
)

// AppError carries a machine-readable code alongside the user-facing message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
