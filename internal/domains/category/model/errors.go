package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeCategoryNotFound   = "CAT001"
	ErrCodeNomineeNotFound    = "CAT002"
	ErrCodeInvalidInput       = "CAT003"
	ErrCodeStorageUnavailable = "CAT004"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrNomineeNotFound    = errors.New("nominee not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("category storage unavailable")
	ErrDuplicateNomineeID = errors.New("nominee id already exists")
)

// CategoryError carries a stable code for the HTTP layer
type CategoryError struct {
	Code    string
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

func NewCategoryNotFoundError(id string) *CategoryError {
	return &CategoryError{
		Code:    ErrCodeCategoryNotFound,
		Message: fmt.Sprintf("Category %q not found", id),
		Err:     ErrCategoryNotFound,
	}
}

func NewNomineeNotFoundError(id string) *CategoryError {
	return &CategoryError{
		Code:    ErrCodeNomineeNotFound,
		Message: fmt.Sprintf("Nominee %q not found", id),
		Err:     ErrNomineeNotFound,
	}
}

func NewInvalidInputError(err error) *CategoryError {
	return &CategoryError{
		Code:    ErrCodeInvalidInput,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrInvalidInput, err),
	}
}

func NewStorageUnavailableError(err error) *CategoryError {
	return &CategoryError{
		Code:    ErrCodeStorageUnavailable,
		Message: "Categories are temporarily unavailable, please try again",
		Err:     fmt.Errorf("%w: %w", ErrStorageUnavailable, err),
	}
}
