package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInvalidInput       = "NOM001"
	ErrCodeCategoryNotFound   = "NOM002"
	ErrCodeStorageUnavailable = "NOM003"
)

var (
	ErrInvalidInput       = errors.New("invalid nomination")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrStorageUnavailable = errors.New("nomination storage unavailable")
)

type NominationError struct {
	Code    string
	Message string
	Err     error
}

func (e *NominationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *NominationError) Unwrap() error {
	return e.Err
}

func NewInvalidInputError(err error) *NominationError {
	return &NominationError{
		Code:    ErrCodeInvalidInput,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrInvalidInput, err),
	}
}

func NewCategoryNotFoundError(id string) *NominationError {
	return &NominationError{
		Code:    ErrCodeCategoryNotFound,
		Message: fmt.Sprintf("Category %q does not exist", id),
		Err:     ErrCategoryNotFound,
	}
}

func NewStorageUnavailableError(err error) *NominationError {
	return &NominationError{
		Code:    ErrCodeStorageUnavailable,
		Message: "Nominations are temporarily unavailable, please try again",
		Err:     fmt.Errorf("%w: %w", ErrStorageUnavailable, err),
	}
}
