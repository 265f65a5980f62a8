package model

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInvalidInput       = "ENG001"
	ErrCodeNomineeNotFound    = "ENG002"
	ErrCodeAlreadyLiked       = "ENG003"
	ErrCodeStorageUnavailable = "ENG004"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNomineeNotFound    = errors.New("nominee not found")
	ErrAlreadyLiked       = errors.New("already liked")
	ErrStorageUnavailable = errors.New("engagement storage unavailable")
)

type EngagementError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngagementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EngagementError) Unwrap() error {
	return e.Err
}

func NewInvalidInputError(err error) *EngagementError {
	return &EngagementError{
		Code:    ErrCodeInvalidInput,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrInvalidInput, err),
	}
}

func NewNomineeNotFoundError(id string) *EngagementError {
	return &EngagementError{
		Code:    ErrCodeNomineeNotFound,
		Message: fmt.Sprintf("Nominee %q not found", id),
		Err:     ErrNomineeNotFound,
	}
}

func NewAlreadyLikedError() *EngagementError {
	return &EngagementError{
		Code:    ErrCodeAlreadyLiked,
		Message: "You have already liked this nominee",
		Err:     ErrAlreadyLiked,
	}
}

func NewStorageUnavailableError(err error) *EngagementError {
	return &EngagementError{
		Code:    ErrCodeStorageUnavailable,
		Message: "Please try again in a moment",
		Err:     fmt.Errorf("%w: %w", ErrStorageUnavailable, err),
	}
}
