package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation         = "VOTE001"
	ErrCodeDuplicateVote      = "VOTE002"
	ErrCodeStorageUnavailable = "VOTE003"
	ErrCodeInvalidIdentity    = "VOTE004"
	ErrCodeVoteNotFound       = "VOTE005"
)

var (
	ErrValidation         = errors.New("invalid ballot")
	ErrDuplicateVote      = errors.New("voter has already voted")
	ErrStorageUnavailable = errors.New("vote storage unavailable")
	ErrInvalidIdentity    = errors.New("invalid voter identity")
	ErrVoteNotFound       = errors.New("vote not found")

	// ErrWriteOutcomeUnknown means the insert may or may not have committed
	// (timeout, dropped connection mid-statement). Callers must re-read
	// before reporting anything.
	ErrWriteOutcomeUnknown = errors.New("vote write outcome unknown")
)

// NoSelectionError is returned for a ballot with nothing left after normalization
type NoSelectionError struct{}

func (NoSelectionError) Error() string {
	return "ballot must contain at least one selection"
}

func (NoSelectionError) Unwrap() error { return ErrValidation }

// UnknownNomineeError is returned when a nominee is not in the category it was submitted under
type UnknownNomineeError struct {
	CategoryID string
	NomineeID  string
}

func (e UnknownNomineeError) Error() string {
	return fmt.Sprintf("nominee %q is not in category %q", e.NomineeID, e.CategoryID)
}

func (UnknownNomineeError) Unwrap() error { return ErrValidation }

// VoteError carries a stable code for the HTTP layer
type VoteError struct {
	Code    string
	Message string
	Err     error
	// Existing is the stored vote when Code is ErrCodeDuplicateVote and it was read back
	Existing *Vote
}

func (e *VoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *VoteError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error) *VoteError {
	return &VoteError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}

func NewDuplicateVoteError(existing *Vote) *VoteError {
	return &VoteError{
		Code:     ErrCodeDuplicateVote,
		Message:  "You have already voted",
		Err:      ErrDuplicateVote,
		Existing: existing,
	}
}

func NewStorageUnavailableError(err error) *VoteError {
	return &VoteError{
		Code:    ErrCodeStorageUnavailable,
		Message: "Voting is temporarily unavailable, please try again",
		Err:     fmt.Errorf("%w: %w", ErrStorageUnavailable, err),
	}
}

func NewInvalidIdentityError(err error) *VoteError {
	return &VoteError{
		Code:    ErrCodeInvalidIdentity,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrInvalidIdentity, err),
	}
}

func NewVoteNotFoundError() *VoteError {
	return &VoteError{
		Code:    ErrCodeVoteNotFound,
		Message: "No vote recorded for this voter",
		Err:     ErrVoteNotFound,
	}
}
