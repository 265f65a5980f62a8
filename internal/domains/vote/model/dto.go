package model

import (
	"time"

	"github.com/google/uuid"

	"awards-backend/internal/shared"
)

// SubmitVoteRequest is the POST /votes body. Email is read only under the email scheme.
type SubmitVoteRequest struct {
	Email      string            `json:"email"`
	Selections map[string]string `json:"selections"`
}

type SubmitVoteResponse struct {
	VoteID      uuid.UUID  `json:"vote_id"`
	Selections  Selections `json:"selections"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Reconciled  bool       `json:"reconciled,omitempty"`
}

type DuplicateVoteResponse struct {
	AlreadyVoted bool       `json:"already_voted"`
	VotedAt      *time.Time `json:"voted_at,omitempty"`
}

type VoteStatusResponse struct {
	HasVoted bool       `json:"has_voted"`
	VotedAt  *time.Time `json:"voted_at,omitempty"`
}

// MyVoteResponse is the caller's own ballot with display names
type MyVoteResponse struct {
	VoteID      uuid.UUID              `json:"vote_id"`
	Selections  Selections             `json:"selections"`
	Lines       []shared.SelectionLine `json:"lines"`
	SubmittedAt time.Time              `json:"submitted_at"`
}

type ListVotersRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize applies paging defaults and bounds
func (r *ListVotersRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = DefaultVotersPageSize
	}
	if r.Limit > MaxVotersPageSize {
		r.Limit = MaxVotersPageSize
	}
}

func (r ListVotersRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
