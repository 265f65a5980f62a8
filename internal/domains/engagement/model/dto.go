package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxCommentLength     = 1000
	DefaultCommentsLimit = 50
	MaxCommentsLimit     = 200
)

// CreateCommentRequest; Email is only read under the email identity scheme
type CreateCommentRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

func (r *CreateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required.Error("Comment cannot be empty"),
			validation.RuneLength(1, MaxCommentLength).Error("Comment must be at most 1000 characters"),
		),
	)
}

// LikeRequest; Email is only read under the email identity scheme
type LikeRequest struct {
	Email string `json:"email"`
}
