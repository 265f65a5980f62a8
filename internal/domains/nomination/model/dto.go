package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MinReasonLength = 20
	MaxReasonLength = 2000

	DefaultPageSize = 20
	MaxPageSize     = 100
)

type CreateNominationRequest struct {
	NomineeName    string `json:"nominee_name"`
	NomineeOrg     string `json:"nominee_org"`
	CategoryID     string `json:"category_id"`
	Reason         string `json:"reason"`
	NominatorName  string `json:"nominator_name"`
	NominatorEmail string `json:"nominator_email"`
}

func (r *CreateNominationRequest) Validate() error {
	r.NomineeName = strings.TrimSpace(r.NomineeName)
	r.NomineeOrg = strings.TrimSpace(r.NomineeOrg)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.Reason = strings.TrimSpace(r.Reason)
	r.NominatorName = strings.TrimSpace(r.NominatorName)
	r.NominatorEmail = strings.ToLower(strings.TrimSpace(r.NominatorEmail))

	return validation.ValidateStruct(r,
		validation.Field(&r.NomineeName, validation.Required.Error("Nominee name is required"), validation.Length(1, 200)),
		validation.Field(&r.NomineeOrg, validation.Length(0, 200)),
		validation.Field(&r.CategoryID, validation.Required.Error("Please select a category")),
		validation.Field(&r.Reason,
			validation.Required.Error("Reason is required"),
			validation.RuneLength(MinReasonLength, MaxReasonLength).Error("Reason must be at least 20 characters"),
		),
		validation.Field(&r.NominatorName, validation.Required.Error("Your name is required"), validation.Length(1, 200)),
		validation.Field(&r.NominatorEmail, validation.Required.Error("Your email is required"), is.EmailFormat.Error("Invalid email address")),
	)
}

type ListNominationsRequest struct {
	CategoryID string `form:"category_id"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (r *ListNominationsRequest) Normalize() {
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = DefaultPageSize
	}
	if r.Limit > MaxPageSize {
		r.Limit = MaxPageSize
	}
}

func (r ListNominationsRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
