package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpsertCategoryRequest creates or replaces a category by id
type UpsertCategoryRequest struct {
	Title     string `json:"title"`
	TBD       bool   `json:"tbd"`
	SortOrder int    `json:"sort_order"`
}

func (r *UpsertCategoryRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.SortOrder, validation.Min(0)),
	)
}

// SaveNomineeRequest is used for both create and update
type SaveNomineeRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Photo        string `json:"photo"`
	AIHint       string `json:"ai_hint"`
	CategoryID   string `json:"category_id"`
}

func (r *SaveNomineeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Organization = strings.TrimSpace(r.Organization)
	r.Photo = strings.TrimSpace(r.Photo)
	r.CategoryID = strings.TrimSpace(r.CategoryID)

	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("Name is required"), validation.Length(1, 200)),
		validation.Field(&r.Organization, validation.Required.Error("Organization is required"), validation.Length(1, 200)),
		validation.Field(&r.Photo, is.URL.Error("Must be a valid URL")),
		validation.Field(&r.AIHint, validation.Length(0, 100)),
		validation.Field(&r.CategoryID, validation.Required.Error("Category is required")),
	)
}

// PhotoOrDefault falls back to the placeholder image
func (r *SaveNomineeRequest) PhotoOrDefault() string {
	if r.Photo == "" {
		return DefaultPhotoURL
	}
	return r.Photo
}

// SeedCategory is one entry of the launch list loaded by cmd/seed
type SeedCategory struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	TBD      bool          `json:"tbd"`
	Nominees []SeedNominee `json:"nominees"`
}

type SeedNominee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Photo        string `json:"photo"`
	AIHint       string `json:"aiHint"`
}
