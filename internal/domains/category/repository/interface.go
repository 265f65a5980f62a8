package repository

import (
	"context"

	"awards-backend/internal/domains/category/model"
)

type CategoryRepository interface {
	// ListWithNominees returns every category ordered by sort_order, with nominees by name
	ListWithNominees(ctx context.Context) ([]model.CategoryWithNominees, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	UpsertCategory(ctx context.Context, category *model.Category) error

	GetNominee(ctx context.Context, id string) (*model.Nominee, error)
	CreateNominee(ctx context.Context, nominee *model.Nominee) error
	UpdateNominee(ctx context.Context, nominee *model.Nominee) error
	DeleteNominee(ctx context.Context, id string) error

	// Seed upserts categories and nominees in one transaction
	Seed(ctx context.Context, categories []model.CategoryWithNominees) error
}
