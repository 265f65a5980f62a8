package service

import (
	"context"

	"awards-backend/internal/domains/category/model"
)

type ServiceInterface interface {
	// Snapshot returns all categories with nominees, served from cache when warm
	Snapshot(ctx context.Context) (*model.Snapshot, error)
	GetNominee(ctx context.Context, id string) (*model.Nominee, error)

	// Admin operations; each invalidates the cached snapshot
	UpsertCategory(ctx context.Context, id string, req model.UpsertCategoryRequest) (*model.Category, error)
	CreateNominee(ctx context.Context, req model.SaveNomineeRequest) (*model.Nominee, error)
	UpdateNominee(ctx context.Context, id string, req model.SaveNomineeRequest) (*model.Nominee, error)
	DeleteNominee(ctx context.Context, id string) error

	Seed(ctx context.Context, categories []model.SeedCategory) error
}
