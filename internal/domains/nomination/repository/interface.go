package repository

import (
	"context"

	"awards-backend/internal/domains/nomination/model"
)

type NominationRepository interface {
	// Create returns model.ErrCategoryNotFound when category_id has no row
	Create(ctx context.Context, nomination *model.Nomination) error
	// List filters by categoryID when non-empty, newest first, and returns the filtered total
	List(ctx context.Context, categoryID string, offset, limit int) ([]model.Nomination, int, error)
}
