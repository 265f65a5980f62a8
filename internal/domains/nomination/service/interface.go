package service

import (
	"context"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/nomination/model"
)

type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catmodel.Snapshot, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateNominationRequest) (*model.Nomination, error)
	List(ctx context.Context, req model.ListNominationsRequest) ([]model.Nomination, int, error)
}
