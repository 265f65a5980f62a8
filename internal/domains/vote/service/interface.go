package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	catmodel "awards-backend/internal/domains/category/model"
	"awards-backend/internal/domains/vote/model"
	"awards-backend/internal/shared/identity"
)

// SnapshotProvider supplies the current categories and nominees
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catmodel.Snapshot, error)
}

// SubmitResult is a recorded vote. Reconciled is set when the write
// outcome was ambiguous and the vote was confirmed by reading it back.
type SubmitResult struct {
	Vote       *model.Vote
	Reconciled bool
}

type ServiceInterface interface {
	// Submit validates and records a ballot. Errors are *model.VoteError
	// with a validation, duplicate, identity or storage code.
	Submit(ctx context.Context, voter identity.Voter, selections map[string]string) (*SubmitResult, error)
	Status(ctx context.Context, voter identity.Voter) (*model.VoteStatusResponse, error)
	// MyVote returns the caller's stored ballot, or a VOTE005 error if none
	MyVote(ctx context.Context, voter identity.Voter) (*model.MyVoteResponse, error)
	// Results is the cached tally. It carries counts only and is safe to publish.
	Results(ctx context.Context) (*model.Tally, error)

	// Admin
	Tally(ctx context.Context, fresh bool) (*model.Tally, error)
	RefreshTally(ctx context.Context) (*model.Tally, error)
	ListVoters(ctx context.Context, req model.ListVotersRequest) ([]model.Vote, int, error)
	ExportResults(ctx context.Context) (*excelize.File, error)
}
