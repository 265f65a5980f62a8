package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"awards-backend/internal/domains/vote/model"
)

const (
	pgUniqueViolation  = "23505"
	voterIdentityIndex = "votes_voter_identity_key"
)

type postgresVoteRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresVoteRepository(pool *pgxpool.Pool) VoteRepository {
	return &postgresVoteRepository{pool: pool}
}

func (r *postgresVoteRepository) Insert(ctx context.Context, vote *model.Vote) error {
	selections, err := json.Marshal(vote.Selections)
	if err != nil {
		return fmt.Errorf("encode selections: %w", err)
	}

	query := `
		INSERT INTO votes (id, voter_identity, identity_scheme, selections)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = r.pool.QueryRow(ctx, query,
		vote.ID, vote.VoterIdentity, vote.IdentityScheme, string(selections),
	).Scan(&vote.CreatedAt)
	if err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// classifyWriteError sorts insert failures into duplicate, definitely
// not written, and unknown.
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation && (pgErr.ConstraintName == "" || pgErr.ConstraintName == voterIdentityIndex) {
			return model.ErrDuplicateVote
		}
		// the server rejected the statement, so nothing committed
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %w", model.ErrWriteOutcomeUnknown, err)
}

func (r *postgresVoteRepository) GetByVoter(ctx context.Context, voterIdentity string) (*model.Vote, error) {
	query := `
		SELECT id, voter_identity, identity_scheme, selections, created_at
		FROM votes
		WHERE voter_identity = $1
	`
	vote, err := scanVote(r.pool.QueryRow(ctx, query, voterIdentity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

func (r *postgresVoteRepository) Tally(ctx context.Context) ([]model.TallyRow, error) {
	query := `
		SELECT s.key, s.value, COUNT(*)
		FROM votes v, jsonb_each_text(v.selections) AS s
		GROUP BY s.key, s.value
		ORDER BY s.key, COUNT(*) DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	result := make([]model.TallyRow, 0)
	for rows.Next() {
		var row model.TallyRow
		if err := rows.Scan(&row.CategoryID, &row.NomineeID, &row.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *postgresVoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (r *postgresVoteRepository) List(ctx context.Context, offset, limit int) ([]model.Vote, error) {
	query := `
		SELECT id, voter_identity, identity_scheme, selections, created_at
		FROM votes
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return collectVotes(rows, limit)
}

func (r *postgresVoteRepository) ListBefore(ctx context.Context, cursor *model.VoteCursor, limit int) ([]model.Vote, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor == nil {
		query := `
			SELECT id, voter_identity, identity_scheme, selections, created_at
			FROM votes
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`
		rows, err = r.pool.Query(ctx, query, limit)
	} else {
		query := `
			SELECT id, voter_identity, identity_scheme, selections, created_at
			FROM votes
			WHERE (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`
		rows, err = r.pool.Query(ctx, query, limit, cursor.CreatedAt, cursor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return collectVotes(rows, limit)
}

func collectVotes(rows pgx.Rows, limit int) ([]model.Vote, error) {
	defer rows.Close()

	votes := make([]model.Vote, 0, limit)
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, *vote)
	}
	return votes, rows.Err()
}

func scanVote(row pgx.Row) (*model.Vote, error) {
	var (
		vote model.Vote
		raw  []byte
	)
	if err := row.Scan(&vote.ID, &vote.VoterIdentity, &vote.IdentityScheme, &raw, &vote.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &vote.Selections); err != nil {
		return nil, fmt.Errorf("decode selections: %w", err)
	}
	return &vote, nil
}
