package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"awards-backend/internal/domains/engagement/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type postgresEngagementRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEngagementRepository(pool *pgxpool.Pool) EngagementRepository {
	return &postgresEngagementRepository{pool: pool}
}

// =====================================================
// COMMENTS
// =====================================================

func (r *postgresEngagementRepository) CreateComment(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, nominee_id, voter_identity, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query, c.ID, c.NomineeID, c.VoterIdentity, c.Content).Scan(&c.CreatedAt)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return model.ErrNomineeNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresEngagementRepository) ListComments(ctx context.Context, nomineeID string, limit int) ([]model.Comment, error) {
	query := `
		SELECT id, nominee_id, voter_identity, content, created_at
		FROM comments
		WHERE nominee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, nomineeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.NomineeID, &c.VoterIdentity, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Author = model.MaskIdentity(c.VoterIdentity)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// =====================================================
// LIKES
// =====================================================

func (r *postgresEngagementRepository) AddLike(ctx context.Context, nomineeID, voterIdentity string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO likes (nominee_id, voter_identity) VALUES ($1, $2)`,
		nomineeID, voterIdentity,
	)
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return model.ErrAlreadyLiked
	case pgForeignKeyViolation:
		return model.ErrNomineeNotFound
	}
	return fmt.Errorf("failed to add like: %w", err)
}

func (r *postgresEngagementRepository) CountLikes(ctx context.Context, nomineeID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE nominee_id = $1`, nomineeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
