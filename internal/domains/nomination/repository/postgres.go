package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"awards-backend/internal/domains/nomination/model"
)

const pgForeignKeyViolation = "23503"

type postgresNominationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNominationRepository(pool *pgxpool.Pool) NominationRepository {
	return &postgresNominationRepository{pool: pool}
}

func (r *postgresNominationRepository) Create(ctx context.Context, n *model.Nomination) error {
	query := `
		INSERT INTO nominations (id, nominee_name, nominee_org, category_id, reason, nominator_name, nominator_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		n.ID, n.NomineeName, n.NomineeOrg, n.CategoryID, n.Reason, n.NominatorName, n.NominatorEmail,
	).Scan(&n.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create nomination: %w", err)
	}
	return nil
}

func (r *postgresNominationRepository) List(ctx context.Context, categoryID string, offset, limit int) ([]model.Nomination, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM nominations WHERE ($1 = '' OR category_id = $1)`
	if err := r.pool.QueryRow(ctx, countQuery, categoryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count nominations: %w", err)
	}

	query := `
		SELECT id, nominee_name, nominee_org, category_id, reason, nominator_name, nominator_email, created_at
		FROM nominations
		WHERE ($1 = '' OR category_id = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list nominations: %w", err)
	}
	defer rows.Close()

	result := make([]model.Nomination, 0, limit)
	for rows.Next() {
		var n model.Nomination
		if err := rows.Scan(
			&n.ID, &n.NomineeName, &n.NomineeOrg, &n.CategoryID, &n.Reason,
			&n.NominatorName, &n.NominatorEmail, &n.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan nomination: %w", err)
		}
		result = append(result, n)
	}
	return result, total, rows.Err()
}
