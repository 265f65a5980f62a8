package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"awards-backend/internal/domains/category/model"
	"awards-backend/pkg/database"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &postgresCategoryRepository{pool: pool}
}

// =====================================================
// CATEGORIES
// =====================================================

func (r *postgresCategoryRepository) ListWithNominees(ctx context.Context) ([]model.CategoryWithNominees, error) {
	query := `
		SELECT c.id, c.title, c.tbd, c.sort_order, c.created_at, c.updated_at,
		       n.id, n.name, n.organization, n.photo, n.ai_hint, n.created_at, n.updated_at
		FROM categories c
		LEFT JOIN nominees n ON n.category_id = c.id
		ORDER BY c.sort_order, c.title, n.name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	result := make([]model.CategoryWithNominees, 0)
	index := make(map[string]int)

	for rows.Next() {
		var c model.Category
		var (
			nID, nName, nOrg, nPhoto, nHint *string
			nCreated, nUpdated              *time.Time
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &c.TBD, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
			&nID, &nName, &nOrg, &nPhoto, &nHint, &nCreated, &nUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}

		i, ok := index[c.ID]
		if !ok {
			result = append(result, model.CategoryWithNominees{Category: c, Nominees: []model.Nominee{}})
			i = len(result) - 1
			index[c.ID] = i
		}

		if nID != nil {
			result[i].Nominees = append(result[i].Nominees, model.Nominee{
				ID:           *nID,
				Name:         deref(nName),
				Organization: deref(nOrg),
				Photo:        deref(nPhoto),
				AIHint:       deref(nHint),
				CategoryID:   c.ID,
				CreatedAt:    derefTime(nCreated),
				UpdatedAt:    derefTime(nUpdated),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return result, nil
}

func (r *postgresCategoryRepository) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	query := `SELECT id, title, tbd, sort_order, created_at, updated_at FROM categories WHERE id = $1`

	c := &model.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Title, &c.TBD, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *postgresCategoryRepository) UpsertCategory(ctx context.Context, c *model.Category) error {
	return upsertCategory(ctx, r.pool, c)
}

type execQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertCategory(ctx context.Context, db execQuerier, c *model.Category) error {
	query := `
		INSERT INTO categories (id, title, tbd, sort_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, tbd = EXCLUDED.tbd, sort_order = EXCLUDED.sort_order, updated_at = NOW()
		RETURNING created_at, updated_at
	`
	if err := db.QueryRow(ctx, query, c.ID, c.Title, c.TBD, c.SortOrder).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}
	return nil
}

// =====================================================
// NOMINEES
// =====================================================

func (r *postgresCategoryRepository) GetNominee(ctx context.Context, id string) (*model.Nominee, error) {
	query := `
		SELECT id, name, organization, photo, ai_hint, category_id, created_at, updated_at
		FROM nominees WHERE id = $1
	`

	n := &model.Nominee{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Name, &n.Organization, &n.Photo, &n.AIHint, &n.CategoryID, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNomineeNotFound
		}
		return nil, fmt.Errorf("failed to get nominee: %w", err)
	}
	return n, nil
}

func (r *postgresCategoryRepository) CreateNominee(ctx context.Context, n *model.Nominee) error {
	return insertNominee(ctx, r.pool, n, false)
}

func insertNominee(ctx context.Context, db execQuerier, n *model.Nominee, upsert bool) error {
	query := `
		INSERT INTO nominees (id, name, organization, photo, ai_hint, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if upsert {
		query += `
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, organization = EXCLUDED.organization, photo = EXCLUDED.photo,
		    ai_hint = EXCLUDED.ai_hint, category_id = EXCLUDED.category_id, updated_at = NOW()`
	}
	query += ` RETURNING created_at, updated_at`

	err := db.QueryRow(ctx, query, n.ID, n.Name, n.Organization, n.Photo, n.AIHint, n.CategoryID).
		Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation:
				return model.ErrCategoryNotFound
			case pgUniqueViolation:
				return fmt.Errorf("%w: %s", model.ErrDuplicateNomineeID, n.ID)
			}
		}
		return fmt.Errorf("failed to insert nominee: %w", err)
	}
	return nil
}

func (r *postgresCategoryRepository) UpdateNominee(ctx context.Context, n *model.Nominee) error {
	query := `
		UPDATE nominees
		SET name = $2, organization = $3, photo = $4, ai_hint = $5, category_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, n.ID, n.Name, n.Organization, n.Photo, n.AIHint, n.CategoryID).
		Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNomineeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update nominee: %w", err)
	}
	return nil
}

func (r *postgresCategoryRepository) DeleteNominee(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM nominees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete nominee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNomineeNotFound
	}
	return nil
}

// =====================================================
// SEED
// =====================================================

func (r *postgresCategoryRepository) Seed(ctx context.Context, categories []model.CategoryWithNominees) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range categories {
			c := &categories[i]
			if err := upsertCategory(ctx, tx, &c.Category); err != nil {
				return err
			}
			for j := range c.Nominees {
				c.Nominees[j].CategoryID = c.ID
				if err := insertNominee(ctx, tx, &c.Nominees[j], true); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
