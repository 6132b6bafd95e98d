package banner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/redeinformatica/vitrine/internal/postgres"
)

// PostgresRepository implements Repository on top of a pool or a transaction.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Repository backed by the given querier.
func NewRepository(db postgres.Querier) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a banner. The unique index on user_id turns a concurrent
// second insert into ErrDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, b *Banner) error {
	query := `
		INSERT INTO banners (image_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, b.ImageID, b.UserID).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting banner: %w", err)
	}

	return nil
}

// GetByUser retrieves the banner owned by a user.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*Banner, error) {
	query := `
		SELECT id, image_id, user_id, created_at
		FROM banners
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1`

	return r.scanOne(ctx, query, userID)
}

// First retrieves the oldest banner in the table.
func (r *PostgresRepository) First(ctx context.Context) (*Banner, error) {
	query := `
		SELECT id, image_id, user_id, created_at
		FROM banners
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	return r.scanOne(ctx, query)
}

// DeleteByUser removes the banner owned by a user, if any.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM banners WHERE user_id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("deleting banner: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Banner, error) {
	var b Banner
	err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.ImageID, &b.UserID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning banner row: %w", err)
	}
	return &b, nil
}
