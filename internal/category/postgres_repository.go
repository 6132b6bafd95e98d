package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/redeinformatica/vitrine/internal/optional"
	"github.com/redeinformatica/vitrine/internal/postgres"
)

const selectColumns = `id, name, description, image_id, banner_id, user_id, created_at, updated_at`

// PostgresRepository implements Repository on top of a pool or a transaction.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Repository backed by the given querier.
func NewRepository(db postgres.Querier) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new category record.
func (r *PostgresRepository) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (name, description, image_id, banner_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		c.Name,
		c.Description,
		c.ImageID,
		c.BannerID,
		c.UserID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

// GetByID retrieves a single category by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// ListByUser retrieves the categories owned by a user ordered by name.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC, id ASC`

	return r.scanMany(ctx, query, userID)
}

// ListAll retrieves every category ordered by name.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Category, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM categories
		ORDER BY name ASC, id ASC`

	return r.scanMany(ctx, query)
}

// Update replaces the name and applies the tagged optional fields.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Category, error) {
	setClauses := []string{"name = $1"}
	args := []any{fields.Name}

	setClauses, args = appendOptional(setClauses, args, "description", fields.Description)
	setClauses, args = appendOptional(setClauses, args, "image_id", fields.ImageID)
	setClauses, args = appendOptional(setClauses, args, "banner_id", fields.BannerID)

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE id = $%d
		RETURNING `+selectColumns,
		strings.Join(setClauses, ", "), len(args))

	return r.scanOne(ctx, query, args...)
}

// Delete removes a category by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func appendOptional(setClauses []string, args []any, column string, v optional.Value[string]) ([]string, []any) {
	switch {
	case v.IsSet():
		val, _ := v.Get()
		args = append(args, val)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	case v.IsClear():
		setClauses = append(setClauses, column+" = NULL")
	}
	return setClauses, args
}

func (r *PostgresRepository) scanMany(ctx context.Context, query string, args ...any) ([]Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.ImageID, &c.BannerID,
			&c.UserID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	if categories == nil {
		categories = []Category{}
	}

	return categories, nil
}

// scanOne scans a single Category row from a query. Returns ErrNotFound if no rows.
func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.ImageID, &c.BannerID,
		&c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning category row: %w", err)
	}
	return &c, nil
}
