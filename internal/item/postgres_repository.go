package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/redeinformatica/vitrine/internal/postgres"
)

const selectColumns = `id, name, description, price, quantity, image_id, image_ids,
		       category_id, user_id, created_at, updated_at`

// PostgresRepository implements Repository on top of a pool or a transaction.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Repository backed by the given querier.
func NewRepository(db postgres.Querier) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new item record.
func (r *PostgresRepository) Create(ctx context.Context, it *Item) error {
	query := `
		INSERT INTO items (name, description, price, quantity, image_id, image_ids, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		it.Name,
		it.Description,
		it.Price,
		it.Quantity,
		it.ImageID,
		it.ImageIDs,
		it.CategoryID,
		it.UserID,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	return nil
}

// GetByID retrieves a single item by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// ListByCategory retrieves the items of a category.
func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Item, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM items
		WHERE category_id = $1
		ORDER BY created_at ASC, id ASC`

	return r.scanMany(ctx, query, categoryID)
}

// ListByUser retrieves the items owned by a user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM items
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	return r.scanMany(ctx, query, userID)
}

// ListAll retrieves every item.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Item, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM items
		ORDER BY created_at ASC, id ASC`

	return r.scanMany(ctx, query)
}

// Update replaces name, price and quantity, applies the tagged optional
// fields, and clears the legacy image_id.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Item, error) {
	setClauses := []string{"name = $1", "price = $2", "quantity = $3", "image_id = NULL"}
	args := []any{fields.Name, fields.Price, fields.Quantity}

	switch {
	case fields.Description.IsSet():
		v, _ := fields.Description.Get()
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", len(args)))
	case fields.Description.IsClear():
		setClauses = append(setClauses, "description = NULL")
	}

	switch {
	case fields.ImageIDs.IsSet():
		v, _ := fields.ImageIDs.Get()
		if v == nil {
			v = []string{}
		}
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("image_ids = $%d", len(args)))
	case fields.ImageIDs.IsClear():
		setClauses = append(setClauses, "image_ids = NULL")
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE id = $%d
		RETURNING `+selectColumns,
		strings.Join(setClauses, ", "), len(args))

	return r.scanOne(ctx, query, args...)
}

// Delete removes an item by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteByCategory removes all items referencing a category.
func (r *PostgresRepository) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM items WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("deleting items by category: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteOrphans removes items whose category_id matches no category.
func (r *PostgresRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM items i
		WHERE NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = i.category_id)`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("deleting orphaned items: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *PostgresRepository) scanMany(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Price, &it.Quantity,
			&it.ImageID, &it.ImageIDs, &it.CategoryID, &it.UserID,
			&it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	if items == nil {
		items = []Item{}
	}

	return items, nil
}

// scanOne scans a single Item row from a query. Returns ErrNotFound if no rows.
func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Item, error) {
	var it Item
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Description, &it.Price, &it.Quantity,
		&it.ImageID, &it.ImageIDs, &it.CategoryID, &it.UserID,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning item row: %w", err)
	}
	return &it, nil
}
