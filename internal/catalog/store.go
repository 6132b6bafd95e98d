package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redeinformatica/vitrine/internal/banner"
	"github.com/redeinformatica/vitrine/internal/category"
	"github.com/redeinformatica/vitrine/internal/item"
	"github.com/redeinformatica/vitrine/internal/postgres"
)

// Store is the document store the catalog runs against.
type Store interface {
	Categories() category.Repository
	Items() item.Repository
	Banners() banner.Repository
	// WithinTx runs fn with a Store whose repositories share one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

// IdentityResolver reports the user behind the current request, if any.
type IdentityResolver interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, bool)
}

// IdentityFunc adapts a function to IdentityResolver.
type IdentityFunc func(ctx context.Context) (uuid.UUID, bool)

// CurrentUserID implements IdentityResolver.
func (f IdentityFunc) CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	return f(ctx)
}

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	repos
}

// NewPostgresStore creates a Store backed by pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, repos: newRepos(pool)}
}

// WithinTx implements Store.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&txStore{repos: newRepos(tx)})
	})
}

type repos struct {
	categories category.Repository
	items      item.Repository
	banners    banner.Repository
}

func newRepos(q postgres.Querier) repos {
	return repos{
		categories: category.NewRepository(q),
		items:      item.NewRepository(q),
		banners:    banner.NewRepository(q),
	}
}

func (r repos) Categories() category.Repository { return r.categories }
func (r repos) Items() item.Repository          { return r.items }
func (r repos) Banners() banner.Repository      { return r.banners }

// txStore is the Store handed to WithinTx callbacks; nesting reuses the
// enclosing transaction.
type txStore struct {
	repos
}

func (s *txStore) WithinTx(_ context.Context, fn func(Store) error) error {
	return fn(s)
}
