package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/redeinformatica/vitrine/internal/catalog"
)

type userKey struct{}

// as returns a context signed in as userID.
func as(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), userKey{}, userID)
}

var anonymous = context.Background()

func contextIdentity() catalog.IdentityResolver {
	return catalog.IdentityFunc(func(ctx context.Context) (uuid.UUID, bool) {
		id, ok := ctx.Value(userKey{}).(uuid.UUID)
		return id, ok
	})
}

func newTestService() (*catalog.Service, *memStore, *fakeBlobs) {
	store := newMemStore()
	blobs := &fakeBlobs{}
	return catalog.NewService(store, contextIdentity(), blobs), store, blobs
}

func strPtr(s string) *string { return &s }

func mustCreateCategory(t *testing.T, svc *catalog.Service, ctx context.Context, name string) uuid.UUID {
	t.Helper()
	id, err := svc.CreateCategory(ctx, catalog.NewCategory{Name: name})
	require.NoError(t, err)
	return id
}

func mustCreateItem(t *testing.T, svc *catalog.Service, ctx context.Context, in catalog.NewItem) uuid.UUID {
	t.Helper()
	id, err := svc.CreateItem(ctx, in)
	require.NoError(t, err)
	return id
}

func categoryNames(views []catalog.CategoryView) []string {
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	return names
}

func itemNames(views []catalog.ItemView) []string {
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	return names
}
