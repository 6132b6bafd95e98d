package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/auth"
	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/catalog"
	"github.com/redeinformatica/vitrine/internal/category"
	"github.com/redeinformatica/vitrine/internal/item"
)

// --- Mock catalog ---

type mockCatalog struct {
	listCategoriesFn       func(ctx context.Context) ([]catalog.CategoryView, error)
	listPublicCategoriesFn func(ctx context.Context) ([]catalog.CategoryView, error)
	createCategoryFn       func(ctx context.Context, in catalog.NewCategory) (uuid.UUID, error)
	updateCategoryFn       func(ctx context.Context, id uuid.UUID, f category.UpdateFields) (*catalog.CategoryView, error)
	removeCategoryFn       func(ctx context.Context, id uuid.UUID) error

	listItemsByCategoryFn func(ctx context.Context, categoryID uuid.UUID) ([]catalog.ItemView, error)
	listItemsByUserFn     func(ctx context.Context) ([]catalog.ItemView, error)
	createItemFn          func(ctx context.Context, in catalog.NewItem) (uuid.UUID, error)
	updateItemFn          func(ctx context.Context, id uuid.UUID, f item.UpdateFields) (*catalog.ItemView, error)
	removeItemFn          func(ctx context.Context, id uuid.UUID) error
	searchItemsFn         func(ctx context.Context, term string, categoryID *uuid.UUID) ([]catalog.ItemView, error)

	getBannerFn       func(ctx context.Context) (*catalog.BannerView, error)
	getPublicBannerFn func(ctx context.Context) (*catalog.BannerView, error)
	createBannerFn    func(ctx context.Context, imageID string) (uuid.UUID, error)
	removeBannerFn    func(ctx context.Context) error

	uploadFn func(ctx context.Context) (*blob.Upload, error)
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]catalog.CategoryView, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return []catalog.CategoryView{}, nil
}

func (m *mockCatalog) ListPublicCategories(ctx context.Context) ([]catalog.CategoryView, error) {
	if m.listPublicCategoriesFn != nil {
		return m.listPublicCategoriesFn(ctx)
	}
	return []catalog.CategoryView{}, nil
}

func (m *mockCatalog) CreateCategory(ctx context.Context, in catalog.NewCategory) (uuid.UUID, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, in)
	}
	return uuid.New(), nil
}

func (m *mockCatalog) UpdateCategory(ctx context.Context, id uuid.UUID, f category.UpdateFields) (*catalog.CategoryView, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, id, f)
	}
	return nil, catalog.ErrNotFoundOrForbidden
}

func (m *mockCatalog) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	if m.removeCategoryFn != nil {
		return m.removeCategoryFn(ctx, id)
	}
	return nil
}

func (m *mockCatalog) GenerateCategoryUploadURL(ctx context.Context) (*blob.Upload, error) {
	return m.upload(ctx)
}

func (m *mockCatalog) ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.ItemView, error) {
	if m.listItemsByCategoryFn != nil {
		return m.listItemsByCategoryFn(ctx, categoryID)
	}
	return []catalog.ItemView{}, nil
}

func (m *mockCatalog) ListItemsByUser(ctx context.Context) ([]catalog.ItemView, error) {
	if m.listItemsByUserFn != nil {
		return m.listItemsByUserFn(ctx)
	}
	return []catalog.ItemView{}, nil
}

func (m *mockCatalog) CreateItem(ctx context.Context, in catalog.NewItem) (uuid.UUID, error) {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, in)
	}
	return uuid.New(), nil
}

func (m *mockCatalog) UpdateItem(ctx context.Context, id uuid.UUID, f item.UpdateFields) (*catalog.ItemView, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, id, f)
	}
	return nil, catalog.ErrNotFoundOrForbidden
}

func (m *mockCatalog) RemoveItem(ctx context.Context, id uuid.UUID) error {
	if m.removeItemFn != nil {
		return m.removeItemFn(ctx, id)
	}
	return nil
}

func (m *mockCatalog) GenerateItemUploadURL(ctx context.Context) (*blob.Upload, error) {
	return m.upload(ctx)
}

func (m *mockCatalog) SearchItems(ctx context.Context, term string, categoryID *uuid.UUID) ([]catalog.ItemView, error) {
	if m.searchItemsFn != nil {
		return m.searchItemsFn(ctx, term, categoryID)
	}
	return []catalog.ItemView{}, nil
}

func (m *mockCatalog) GetBanner(ctx context.Context) (*catalog.BannerView, error) {
	if m.getBannerFn != nil {
		return m.getBannerFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) GetPublicBanner(ctx context.Context) (*catalog.BannerView, error) {
	if m.getPublicBannerFn != nil {
		return m.getPublicBannerFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) CreateBanner(ctx context.Context, imageID string) (uuid.UUID, error) {
	if m.createBannerFn != nil {
		return m.createBannerFn(ctx, imageID)
	}
	return uuid.New(), nil
}

func (m *mockCatalog) RemoveBanner(ctx context.Context) error {
	if m.removeBannerFn != nil {
		return m.removeBannerFn(ctx)
	}
	return nil
}

func (m *mockCatalog) GenerateBannerUploadURL(ctx context.Context) (*blob.Upload, error) {
	return m.upload(ctx)
}

func (m *mockCatalog) upload(ctx context.Context) (*blob.Upload, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx)
	}
	return &blob.Upload{URL: "https://blobs.test/put/abc", StorageID: "abc", ExpiresAt: time.Now().Add(time.Minute)}, nil
}

// --- Helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func makeAuthRequest(method, path string, body []byte, params map[string]string, identity *auth.Identity) (*http.Request, *httptest.ResponseRecorder) {
	req, w := makeChiRequest(method, path, body, params)
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	return req, w
}

func sampleIdentity() *auth.Identity {
	return &auth.Identity{
		UserID:    uuid.New(),
		Email:     "owner@example.com",
		Name:      "Owner",
		SessionID: uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := parseEnvelope(t, w)
	errObj, ok := env["error"].(map[string]interface{})
	require.True(t, ok, "expected an error object, got %v", env["error"])
	return errObj["code"].(string)
}

func strPtr(s string) *string { return &s }
