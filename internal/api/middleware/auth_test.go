package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/auth"
)

type mockAuthenticator struct {
	authenticateFn func(ctx context.Context, token string) (*auth.Identity, error)
	calls          int
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	m.calls++
	return m.authenticateFn(ctx, token)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err)
	return env
}

func validIdentity() *auth.Identity {
	return &auth.Identity{
		UserID:    uuid.New(),
		Email:     "owner@example.com",
		SessionID: uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestAuth_MissingHeaderIsAnonymous(t *testing.T) {
	authn := &mockAuthenticator{}
	var sawIdentity bool
	var sawUser bool
	handler := middleware.Auth(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawIdentity = middleware.GetIdentity(r.Context()) != nil
		_, sawUser = middleware.CurrentUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, sawIdentity)
	assert.False(t, sawUser)
	assert.Zero(t, authn.calls)
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	identity := validIdentity()
	authn := &mockAuthenticator{
		authenticateFn: func(_ context.Context, token string) (*auth.Identity, error) {
			assert.Equal(t, "good-token", token)
			return identity, nil
		},
	}

	var gotUser uuid.UUID
	handler := middleware.Auth(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = middleware.CurrentUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identity.UserID, gotUser)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		err      error
		wantCode int
		wantErr  string
	}{
		{"wrong scheme", "Basic dXNlcjpwYXNz", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"empty bearer", "Bearer   ", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid token", "Bearer expired", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"backend failure", "Bearer token", errors.New("redis down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &mockAuthenticator{
				authenticateFn: func(context.Context, string) (*auth.Identity, error) { return nil, tt.err },
			}
			handler := middleware.Auth(authn)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			env := parseErrorResponse(t, w)
			apiErr := env["error"].(map[string]interface{})
			assert.Equal(t, tt.wantErr, apiErr["code"])
		})
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	authn := &mockAuthenticator{
		authenticateFn: func(context.Context, string) (*auth.Identity, error) { return validIdentity(), nil },
	}
	handler := middleware.Auth(authn)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetIdentity_EmptyContext(t *testing.T) {
	assert.Nil(t, middleware.GetIdentity(context.Background()))

	id, ok := middleware.CurrentUserID(context.Background())
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}
