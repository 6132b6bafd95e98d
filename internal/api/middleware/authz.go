package middleware

import (
	"net/http"

	"github.com/redeinformatica/vitrine/internal/api/response"
)

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetIdentity(r.Context()) == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
