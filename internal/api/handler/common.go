package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/api/response"
	"github.com/redeinformatica/vitrine/internal/api/validation"
	"github.com/redeinformatica/vitrine/internal/banner"
	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/catalog"
)

const maxBodyBytes = 1 << 20

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// decodeJSON reads the request body into dst. On failure it writes an
// INVALID_JSON error and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// parseID parses the {id} URL parameter. On failure it writes an INVALID_ID
// error and returns false.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", middleware.GetRequestID(r.Context()))
		return uuid.Nil, false
	}
	return id, true
}

// writeCatalogError maps catalog errors to HTTP responses. Anything
// unrecognised is logged and reported as INTERNAL_ERROR using action to
// describe what failed.
func writeCatalogError(w http.ResponseWriter, err error, requestID, action string) {
	switch {
	case errors.Is(err, catalog.ErrUnauthenticated):
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required", requestID)
	case errors.Is(err, catalog.ErrNotFoundOrForbidden):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Not found or unauthorized", requestID)
	case errors.Is(err, catalog.ErrCategoryNotFoundOrForbidden):
		response.Err(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found or unauthorized", requestID)
	case errors.Is(err, catalog.ErrTooManyImages):
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "imageIds", Message: err.Error()}}, requestID)
	case errors.Is(err, catalog.ErrInvalidInput):
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), requestID)
	case errors.Is(err, banner.ErrDuplicate):
		response.Err(w, http.StatusConflict, "CONFLICT", "Banner was replaced concurrently, retry", requestID)
	default:
		slog.Error("failed to "+action, "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+action, requestID)
	}
}

type createdResponse struct {
	ID string `json:"id"`
}

type uploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	StorageID string `json:"storageId"`
	ExpiresAt string `json:"expiresAt"`
}

func toUploadResponse(u *blob.Upload) uploadResponse {
	return uploadResponse{
		UploadURL: u.URL,
		StorageID: u.StorageID,
		ExpiresAt: formatTime(u.ExpiresAt),
	}
}

// writeUpload serves an upload-url endpoint.
func writeUpload(w http.ResponseWriter, r *http.Request, issue func(ctx context.Context) (*blob.Upload, error)) {
	requestID := middleware.GetRequestID(r.Context())

	up, err := issue(r.Context())
	if err != nil {
		writeCatalogError(w, err, requestID, "generate upload url")
		return
	}

	response.Success(w, http.StatusOK, toUploadResponse(up), requestID)
}
