package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/api/response"
	"github.com/redeinformatica/vitrine/internal/api/validation"
	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/catalog"
	"github.com/redeinformatica/vitrine/internal/category"
	"github.com/redeinformatica/vitrine/internal/optional"
)

// CategoryService is the part of the catalog the category endpoints use.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]catalog.CategoryView, error)
	ListPublicCategories(ctx context.Context) ([]catalog.CategoryView, error)
	CreateCategory(ctx context.Context, in catalog.NewCategory) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, fields category.UpdateFields) (*catalog.CategoryView, error)
	RemoveCategory(ctx context.Context, id uuid.UUID) error
	GenerateCategoryUploadURL(ctx context.Context) (*blob.Upload, error)
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageID     *string `json:"imageId"`
	BannerID    *string `json:"bannerId"`
}

// Omitted optional fields are kept; null clears them.
type updateCategoryRequest struct {
	Name        string                 `json:"name"`
	Description optional.Value[string] `json:"description"`
	ImageID     optional.Value[string] `json:"imageId"`
	BannerID    optional.Value[string] `json:"bannerId"`
}

type categoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageID     *string `json:"imageId"`
	ImageURL    *string `json:"imageUrl"`
	BannerID    *string `json:"bannerId"`
	BannerURL   *string `json:"bannerUrl"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toCategoryResponse(v *catalog.CategoryView) categoryResponse {
	return categoryResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Description: v.Description,
		ImageID:     v.ImageID,
		ImageURL:    v.ImageURL,
		BannerID:    v.BannerID,
		BannerURL:   v.BannerURL,
		UserID:      v.UserID.String(),
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func toCategoryResponses(views []catalog.CategoryView) []categoryResponse {
	out := make([]categoryResponse, 0, len(views))
	for i := range views {
		out = append(out, toCategoryResponse(&views[i]))
	}
	return out
}

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	views, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeCatalogError(w, err, requestID, "list categories")
		return
	}

	response.Success(w, http.StatusOK, toCategoryResponses(views), requestID)
}

// ListPublic handles GET /public/categories.
func (h *CategoryHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	views, err := h.svc.ListPublicCategories(r.Context())
	if err != nil {
		writeCatalogError(w, err, requestID, "list categories")
		return
	}

	response.Success(w, http.StatusOK, toCategoryResponses(views), requestID)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req createCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateCreateCategoryRequest(validation.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
		ImageID:     req.ImageID,
		BannerID:    req.BannerID,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	id, err := h.svc.CreateCategory(r.Context(), catalog.NewCategory{
		Name:        req.Name,
		Description: req.Description,
		ImageID:     req.ImageID,
		BannerID:    req.BannerID,
	})
	if err != nil {
		writeCatalogError(w, err, requestID, "create category")
		return
	}

	response.Success(w, http.StatusCreated, createdResponse{ID: id.String()}, requestID)
}

// Update handles PUT /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateUpdateCategoryRequest(validation.UpdateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
		ImageID:     req.ImageID,
		BannerID:    req.BannerID,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	updated, err := h.svc.UpdateCategory(r.Context(), id, category.UpdateFields{
		Name:        req.Name,
		Description: req.Description,
		ImageID:     req.ImageID,
		BannerID:    req.BannerID,
	})
	if err != nil {
		writeCatalogError(w, err, requestID, "update category")
		return
	}

	response.Success(w, http.StatusOK, toCategoryResponse(updated), requestID)
}

// Delete handles DELETE /categories/{id}. The category's items go with it.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveCategory(r.Context(), id); err != nil {
		writeCatalogError(w, err, requestID, "delete category")
		return
	}

	response.NoContent(w)
}

// UploadURL handles POST /categories/upload-url.
func (h *CategoryHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	writeUpload(w, r, h.svc.GenerateCategoryUploadURL)
}
