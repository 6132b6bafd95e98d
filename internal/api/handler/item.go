package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/api/response"
	"github.com/redeinformatica/vitrine/internal/api/validation"
	"github.com/redeinformatica/vitrine/internal/blob"
	"github.com/redeinformatica/vitrine/internal/catalog"
	"github.com/redeinformatica/vitrine/internal/item"
	"github.com/redeinformatica/vitrine/internal/optional"
)

// ItemService is the part of the catalog the item endpoints use.
type ItemService interface {
	ListItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.ItemView, error)
	ListItemsByUser(ctx context.Context) ([]catalog.ItemView, error)
	CreateItem(ctx context.Context, in catalog.NewItem) (uuid.UUID, error)
	UpdateItem(ctx context.Context, id uuid.UUID, fields item.UpdateFields) (*catalog.ItemView, error)
	RemoveItem(ctx context.Context, id uuid.UUID) error
	GenerateItemUploadURL(ctx context.Context) (*blob.Upload, error)
	SearchItems(ctx context.Context, term string, categoryID *uuid.UUID) ([]catalog.ItemView, error)
}

type createItemRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	CategoryID  string   `json:"categoryId"`
	ImageIDs    []string `json:"imageIds"`
}

type updateItemRequest struct {
	Name        string                   `json:"name"`
	Description optional.Value[string]   `json:"description"`
	Price       *float64                 `json:"price"`
	Quantity    *int                     `json:"quantity"`
	ImageIDs    optional.Value[[]string] `json:"imageIds"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageID     *string   `json:"imageId,omitempty"`
	ImageIDs    []string  `json:"imageIds"`
	ImageURLs   []*string `json:"imageUrls"`
	CategoryID  string    `json:"categoryId"`
	UserID      string    `json:"userId"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

func toItemResponse(v *catalog.ItemView) itemResponse {
	urls := v.ImageURLs
	if urls == nil {
		urls = []*string{}
	}
	return itemResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Quantity:    v.Quantity,
		ImageID:     v.ImageID,
		ImageIDs:    v.ImageIDs,
		ImageURLs:   urls,
		CategoryID:  v.CategoryID.String(),
		UserID:      v.UserID.String(),
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func toItemResponses(views []catalog.ItemView) []itemResponse {
	out := make([]itemResponse, 0, len(views))
	for i := range views {
		out = append(out, toItemResponse(&views[i]))
	}
	return out
}

// ItemHandler handles item endpoints.
type ItemHandler struct {
	svc ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// ListByCategory handles GET /public/categories/{id}/items.
func (h *ItemHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	categoryID, ok := parseID(w, r)
	if !ok {
		return
	}

	views, err := h.svc.ListItemsByCategory(r.Context(), categoryID)
	if err != nil {
		writeCatalogError(w, err, requestID, "list items")
		return
	}

	response.Success(w, http.StatusOK, toItemResponses(views), requestID)
}

// ListMine handles GET /items.
func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	views, err := h.svc.ListItemsByUser(r.Context())
	if err != nil {
		writeCatalogError(w, err, requestID, "list items")
		return
	}

	response.Success(w, http.StatusOK, toItemResponses(views), requestID)
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req createItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateCreateItemRequest(validation.CreateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
		ImageIDs:    req.ImageIDs,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	id, err := h.svc.CreateItem(r.Context(), catalog.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		CategoryID:  uuid.MustParse(req.CategoryID),
		ImageIDs:    req.ImageIDs,
	})
	if err != nil {
		writeCatalogError(w, err, requestID, "create item")
		return
	}

	response.Success(w, http.StatusCreated, createdResponse{ID: id.String()}, requestID)
}

// Update handles PUT /items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateUpdateItemRequest(validation.UpdateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageIDs:    req.ImageIDs,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	updated, err := h.svc.UpdateItem(r.Context(), id, item.UpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		ImageIDs:    req.ImageIDs,
	})
	if err != nil {
		writeCatalogError(w, err, requestID, "update item")
		return
	}

	response.Success(w, http.StatusOK, toItemResponse(updated), requestID)
}

// Delete handles DELETE /items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveItem(r.Context(), id); err != nil {
		writeCatalogError(w, err, requestID, "delete item")
		return
	}

	response.NoContent(w)
}

// UploadURL handles POST /items/upload-url. Clients call it once per image.
func (h *ItemHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	writeUpload(w, r, h.svc.GenerateItemUploadURL)
}

// Search handles GET /public/items/search?q=&categoryId=.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	var categoryID *uuid.UUID
	if raw := strings.TrimSpace(query.Get("categoryId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "categoryId must be a valid UUID", requestID)
			return
		}
		categoryID = &id
	}

	views, err := h.svc.SearchItems(r.Context(), query.Get("q"), categoryID)
	if err != nil {
		writeCatalogError(w, err, requestID, "search items")
		return
	}

	response.Success(w, http.StatusOK, toItemResponses(views), requestID)
}
