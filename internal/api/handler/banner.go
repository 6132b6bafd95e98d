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
)

// BannerService is the part of the catalog the banner endpoints use.
type BannerService interface {
	GetBanner(ctx context.Context) (*catalog.BannerView, error)
	GetPublicBanner(ctx context.Context) (*catalog.BannerView, error)
	CreateBanner(ctx context.Context, imageID string) (uuid.UUID, error)
	RemoveBanner(ctx context.Context) error
	GenerateBannerUploadURL(ctx context.Context) (*blob.Upload, error)
}

type createBannerRequest struct {
	ImageID string `json:"imageId"`
}

type bannerResponse struct {
	ID        string  `json:"id"`
	ImageID   string  `json:"imageId"`
	ImageURL  *string `json:"imageUrl"`
	UserID    string  `json:"userId"`
	CreatedAt string  `json:"createdAt"`
}

// toBannerResponse returns nil for a nil view so the envelope carries null data.
func toBannerResponse(v *catalog.BannerView) *bannerResponse {
	if v == nil {
		return nil
	}
	return &bannerResponse{
		ID:        v.ID.String(),
		ImageID:   v.ImageID,
		ImageURL:  v.ImageURL,
		UserID:    v.UserID.String(),
		CreatedAt: formatTime(v.CreatedAt),
	}
}

// BannerHandler handles banner endpoints.
type BannerHandler struct {
	svc BannerService
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(svc BannerService) *BannerHandler {
	return &BannerHandler{svc: svc}
}

// Get handles GET /banner.
func (h *BannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v, err := h.svc.GetBanner(r.Context())
	if err != nil {
		writeCatalogError(w, err, requestID, "get banner")
		return
	}

	response.Success(w, http.StatusOK, toBannerResponse(v), requestID)
}

// GetPublic handles GET /public/banner.
func (h *BannerHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v, err := h.svc.GetPublicBanner(r.Context())
	if err != nil {
		writeCatalogError(w, err, requestID, "get banner")
		return
	}

	response.Success(w, http.StatusOK, toBannerResponse(v), requestID)
}

// Put handles PUT /banner, replacing the caller's banner.
func (h *BannerHandler) Put(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req createBannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateCreateBannerRequest(validation.CreateBannerRequest{ImageID: req.ImageID})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	id, err := h.svc.CreateBanner(r.Context(), req.ImageID)
	if err != nil {
		writeCatalogError(w, err, requestID, "save banner")
		return
	}

	response.Success(w, http.StatusOK, createdResponse{ID: id.String()}, requestID)
}

// Delete handles DELETE /banner.
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.svc.RemoveBanner(r.Context()); err != nil {
		writeCatalogError(w, err, requestID, "delete banner")
		return
	}

	response.NoContent(w)
}

// UploadURL handles POST /banner/upload-url.
func (h *BannerHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	writeUpload(w, r, h.svc.GenerateBannerUploadURL)
}
