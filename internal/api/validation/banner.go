package validation

// CreateBannerRequest mirrors the fields needed for banner validation.
type CreateBannerRequest struct {
	ImageID string
}

// ValidateCreateBannerRequest validates the fields of a create banner request.
func ValidateCreateBannerRequest(req CreateBannerRequest) []FieldError {
	return collect(requiredText("imageId", req.ImageID, maxBlobRefLen))
}
