package validation

import "github.com/redeinformatica/vitrine/internal/optional"

// CreateCategoryRequest mirrors the fields needed for create category validation.
type CreateCategoryRequest struct {
	Name        string
	Description *string
	ImageID     *string
	BannerID    *string
}

// ValidateCreateCategoryRequest validates the fields of a create category request.
func ValidateCreateCategoryRequest(req CreateCategoryRequest) []FieldError {
	return collect(
		requiredText("name", req.Name, maxNameLen),
		optionalText("description", req.Description, maxDescriptionLen),
		blobRef("imageId", req.ImageID),
		blobRef("bannerId", req.BannerID),
	)
}

// UpdateCategoryRequest mirrors the fields needed for update category validation.
type UpdateCategoryRequest struct {
	Name        string
	Description optional.Value[string]
	ImageID     optional.Value[string]
	BannerID    optional.Value[string]
}

// ValidateUpdateCategoryRequest validates the fields of an update category request.
func ValidateUpdateCategoryRequest(req UpdateCategoryRequest) []FieldError {
	return collect(
		requiredText("name", req.Name, maxNameLen),
		optionalText("description", setValue(req.Description), maxDescriptionLen),
		blobRef("imageId", setValue(req.ImageID)),
		blobRef("bannerId", setValue(req.BannerID)),
	)
}
