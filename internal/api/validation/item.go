package validation

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/redeinformatica/vitrine/internal/item"
	"github.com/redeinformatica/vitrine/internal/optional"
)

// CreateItemRequest mirrors the fields needed for create item validation.
type CreateItemRequest struct {
	Name        string
	Description *string
	Price       *float64
	Quantity    *int
	CategoryID  string
	ImageIDs    []string
}

// ValidateCreateItemRequest validates the fields of a create item request.
func ValidateCreateItemRequest(req CreateItemRequest) []FieldError {
	errs := collect(
		requiredText("name", req.Name, maxNameLen),
		optionalText("description", req.Description, maxDescriptionLen),
		price(req.Price),
		quantity(req.Quantity),
		categoryID(req.CategoryID),
	)
	return append(errs, imageIDs(req.ImageIDs)...)
}

// UpdateItemRequest mirrors the fields needed for update item validation.
type UpdateItemRequest struct {
	Name        string
	Description optional.Value[string]
	Price       *float64
	Quantity    *int
	ImageIDs    optional.Value[[]string]
}

// ValidateUpdateItemRequest validates the fields of an update item request.
func ValidateUpdateItemRequest(req UpdateItemRequest) []FieldError {
	errs := collect(
		requiredText("name", req.Name, maxNameLen),
		optionalText("description", setValue(req.Description), maxDescriptionLen),
		price(req.Price),
		quantity(req.Quantity),
	)
	if ids, ok := req.ImageIDs.Get(); ok {
		errs = append(errs, imageIDs(ids)...)
	}
	return errs
}

func price(p *float64) *FieldError {
	switch {
	case p == nil:
		return &FieldError{Field: "price", Message: "price is required"}
	case math.IsNaN(*p) || math.IsInf(*p, 0):
		return &FieldError{Field: "price", Message: "price must be a finite number"}
	case *p < 0:
		return &FieldError{Field: "price", Message: "price must be greater than or equal to 0"}
	}
	return nil
}

func quantity(q *int) *FieldError {
	switch {
	case q == nil:
		return &FieldError{Field: "quantity", Message: "quantity is required"}
	case *q < 0:
		return &FieldError{Field: "quantity", Message: "quantity must be greater than or equal to 0"}
	}
	return nil
}

func categoryID(id string) *FieldError {
	if id == "" {
		return &FieldError{Field: "categoryId", Message: "categoryId is required"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &FieldError{Field: "categoryId", Message: "categoryId must be a valid UUID"}
	}
	return nil
}

func imageIDs(ids []string) []FieldError {
	var errs []FieldError
	if len(ids) > item.MaxImages {
		errs = append(errs, FieldError{Field: "imageIds", Message: fmt.Sprintf("at most %d images are allowed", item.MaxImages)})
	}
	for i := range ids {
		if e := blobRef(fmt.Sprintf("imageIds[%d]", i), &ids[i]); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}
