package validation

import (
	"net/mail"
	"strings"
)

const (
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
	maxEmailLen      = 254
)

// RegisterRequest mirrors the fields needed for registration validation.
type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

// ValidateRegisterRequest validates the fields of a registration request.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	var errs []FieldError

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if len(email) > maxEmailLen {
		errs = append(errs, FieldError{Field: "email", Message: "email must be at most 254 characters"})
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if e := optionalText("name", &req.Name, maxNameLen); e != nil {
		errs = append(errs, *e)
	}

	switch {
	case len(req.Password) < minPasswordLen:
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	case len(req.Password) > maxPasswordBytes:
		errs = append(errs, FieldError{Field: "password", Message: "password must be at most 72 bytes"})
	}

	return errs
}

// SignInRequest mirrors the fields needed for sign-in validation.
type SignInRequest struct {
	Email    string
	Password string
}

// ValidateSignInRequest validates the fields of a sign-in request.
func ValidateSignInRequest(req SignInRequest) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	return errs
}
