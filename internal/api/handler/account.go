package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/redeinformatica/vitrine/internal/api/middleware"
	"github.com/redeinformatica/vitrine/internal/api/response"
	"github.com/redeinformatica/vitrine/internal/api/validation"
	"github.com/redeinformatica/vitrine/internal/auth"
)

// AccountService is the identity provider the account endpoints use.
type AccountService interface {
	Register(ctx context.Context, email, name, password string) (*auth.User, error)
	SignIn(ctx context.Context, email, password string) (string, *auth.Identity, error)
	SignOut(ctx context.Context, identity *auth.Identity) error
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func identityToUserResponse(id *auth.Identity) *userResponse {
	if id == nil {
		return nil
	}
	return &userResponse{ID: id.UserID.String(), Email: id.Email, Name: id.Name}
}

// AccountHandler handles registration and session endpoints.
type AccountHandler struct {
	svc AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register handles POST /auth/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			response.Err(w, http.StatusConflict, "DUPLICATE_EMAIL", "An account with this email already exists", requestID)
			return
		}
		slog.Error("failed to register user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user", requestID)
		return
	}

	response.Success(w, http.StatusCreated, userResponse{ID: u.ID.String(), Email: u.Email, Name: u.Name}, requestID)
}

// SignIn handles POST /auth/sessions.
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req signInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := validation.ValidateSignInRequest(validation.SignInRequest{Email: req.Email, Password: req.Password})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	token, identity, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", requestID)
			return
		}
		slog.Error("failed to sign in", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign in", requestID)
		return
	}

	response.Success(w, http.StatusCreated, sessionResponse{
		Token:     token,
		ExpiresAt: formatTime(identity.ExpiresAt),
		User:      *identityToUserResponse(identity),
	}, requestID)
}

// SignOut handles DELETE /auth/sessions/current. It expects RequireIdentity
// in front of it.
func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.svc.SignOut(r.Context(), middleware.GetIdentity(r.Context())); err != nil {
		slog.Error("failed to sign out", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign out", requestID)
		return
	}

	response.NoContent(w)
}

// Me handles GET /auth/me. Anonymous callers get null data, not 401.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	response.Success(w, http.StatusOK, identityToUserResponse(middleware.GetIdentity(r.Context())), requestID)
}
