package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/smartstores/cashbook/internal/adapter/http/dto"
	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error)
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error
	SetActive(ctx context.Context, input usecase.SetActiveInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// AuthHandler handles authentication and user management endpoints.
type AuthHandler struct {
	userUC   UserService
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC UserService) *AuthHandler {
	return &AuthHandler{
		userUC:   userUC,
		validate: validator.New(),
	}
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	result, err := h.userUC.Login(r.Context(), req.ToUseCaseInput())
	if err != nil {
		// Login failures are always 401, never the usecase's 403.
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.UserFromDomain(result.User),
	})
}

// Me returns the authenticated caller's identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":      id.UserID,
		"username":    id.Username,
		"role":        id.Role,
		"counterName": id.CounterName,
	})
}

// CreateUser creates a new login.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userUC.CreateUser(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create user", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// ListUsers lists every login.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUC.ListUsers(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list users", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}

// ChangePassword rotates a user's password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req dto.ChangePasswordRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	if err := h.userUC.ChangePassword(r.Context(), req.ToUseCaseInput(userID)); err != nil {
		writeError(w, mapDomainError(err), "failed to change password", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetActive enables or disables a login.
func (h *AuthHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req dto.SetActiveRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userUC.SetActive(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
