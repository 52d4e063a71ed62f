package handler

import (
	"net/http"

	"github.com/eshopsolution/admin-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type authenticateRequest struct {
	UserName   string `json:"user_name" validate:"required"`
	Password   string `json:"password"  validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type authenticateResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	UserName string `json:"user_name" validate:"required,min=3"`
	Password string `json:"password"  validate:"required,min=6"`
	Email    string `json:"email"     validate:"required,email"`
	Name     string `json:"name"      validate:"required"`
	Phone    string `json:"phone"`
}

type updateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone"`
}

type roleSelectionRequest struct {
	Name     string `json:"name" validate:"required"`
	Selected bool   `json:"selected"`
}

type assignRolesRequest struct {
	Roles []roleSelectionRequest `json:"roles" validate:"required,min=1,dive"`
}

// failureStatus maps a business failure kind to its HTTP status code.
func failureStatus(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureNotFound:
		return http.StatusNotFound
	case domain.FailureUnauthorized:
		return http.StatusUnauthorized
	case domain.FailureConflict:
		return http.StatusConflict
	case domain.FailureValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
