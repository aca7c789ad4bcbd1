package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerhouse/minibank-server/internal/api/http/middleware"
	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
	"github.com/ledgerhouse/minibank-server/internal/service"
)

// AuthService defines the signup, login and logout operations.
type AuthService interface {
	Signup(ctx context.Context, input service.SignupInput, current *model.Identity) (service.AuthResult, error)
	Login(ctx context.Context, email, password string, current *model.Identity) (service.AuthResult, error)
	Logout(ctx context.Context, current *model.Identity, transport model.RequestTransport) (string, error)
}

// Auth handles the auth.* RPC endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Region      string `json:"region"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Region    string `json:"region"`
	CreatedAt string `json:"createdAt"`
}

type authResponse struct {
	User          userPayload `json:"user"`
	Token         string      `json:"token"`
	Notifications []string    `json:"notifications,omitempty"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type meResponse struct {
	User *userPayload `json:"user"`
}

func identityPayload(identity model.Identity) userPayload {
	return userPayload{
		ID:        identity.ID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Phone:     identity.Phone,
		Region:    identity.Region,
		CreatedAt: identity.CreatedAt.Format(time.RFC3339),
	}
}

// Signup handles auth.signup.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: responseError{
			Code: "validation_error", Message: "invalid JSON payload",
		}})
		return
	}

	result, err := h.authService.Signup(r.Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Region:      req.Region,
		DateOfBirth: req.DateOfBirth,
		SSN:         req.SSN,
	}, middleware.IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	setSessionCookie(w, result.Token, result.ExpiresAt)
	writeJSON(w, http.StatusOK, authResponse{
		User:          identityPayload(result.User),
		Token:         result.Token,
		Notifications: result.Notifications,
	})
}

// Login handles auth.login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: responseError{
			Code: "validation_error", Message: "invalid JSON payload",
		}})
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password,
		middleware.IdentityFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	setSessionCookie(w, result.Token, result.ExpiresAt)
	writeJSON(w, http.StatusOK, authResponse{
		User:  identityPayload(result.User),
		Token: result.Token,
	})
}

// Logout handles auth.logout. It always succeeds for the end user and
// always clears the cookie.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	message, err := h.authService.Logout(r.Context(),
		middleware.IdentityFromContext(r.Context()),
		middleware.TransportFromRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, logoutResponse{Success: true, Message: message})
}

// Me handles auth.me: the resolved identity, or null for anonymous callers.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusOK, meResponse{User: nil})
		return
	}
	payload := identityPayload(*identity)
	writeJSON(w, http.StatusOK, meResponse{User: &payload})
}
