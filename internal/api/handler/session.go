// internal/api/handler/session.go
package handler

import (
	"log/slog"
	"net/http"

	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// SessionHandler handles HTTP requests related to the login session.
type SessionHandler struct {
	responder
	service service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// SessionResponse describes the current session.
type SessionResponse struct {
	LoggedIn bool         `json:"logged_in"`
	Loading  bool         `json:"loading"`
	User     *domain.User `json:"user,omitempty"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password"` // Accepted, never checked
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequireSession rejects requests with 401 while no user is logged in.
func (h *SessionHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.service.CurrentUser() == nil {
			h.respondWithError(w, util.ErrNotLoggedIn)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession reports the current user.
// GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user := h.service.CurrentUser()
	h.respondWithJSON(w, http.StatusOK, SessionResponse{
		LoggedIn: user != nil,
		Loading:  h.service.IsLoading(),
		User:     user,
	})
}

// Login handles the login request.
// POST /session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, SessionResponse{LoggedIn: true, User: user})
}

// Signup handles the signup request.
// POST /session/signup
func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, SessionResponse{LoggedIn: true, User: user})
}

// Logout ends the session. It succeeds even when nobody is logged in.
// POST /session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
