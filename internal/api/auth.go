package api

import (
	"errors"
	"net/http"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
)

type AuthHandler struct {
	users    *services.UserService
	sessions *auth.Manager
}

func NewAuthHandler(users *services.UserService, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.sessions.StartSession(w, r, user.ID); err != nil {
		writeError(w, r, apperror.Wrap(apperror.KindInternal, err, "start session"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.AuthenticateUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			logger.Component("api").With("username", req.Username).With("remote", r.RemoteAddr).Warn("failed login attempt")
		}
		writeError(w, r, err)
		return
	}
	if err := h.sessions.StartSession(w, r, user.ID); err != nil {
		writeError(w, r, apperror.Wrap(apperror.KindInternal, err, "start session"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.EndSession(w, r); err != nil {
		writeError(w, r, apperror.Wrap(apperror.KindInternal, err, "end session"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/v1/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// PUT /api/v1/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), auth.UserIDFromContext(r.Context()), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// POST /api/v1/profile/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), auth.UserIDFromContext(r.Context()), &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
