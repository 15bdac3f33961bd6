// Package auth keeps the logged-in user in a signed cookie session.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
)

const (
	sessionName   = "eco-session"
	userIDKey     = "user_id"
	sessionMaxAge = 7 * 24 * 60 * 60
)

type contextKey struct{}

type Manager struct {
	store sessions.Store
}

// NewManager signs session cookies with secret. secure marks the cookie
// HTTPS only.
func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

func (m *Manager) StartSession(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

func (m *Manager) EndSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// GetUserIDFromSession returns "" when the request carries no valid session.
func (m *Manager) GetUserIDFromSession(r *http.Request) string {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	id, _ := session.Values[userIDKey].(string)
	return id
}

// Middleware rejects requests without a session and stores the user id in
// the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := m.GetUserIDFromSession(r)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": apperror.New(apperror.KindUnauthorized, "authentication required"),
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
