package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the client-side half of Session Binding: the cookie carries
// only an opaque session ID, never the token itself.
const CookieName = "gosocial_session"

// Manager ties the session cookie to the server-side store. Handlers go
// through it so cookie handling stays in one place.
type Manager struct {
	Store  Store
	Secure bool
}

func NewManager(store Store, secure bool) *Manager {
	return &Manager{Store: store, Secure: secure}
}

// Bind stores the token under the request's session, creating a session ID
// and setting the cookie when the client does not have one yet.
func (m *Manager) Bind(w http.ResponseWriter, r *http.Request, token string) error {
	id := m.sessionID(r)
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   m.Secure,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(DefaultTTL),
		})
	}
	return m.Store.Bind(r.Context(), id, token)
}

// Current returns the token bound to the request's session, or ErrNoSession.
func (m *Manager) Current(r *http.Request) (string, error) {
	id := m.sessionID(r)
	if id == "" {
		return "", ErrNoSession
	}
	return m.Store.Current(r.Context(), id)
}

// Clear destroys the server-side session and expires the cookie. Store
// failures are logged, not surfaced: the caller redirects to a logged-out
// view either way.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if id := m.sessionID(r); id != "" {
		if err := m.Store.Clear(r.Context(), id); err != nil {
			slog.Error("session clear failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (m *Manager) sessionID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	return c.Value
}
