package middleware

import (
	"context"
	"net/http"

	"github.com/sbelkacem/gosocial/internal/models"
	"github.com/sbelkacem/gosocial/internal/session"
	"github.com/sbelkacem/gosocial/internal/token"
)

type ctxKey string

const identityKey ctxKey = "identity"

// GetIdentity returns the authenticated identity attached by RequireAuth or
// RequireAuthPage.
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}

// WithIdentity attaches an identity to the context the same way the auth
// middleware does. Handler tests use it to stand in for the middleware.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Authenticator recovers the caller's identity from the session-bound token.
// Both variants run the same resolution: session cookie -> stored token ->
// verify -> identity in context. One verification attempt per request.
type Authenticator struct {
	Sessions *session.Manager
	Tokens   *token.Service
}

// resolve returns the identity for the request, or false when the session has
// no token or the token does not verify.
func (a *Authenticator) resolve(r *http.Request) (models.Identity, bool) {
	tok, err := a.Sessions.Current(r)
	if err != nil {
		return models.Identity{}, false
	}
	id, err := a.Tokens.Verify(tok)
	if err != nil {
		return models.Identity{}, false
	}
	return id, true
}

// RequireAuth is the strict variant: state-mutating API routes. Absent or
// invalid token means 401 with a JSON body, never a redirect.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.resolve(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAuthPage is the soft variant: page navigation. Absent or invalid
// token sends the client to the login page; invalid tokens also drop the
// dead session so the next login starts clean.
func (a *Authenticator) RequireAuthPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.resolve(r)
		if !ok {
			a.Sessions.Clear(w, r)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
