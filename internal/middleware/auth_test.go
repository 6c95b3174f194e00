package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sbelkacem/gosocial/internal/models"
	"github.com/sbelkacem/gosocial/internal/session"
	"github.com/sbelkacem/gosocial/internal/token"
)

func newAuthenticator(t *testing.T) (*Authenticator, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	return &Authenticator{
		Sessions: session.NewManager(store, false),
		Tokens:   token.New([]byte("test-secret"), time.Hour),
	}, store
}

func loginCookie(t *testing.T, a *Authenticator, store *session.MemoryStore, id models.Identity) *http.Cookie {
	t.Helper()
	signed, err := a.Tokens.Issue(id)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest("POST", "/login", nil)
	rr := httptest.NewRecorder()
	if err := a.Sessions.Bind(rr, req, signed); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func okHandler(t *testing.T, sawIdentity *models.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		if !ok {
			t.Error("identity missing from context")
		}
		*sawIdentity = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_Proceeds(t *testing.T) {
	a, store := newAuthenticator(t)
	alice := models.Identity{UserID: 1, Username: "alice", Email: "a@x.com"}
	cookie := loginCookie(t, a, store, alice)

	var saw models.Identity
	h := a.RequireAuth(okHandler(t, &saw))

	req := httptest.NewRequest("POST", "/posts", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if saw != alice {
		t.Errorf("identity: got %+v, want %+v", saw, alice)
	}
}

func TestRequireAuth_NoSession(t *testing.T) {
	a, _ := newAuthenticator(t)
	h := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest("POST", "/posts", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error body, got Content-Type %q", ct)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	store := session.NewMemoryStore()
	a := &Authenticator{
		Sessions: session.NewManager(store, false),
		Tokens:   token.New([]byte("test-secret"), -time.Second),
	}
	cookie := loginCookie(t, a, store, models.Identity{UserID: 1, Username: "alice"})

	h := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest("POST", "/posts", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestRequireAuthPage_RedirectsWhenUnauthenticated(t *testing.T) {
	a, _ := newAuthenticator(t)
	h := a.RequireAuthPage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/post", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect: got %q, want /login", loc)
	}
}

func TestRequireAuthPage_ProceedsWhenAuthenticated(t *testing.T) {
	a, store := newAuthenticator(t)
	cookie := loginCookie(t, a, store, models.Identity{UserID: 1, Username: "alice"})

	var saw models.Identity
	h := a.RequireAuthPage(okHandler(t, &saw))

	req := httptest.NewRequest("GET", "/post", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}
