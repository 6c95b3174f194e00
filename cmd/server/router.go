package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sbelkacem/gosocial/internal/config"
	"github.com/sbelkacem/gosocial/internal/handlers"
	"github.com/sbelkacem/gosocial/internal/middleware"
	"github.com/sbelkacem/gosocial/internal/repo"
	"github.com/sbelkacem/gosocial/internal/session"
	"github.com/sbelkacem/gosocial/internal/token"
)

// newRouter wires the full HTTP surface: pages, auth, post API, health and
// metrics. db may carry a sqlmock in tests; the session and post stores are
// injected so tests can run on memory backends.
func newRouter(db *sql.DB, sessions session.Store, posts repo.PostStore, cfg config.Config) (http.Handler, error) {
	tokens := token.New([]byte(cfg.JWTSecret), time.Duration(cfg.TokenExpireMinutes)*time.Minute)
	manager := session.NewManager(sessions, cfg.TLSCertFile != "" && cfg.TLSKeyFile != "")
	authn := &middleware.Authenticator{Sessions: manager, Tokens: tokens}

	authHandler := &handlers.AuthHandler{
		Users:    repo.NewUserRepo(db),
		Tokens:   tokens,
		Sessions: manager,
	}
	postHandler := &handlers.PostHandler{Store: posts}
	pageHandler, err := handlers.NewPageHandler()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health, readiness, metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public pages
	r.Get("/", pageHandler.Landing)
	r.Get("/register", pageHandler.RegisterForm)
	r.Get("/login", pageHandler.LoginForm)
	r.Get("/logout", authHandler.Logout)

	// Soft-gated pages: unauthenticated clients are sent to /login
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireAuthPage)
		r.Get("/post", pageHandler.PostPage)
	})

	// Credential endpoints, rate limited per IP
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Post API, strict auth: failures are 401 JSON, never redirects
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireAuth)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Get("/posts", postHandler.ListPosts)
		r.Post("/posts", postHandler.CreatePost)
		r.Put("/posts/{postID}", postHandler.UpdatePost)
		r.Delete("/posts/{postID}", postHandler.DeletePost)
	})

	return r, nil
}
