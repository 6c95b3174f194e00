package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/sbelkacem/gosocial/internal/config"
	"github.com/sbelkacem/gosocial/internal/db"
	"github.com/sbelkacem/gosocial/internal/repo"
	"github.com/sbelkacem/gosocial/internal/scheduler"
	"github.com/sbelkacem/gosocial/internal/session"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		slog.Error("refusing to start in prod with the default JWT_SECRET")
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	slog.Info("database connected", "name", cfg.DBName)

	if cfg.MigrateOnStart {
		if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	sessions := session.NewPostgresStore(database)

	var posts repo.PostStore
	switch cfg.PostStore {
	case config.PostStoreMemory:
		// Volatile, like the original's in-memory post array.
		slog.Warn("posts are kept in memory and will not survive a restart")
		posts = repo.NewMemoryPostStore()
	default:
		posts = repo.NewPostRepo(database)
	}

	sched := scheduler.New(sessions)
	if err := sched.Start(); err != nil {
		slog.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	router, err := newRouter(database, sessions, posts, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("server listening with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("server listening", "addr", addr)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
