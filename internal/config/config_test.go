package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "5000" {
		t.Errorf("Port default: got %q, want 5000", cfg.Port)
	}
	if cfg.DBName != "socialdb" {
		t.Errorf("DBName default: got %q, want socialdb", cfg.DBName)
	}
	if cfg.TokenExpireMinutes != 60 {
		t.Errorf("TokenExpireMinutes default: got %d, want 60", cfg.TokenExpireMinutes)
	}
	if cfg.PostStore != PostStorePostgres {
		t.Errorf("PostStore default: got %q, want postgres", cfg.PostStore)
	}
	if !cfg.MigrateOnStart {
		t.Error("MigrateOnStart default: got false, want true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("POST_STORE", "memory")
	t.Setenv("TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("Port: got %q, want 8081", cfg.Port)
	}
	if cfg.PostStore != PostStoreMemory {
		t.Errorf("PostStore: got %q, want memory", cfg.PostStore)
	}
	if cfg.TokenExpireMinutes != 15 {
		t.Errorf("TokenExpireMinutes: got %d, want 15", cfg.TokenExpireMinutes)
	}
	if cfg.MigrateOnStart {
		t.Error("MigrateOnStart: got true, want false")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigins: got %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_MINUTES", "not-a-number")
	if got := Load().TokenExpireMinutes; got != 60 {
		t.Errorf("invalid int should fall back: got %d, want 60", got)
	}
}
