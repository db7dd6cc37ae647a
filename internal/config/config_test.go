package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "API_PORT", "DB_DSN", "CORS_ORIGIN", "JWT_SECRET", "TOKEN_TTL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" || cfg.Port != "8080" {
		t.Errorf("defaults: env=%q port=%q", cfg.Env, cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl: %v", cfg.TokenTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("API_PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "prod" || cfg.Port != "9090" || cfg.TokenTTL != 30*time.Minute {
		t.Errorf("env overrides: %+v", cfg)
	}
}

func TestLoadBadTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unparsable TOKEN_TTL")
	}
}

func TestLoadFileWinsOverEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"7070\"\njwt_secret: file-secret\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("port: got %q, want 7070", cfg.Port)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("jwt secret: got %q", cfg.JWTSecret)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
