package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.JWT.AccessTokenTTL.Std() != 15*time.Minute {
		t.Errorf("default access ttl = %v, want 15m", cfg.JWT.AccessTokenTTL.Std())
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("jwt secret = %q, want env value", cfg.JWT.Secret)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load without a jwt secret should fail")
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, `
server:
  port: 9090
  env: production
jwt:
  secret: file-secret
  access_token_ttl: 30m
  refresh_token_ttl: 72h
database:
  user: lumen
  password: pw
  name: lumendb
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.Env != "production" {
		t.Errorf("server = %+v, want port 9090 env production", cfg.Server)
	}
	if cfg.JWT.AccessTokenTTL.Std() != 30*time.Minute {
		t.Errorf("access ttl = %v, want 30m", cfg.JWT.AccessTokenTTL.Std())
	}
	if cfg.JWT.RefreshTokenTTL.Std() != 72*time.Hour {
		t.Errorf("refresh ttl = %v, want 72h", cfg.JWT.RefreshTokenTTL.Std())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
jwt:
  secret: file-secret
`)
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_HOST", "db.test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("jwt secret = %q, want env override", cfg.JWT.Secret)
	}
	if cfg.Database.Host != "db.test" {
		t.Errorf("db host = %q, want env override", cfg.Database.Host)
	}
}

func TestDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "lumen")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := "u:p@tcp(127.0.0.1:3306)/lumen?charset=utf8mb4&parseTime=True&loc=Local"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestDurationUnmarshalInvalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	path := writeConfig(t, `
jwt:
  secret: s
  access_token_ttl: not-a-duration
`)

	if _, err := Load(path); err == nil {
		t.Error("Load with an invalid duration should fail")
	}
}
