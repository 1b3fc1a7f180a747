package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

log:
  level: "debug"
  format: "text"

cors:
  allowed_origins: "https://cards.example.com"
`

func TestLoad_FromEnvOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("default shutdown timeout: got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("default log config: %+v", cfg.Log)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("default CORS origins: got %q", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	validEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: got %q, want debug", cfg.Log.Level)
	}
	if cfg.CORS.AllowedOrigins != "https://cards.example.com" {
		t.Errorf("CORS origins: got %q", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	validEnv(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7777")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("env should override yaml: got %d, want 7777", cfg.Server.Port)
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestValidate_MinConnsAboveMax(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_MAX_CONNS", "5")
	t.Setenv("DATABASE_MIN_CONNS", "10")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for min_conns > max_conns")
	}
}
