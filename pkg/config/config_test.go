package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"PORT", "DAILY_API_KEY", "DAILY_DOMAIN", "DAILY_API_URL", "MANAGER_PASS", "NATS_URL", "SHUTDOWN_TIMEOUT_SECONDS", "PROVIDER_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("calls")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.HTTPPort != 3000 {
		t.Fatalf("expected port 3000 got %d", cfg.HTTPPort)
	}
	if cfg.DailyAPIURL != "https://api.daily.co/v1" {
		t.Fatalf("unexpected api url %q", cfg.DailyAPIURL)
	}
	if cfg.ShutdownTimeout != 10*time.Second || cfg.ProviderTimeout != 30*time.Second {
		t.Fatalf("unexpected timeouts: %v %v", cfg.ShutdownTimeout, cfg.ProviderTimeout)
	}
	if cfg.ServiceName != "calls" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if got := len(cfg.Warnings()); got != 2 {
		t.Fatalf("expected 2 warnings got %d", got)
	}
}

func TestLoadEnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "DAILY_API_KEY=file-key\nDAILY_DOMAIN=museflow.daily.co\nMANAGER_PASS=from-file\nPORT=4000\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("DAILY_API_KEY", "")
	t.Setenv("DAILY_DOMAIN", "")
	t.Setenv("PORT", "")
	t.Setenv("MANAGER_PASS", "from-env")
	t.Setenv("DAILY_API_URL", "http://localhost:9999/v1/")

	cfg, err := Load("calls")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DailyAPIKey != "file-key" || cfg.DailyDomain != "museflow.daily.co" {
		t.Fatalf("env file values not applied: %+v", cfg)
	}
	if cfg.ManagerPass != "from-env" {
		t.Fatalf("expected environment to win, got %q", cfg.ManagerPass)
	}
	if cfg.HTTPPort != 4000 {
		t.Fatalf("expected port 4000 got %d", cfg.HTTPPort)
	}
	if cfg.DailyAPIURL != "http://localhost:9999/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.DailyAPIURL)
	}
	if len(cfg.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", cfg.Warnings())
	}
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "not-a-number")
	if _, err := Load("calls"); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}
