package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	path := writeConfig(t, `
[api]
base_url = "https://api.example.com/v1"
timeout = "3s"
token = "abc"
attempts = 3

[cache]
backend = "redis"
ttl = "1m"
redis_addr = "cache:6379"
redis_db = 2

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.com/v1" || cfg.API.Token != "abc" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.API.Attempts != 3 {
		t.Errorf("API.Attempts = %d, want 3", cfg.API.Attempts)
	}
	if cfg.API.Timeout.Duration != 3*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != time.Minute || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Server != Default().Server {
		t.Errorf("Server = %+v, want defaults", cfg.Server)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://override.example.com")

	path := writeConfig(t, "[api]\nbase_url = \"https://file.example.com\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://override.example.com" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad duration", "[api]\ntimeout = \"soon\"\n", "invalid duration"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", "unsupported backend"},
		{"unknown key", "[api]\nbase_uri = \"x\"\n", "unknown keys"},
		{"syntax", "[api\n", "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != filepath.Join("/tmp/xdg", "seatplan", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
