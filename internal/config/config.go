// Package config loads seatplan settings from a TOML file.
//
// Every field has a default, so a missing file is not an error. The
// environment variable SEATPLAN_API_URL overrides api.base_url; CLI flags
// override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvAPIURL overrides [API.BaseURL] when set.
const EnvAPIURL = "SEATPLAN_API_URL"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	API    API    `toml:"api"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// API configures the booking backend client.
type API struct {
	BaseURL  string   `toml:"base_url"`
	Timeout  Duration `toml:"timeout"`
	Token    string   `toml:"token"`
	Attempts int      `toml:"attempts"` // tries per fetch; 1 disables retry
}

// Cache configures the seat-data response cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// Server configures `seatplan serve`.
type Server struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string ("10s", "1m30s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: API{
			BaseURL:  "http://localhost:8080/api/v1",
			Timeout:  Duration{10 * time.Second},
			Attempts: 1,
		},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration{30 * time.Second},
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr:            ":8090",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{10 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/seatplan/config.toml, falling back
// to the OS user config directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "seatplan", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "seatplan", "config.toml")
}

// Load reads path over the defaults and applies environment overrides.
// An empty path selects [DefaultPath]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	return cfg, cfg.Validate()
}

// Validate checks values the defaults cannot repair.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("cache.backend: unsupported backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url cannot be empty")
	}
	if c.API.Timeout.Duration < 0 || c.Cache.TTL.Duration < 0 {
		return errors.New("durations cannot be negative")
	}
	return nil
}
