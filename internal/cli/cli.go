package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/busline/seatplan/internal/config"
	"github.com/busline/seatplan/pkg/buildinfo"
	"github.com/busline/seatplan/pkg/cache"
	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/seatmap"
	"github.com/busline/seatplan/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seatplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	verbose    bool
	draftDir   string // empty uses the user config dir
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose forces debug logging regardless of the configured level.
func (c *CLI) SetVerbose(v bool) {
	c.verbose = v
	if v {
		c.SetLogLevel(LogDebug)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Seatplan draws bus seat maps and manages seat picks",
		Long:          `Seatplan fetches seat availability for a trip, lays the seats out in the bus model's physical arrangement and lets you pick seats for a booking.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/seatplan/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the seat-data cache")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.draftCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig reads the config file and applies its log level unless
// --verbose already asked for debug output.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if !c.verbose && cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		c.SetLogLevel(level)
	}
	return nil
}

// =============================================================================
// Client Factory
// =============================================================================

// newSeatClient creates a seat-data client for CLI use.
func (c *CLI) newSeatClient(ctx context.Context) (*seatdata.Client, cache.Cache, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	client := seatdata.NewClient(seatdata.Config{
		BaseURL:  c.cfg.API.BaseURL,
		Token:    c.cfg.API.Token,
		Timeout:  c.cfg.API.Timeout.Duration,
		Cache:    cc,
		TTL:      c.cfg.Cache.TTL.Duration,
		Attempts: c.cfg.API.Attempts,
	})
	return client, cc, nil
}

// newCache opens the configured cache backend. A file cache that cannot be
// created degrades to no caching.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newDraftStore opens the draft store under the config directory.
func (c *CLI) newDraftStore() (*session.FileStore, error) {
	return session.NewFileStore(c.draftDir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/seatplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// keyFlags holds the trip key flags shared by several commands.
type keyFlags struct {
	trip  string
	model string
	date  string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&k.trip, "trip", "t", "", "trip id")
	cmd.Flags().StringVarP(&k.model, "bus-model", "m", "", "bus model: "+seatmap.ModelNames())
	cmd.Flags().StringVarP(&k.date, "date", "d", "", "departure date (YYYY-MM-DD)")
}

func (k *keyFlags) key() seatdata.Key {
	return seatdata.NewKey(k.trip, k.model, k.date)
}

// joinInts formats seat numbers for display.
func joinInts(nums []int) string {
	if len(nums) == 0 {
		return "none"
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
