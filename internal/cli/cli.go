// Package cli implements the rorostab command-line interface.
//
// The CLI loads a loading condition and the vessel's hydrostatic and KN
// tables, runs the stability calculation, and prints a styled report. It is
// built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - calc: Full stability assessment of a loading condition
//   - imo: IMO A.749 intact stability check of a GZ curve given on the command line
//   - site: Site requirement profiles and checklists
//   - cache: Manage the local result cache
//   - completion: Shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes the trim solver's per-iteration trace.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rorostab/pkg/buildinfo"
	"github.com/matzehuels/rorostab/pkg/cache"
	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/stability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rorostab"

	// cacheURLEnv names a Redis URL used instead of the local file cache.
	cacheURLEnv = "ROROSTAB_CACHE_URL"
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Rorostab checks the intact stability of RoRo vessels",
		Long:         `Rorostab computes displacement, trim, GM and the GZ curve of a loading condition from hydrostatic tables, and checks the result against IMO A.749 and site requirements.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.calcCommand())
	root.AddCommand(c.imoCommand())
	root.AddCommand(c.siteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a stability runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cacheURL string) (*stability.Runner, error) {
	backend, err := c.newCache(ctx, noCache, cacheURL)
	if err != nil {
		return nil, err
	}
	return stability.NewRunner(backend, nil, c.Logger), nil
}

// newCache picks the result cache: none, Redis when a URL is given, or the
// local file cache. An unreachable Redis falls back to the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool, cacheURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(c.Logger), nil
	}
	if cacheURL == "" {
		cacheURL = os.Getenv(cacheURLEnv)
	}
	if cacheURL != "" {
		rc, err := cache.NewRedisCache(ctx, cacheURL)
		if err == nil {
			c.Logger.Debug("using redis cache", "url", cacheURL)
			return rc, nil
		}
		if !errors.Is(err, cache.ErrUnavailable) {
			return nil, err
		}
		c.Logger.Warn("redis cache unavailable, using local cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(c.Logger), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rorostab/).
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

// parseFloats parses a comma-separated list of numbers such as "0,10,20".
// An empty string yields nil.
func parseFloats(flag, s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "--%s: %q is not a number", flag, p)
		}
		out[i] = v
	}
	return out, nil
}
