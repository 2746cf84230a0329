package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rorostab/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(cacheURLEnv, "")
	c := New(&bytes.Buffer{}, log.InfoLevel)
	ctx := context.Background()

	got, err := c.newCache(ctx, true, "")
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want *cache.NullCache", got)
	}

	got, err = c.newCache(ctx, false, "")
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if _, ok := got.(*cache.FileCache); !ok {
		t.Errorf("newCache() = %T, want *cache.FileCache", got)
	}

	if _, err := c.newCache(ctx, false, "not a url"); err == nil {
		t.Error("newCache() with a malformed redis URL should fail")
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "result:abc", []byte("{}"), 0); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear, want 0", len(entries))
	}
}

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cache path = %q", got)
	}
}
