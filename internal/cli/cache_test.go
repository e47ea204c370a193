package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coursegraph/coursegraph/pkg/cache"
)

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "one.json"), []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "two.json"), []byte("123"), 0o644); err != nil {
		t.Fatal(err)
	}

	count, size, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size != 8 {
		t.Errorf("bytes = %d, want 8", size)
	}
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Error("empty shard directory should be removed")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Error("the cache root itself should survive")
	}
}

func TestClearDirMissing(t *testing.T) {
	count, size, err := clearDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("clearDir() error = %v", err)
	}
	if count != 0 || size != 0 {
		t.Errorf("clearDir(missing) = (%d, %d), want (0, 0)", count, size)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, _ := testCLI(t)

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}

	if _, hit, _ := fc.Get(context.Background(), "k"); hit {
		t.Error("cache clear should remove stored entries")
	}
}

func TestCachePruneCommand(t *testing.T) {
	c, _ := testCLI(t)

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "fresh", []byte("a"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(ctx, "stale", []byte("b"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "prune"})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache prune failed: %v", err)
	}

	if _, hit, _ := fc.Get(ctx, "fresh"); !hit {
		t.Error("cache prune should keep fresh entries")
	}
	if _, hit, _ := fc.Get(ctx, "stale"); hit {
		t.Error("cache prune should remove expired entries")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
