package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss on unknown key
	_, hit, err := c.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss for unknown key")
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("data = %q, want %q", data, "value")
	}

	// Delete makes it a miss again
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.WriteFile(c.path("key"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("corrupt entry should be a miss")
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry should have been removed")
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "fresh", []byte("a"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Set(ctx, "forever", []byte("b"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Set(ctx, "stale", []byte("c"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	removed, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d entries, want 1", removed)
	}

	for _, key := range []string{"fresh", "forever"} {
		if _, hit, _ := c.Get(ctx, key); !hit {
			t.Errorf("Prune should keep %q", key)
		}
	}
	if _, hit, _ := c.Get(ctx, "stale"); hit {
		t.Error("Prune should remove expired entries")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("CS101"))
	h2 := Hash([]byte("CS101"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("CS201"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashEntries(t *testing.T) {
	a := map[string]string{"CS101": "", "CS201": "CS101"}
	b := map[string]string{"CS201": "CS101", "CS101": ""}
	if HashEntries(a) != HashEntries(b) {
		t.Error("HashEntries should not depend on map iteration order")
	}

	c := map[string]string{"CS101": "", "CS201": "MATH101"}
	if HashEntries(a) == HashEntries(c) {
		t.Error("Different entries should produce different hashes")
	}

	// Key/value boundaries must matter
	d := map[string]string{"CS101C": "S201", "CS201": "CS101"}
	if HashEntries(a) == HashEntries(d) {
		t.Error("Shifting bytes between key and value should change the hash")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	httpKey := k.HTTPKey("catalogue", "CS101")
	if httpKey != "http:catalogue:CS101" {
		t.Errorf("HTTPKey unexpected: %s", httpKey)
	}

	if k.CatalogKey("abc") != "catalog:abc" {
		t.Errorf("CatalogKey unexpected: %s", k.CatalogKey("abc"))
	}
	if k.OrderKey("abc") != "order:abc" {
		t.Errorf("OrderKey unexpected: %s", k.OrderKey("abc"))
	}

	// EligibilityKey should include the completed set
	ek1 := k.EligibilityKey("abc", []string{"CS101"})
	ek2 := k.EligibilityKey("abc", []string{"CS101", "CS201"})
	if ek1 == ek2 {
		t.Error("Different completed sets should produce different keys")
	}

	// ...but be insensitive to ordering
	ek3 := k.EligibilityKey("abc", []string{"CS201", "CS101"})
	if ek2 != ek3 {
		t.Error("EligibilityKey should not depend on completed slice order")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "ualberta:")

	httpKey := scoped.HTTPKey("catalogue", "CS101")
	if httpKey != "ualberta:http:catalogue:CS101" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", httpKey)
	}

	catKey := scoped.CatalogKey("abc")
	if catKey != "ualberta:catalog:abc" {
		t.Errorf("ScopedKeyer CatalogKey unexpected: %s", catKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.OrderKey("h"); key != "prefix:order:h" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
