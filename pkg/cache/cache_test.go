package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
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

	// Still a miss after Set
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

	if _, hit, _ := c.Get(ctx, "seats:T1"); hit {
		t.Fatal("empty cache should miss")
	}

	if err := c.Set(ctx, "seats:T1", []byte(`{"seats":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "seats:T1")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != `{"seats":[]}` {
		t.Errorf("Get = %q", data)
	}

	if err := c.Delete(ctx, "seats:T1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "seats:T1"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "seats:T1"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCache_NoTTL(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCache_Corrupt(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Errorf("corrupt entry should not error, got %v", err)
	}
	if hit {
		t.Error("corrupt entry should miss")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestFileCache_ConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	const writers = 16
	payload := func(i int) []byte { return bytes.Repeat([]byte{byte('a' + i)}, 4096) }

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Set(ctx, "seats", payload(i), time.Hour)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("Set: %v", err)
		}
	}

	got, hit, err := c.Get(ctx, "seats")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	whole := false
	for i := range writers {
		if bytes.Equal(got, payload(i)) {
			whole = true
		}
	}
	if !whole {
		t.Errorf("entry is not any single writer's payload (len %d)", len(got))
	}

	leftovers, _ := filepath.Glob(filepath.Join(c.Dir(), "*", "*.tmp"))
	if len(leftovers) > 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner, _ := NewFileCache(t.TempDir())

	a := NewScoped(inner, "a:")
	b := NewScoped(inner, "b:")

	if err := a.Set(ctx, "k", []byte("from a"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, hit, _ := b.Get(ctx, "k"); hit {
		t.Error("scopes should not share keys")
	}
	data, hit, _ := inner.Get(ctx, "a:k")
	if !hit || string(data) != "from a" {
		t.Errorf("inner Get(a:k) = %q, %v", data, hit)
	}
	if a.Prefix() != "a:" {
		t.Errorf("Prefix() = %q", a.Prefix())
	}

	if err := a.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := inner.Get(ctx, "a:k"); hit {
		t.Error("scoped Delete should remove the prefixed key")
	}
}

func TestScoped_NilInner(t *testing.T) {
	s := NewScoped(nil, "x:")
	if err := s.Set(context.Background(), "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := s.Get(context.Background(), "k"); hit {
		t.Error("nil inner should behave like NullCache")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	if got := Key("seats", "T1", "vip", "2025-01-02"); got != "seats:T1:vip:2025-01-02" {
		t.Errorf("Key() = %q", got)
	}
	if got := Key(); got != "" {
		t.Errorf("Key() = %q, want empty", got)
	}
}
