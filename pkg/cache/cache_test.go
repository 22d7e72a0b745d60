package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/carousel/pkg/errors"
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

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "frame:abc"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "frame:abc", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "frame:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get data = %q, want %q", data, "<svg/>")
	}

	if err := c.Delete(ctx, "frame:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "frame:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "frame:abc"); err != nil {
		t.Errorf("Delete of missing key should succeed, got %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss without error", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Clear should keep the cache directory: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	if HashJSON([]int{1, 2}) != Hash([]byte("[1,2]")) {
		t.Error("HashJSON should hash the JSON encoding")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	fk1 := k.FrameKey("catalog", FrameKeyOpts{Offset: 0, ViewportWidth: 390})
	fk2 := k.FrameKey("catalog", FrameKeyOpts{Offset: 210, ViewportWidth: 390})
	if fk1 == fk2 {
		t.Error("Different offsets should produce different frame keys")
	}
	if !strings.HasPrefix(fk1, "frame:") {
		t.Errorf("FrameKey should start with frame:, got %s", fk1)
	}
	if fk1 != k.FrameKey("catalog", FrameKeyOpts{Offset: 0, ViewportWidth: 390}) {
		t.Error("FrameKey should be deterministic")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak2, "artifact:png:") {
		t.Errorf("ArtifactKey should carry the format, got %s", ak2)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "catalog:123:")

	opts := FrameKeyOpts{ViewportWidth: 390}
	if got, want := scoped.FrameKey("h", opts), "catalog:123:"+inner.FrameKey("h", opts); got != want {
		t.Errorf("ScopedKeyer FrameKey = %s, want %s", got, want)
	}

	artifactKey := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(artifactKey, "catalog:123:artifact:svg:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", artifactKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "json"})
	if !strings.HasPrefix(key, "prefix:artifact:json:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
		wantType string
	}{
		{"default is file", Options{Dir: t.TempDir()}, "", "*cache.FileCache"},
		{"none", Options{Backend: BackendNone}, "", "*cache.NullCache"},
		{"file without dir", Options{Backend: BackendFile}, errors.ErrCodeInvalidConfig, ""},
		{"redis without url", Options{Backend: BackendRedis}, errors.ErrCodeInvalidConfig, ""},
		{"redis bad url", Options{Backend: BackendRedis, RedisURL: "not a url"}, errors.ErrCodeInvalidConfig, ""},
		{"unknown", Options{Backend: "memcached"}, errors.ErrCodeUnsupported, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Open() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer c.Close()
			if got := typeName(c); got != tt.wantType {
				t.Errorf("Open() type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *FileCache:
		return "*cache.FileCache"
	case *NullCache:
		return "*cache.NullCache"
	case *RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}
