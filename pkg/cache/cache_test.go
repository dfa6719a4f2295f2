package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
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
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "placement:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// Round trip
	want := []byte(`{"components": []}`)
	if err := c.Set(ctx, "placement:abc", want, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "placement:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Expired entries read as misses
	if err := c.Set(ctx, "placement:old", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "placement:old"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "placement:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "placement:abc"); hit {
		t.Error("deleted entry should be a miss")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "placement:never"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Entries land in one subdirectory per stage prefix.
	keys := map[string]string{
		"board:h1":     "board",
		"placement:h2": "placement",
		"artifact:h3":  "artifact",
		"noprefix":     "misc",
	}
	for key, stage := range keys {
		if err := c.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatalf("Set %q: %v", key, err)
		}
		entries, err := os.ReadDir(filepath.Join(dir, stage))
		if err != nil {
			t.Fatalf("stage dir %q: %v", stage, err)
		}
		if len(entries) != 1 {
			t.Errorf("stage %q has %d entries, want 1", stage, len(entries))
		}
	}

	// A TTL of 0 means no expiration.
	if _, hit, _ := c.Get(ctx, "board:h1"); !hit {
		t.Error("entry with zero TTL should not expire")
	}
}

func TestKeyStage(t *testing.T) {
	cases := map[string]string{
		"board:abc":       "board",
		"placement:def":   "placement",
		"proj:board:abc":  "proj",
		"plainkey":        "misc",
		":leadingcolon":   "misc",
		"artifact:a:b::c": "artifact",
	}
	for key, want := range cases {
		if got := keyStage(key); got != want {
			t.Errorf("keyStage(%q) = %q, want %q", key, got, want)
		}
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
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// BoardKey embeds the content hash directly
	if got := k.BoardKey("abc123"); got != "board:abc123" {
		t.Errorf("BoardKey unexpected: %s", got)
	}

	// PlacementKey should include options in hash
	pk1 := k.PlacementKey("h1", PlacementKeyOpts{ConfigHash: "c1", Iterations: 1000, Dt: 0.01})
	pk2 := k.PlacementKey("h1", PlacementKeyOpts{ConfigHash: "c1", Iterations: 2000, Dt: 0.01})
	if pk1 == pk2 {
		t.Error("Different PlacementKeyOpts should produce different keys")
	}
	pk3 := k.PlacementKey("h2", PlacementKeyOpts{ConfigHash: "c1", Iterations: 1000, Dt: 0.01})
	if pk1 == pk3 {
		t.Error("Different board hashes should produce different keys")
	}

	// Determinism
	pk4 := k.PlacementKey("h1", PlacementKeyOpts{ConfigHash: "c1", Iterations: 1000, Dt: 0.01})
	if pk1 != pk4 {
		t.Error("Equal inputs should produce equal keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("p1", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("p1", ArtifactKeyOpts{Format: "dot"})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "proj:demo:")

	if got, want := scoped.BoardKey("abc"), "proj:demo:"+inner.BoardKey("abc"); got != want {
		t.Errorf("BoardKey = %q, want %q", got, want)
	}

	opts := PlacementKeyOpts{ConfigHash: "c1", Iterations: 100, Dt: 0.01}
	if got, want := scoped.PlacementKey("h1", opts), "proj:demo:"+inner.PlacementKey("h1", opts); got != want {
		t.Errorf("PlacementKey = %q, want %q", got, want)
	}

	// Nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if got := fallback.BoardKey("abc"); got != "p:board:abc" {
		t.Errorf("fallback BoardKey = %q", got)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("non-retryable fails immediately", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return errors.New("permanent")
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retryable succeeds on second attempt", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 2 {
				return Retryable(errors.New("transient"))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("RetryWithBackoff: %v", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})
}
