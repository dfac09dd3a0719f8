package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	if err := backend.Set(ctx, "k1", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, found, err := backend.Get(ctx, "k1")
	if err != nil || !found {
		t.Fatalf("Get = (%v, %v), want hit", found, err)
	}
	if string(data) != "v1" {
		t.Errorf("Get returned %q", data)
	}

	if err := backend.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := backend.Get(ctx, "k1"); found {
		t.Error("key should be gone after Delete")
	}
}

func TestMemoryBackendExpiry(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	if err := backend.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, found, _ := backend.Get(ctx, "short"); found {
		t.Error("expired entry should not be returned")
	}
}

func TestMemoryBackendDeleteMatched(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	keys := []string{
		"scope:external_feed:t1:resales:search:aaa",
		"scope:external_feed:t1:resales:search:bbb",
		"scope:external_feed:t1:resales:property:ccc",
		"scope:external_feed:t2:resales:search:ddd",
	}
	for _, key := range keys {
		if err := backend.Set(ctx, key, []byte("v"), time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := backend.DeleteMatched(ctx, "scope:external_feed:t1:resales:search:*"); err != nil {
		t.Fatalf("DeleteMatched failed: %v", err)
	}
	if backend.Len() != 2 {
		t.Errorf("%d entries left, want 2", backend.Len())
	}
	if _, found, _ := backend.Get(ctx, keys[3]); !found {
		t.Error("other tenant's entry should survive")
	}
}
