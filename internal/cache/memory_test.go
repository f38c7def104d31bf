// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(ttl time.Duration, maxSize int) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL: ttl,
		MaxSize:    maxSize,
	})
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 100)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	has, err := cache.Has(ctx, "key1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected key1 to exist")
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_CacheMiss(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if _, err := cache.Get(ctx, "nonexistent"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}

	has, err := cache.Has(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if has {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache(50*time.Millisecond, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Set(ctx, "long", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
	if _, err := cache.Get(ctx, "long"); err != nil {
		t.Errorf("entry with explicit TTL should survive: %v", err)
	}
	if got := cache.Stats().Items; got != 1 {
		t.Errorf("expected 1 item after expiry, got %d", got)
	}
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	value := []byte("<ul></ul>")
	_ = cache.Set(ctx, "k", value, 0)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'X'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "<ul></ul>" {
		t.Errorf("stored value was mutated: %q", again)
	}
}

func TestMemoryCache_MaxSize(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 2)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 0)
	_ = cache.Set(ctx, "b", []byte("2"), 0)
	_ = cache.Set(ctx, "c", []byte("3"), 0)

	if has, _ := cache.Has(ctx, "c"); has {
		t.Error("entry beyond max size should not be stored")
	}

	// Overwriting an existing key is allowed when full.
	if err := cache.Set(ctx, "a", []byte("11"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := cache.Get(ctx, "a"); string(got) != "11" {
		t.Errorf("expected overwritten value, got %q", got)
	}

	stats := cache.Stats()
	if stats.Items != 2 {
		t.Errorf("expected 2 items, got %d", stats.Items)
	}
	if stats.Size != 3 {
		t.Errorf("expected 3 bytes, got %d", stats.Size)
	}
}

func TestMemoryCache_MaxSizeEvictsExpired(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 1)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "old", []byte("1"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	_ = cache.Set(ctx, "new", []byte("2"), 0)

	if has, _ := cache.Has(ctx, "new"); !has {
		t.Error("expired entry should make room for a new one")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("key%d", i), []byte("v"), 0)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	stats := cache.Stats()
	if stats.Items != 0 || stats.Size != 0 {
		t.Errorf("expected empty cache, got %+v", stats)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Hits != 3 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("unexpected counters: %+v", stats)
	}
	if stats.HitRate != 75 {
		t.Errorf("expected hit rate 75, got %v", stats.HitRate)
	}

	cache.ResetStats()
	stats = cache.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.Sets != 0 {
		t.Errorf("expected reset counters, got %+v", stats)
	}
	if stats.Items != 1 {
		t.Errorf("ResetStats should keep entries, got %d items", stats.Items)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      time.Hour,
		CleanupInterval: time.Millisecond,
	})
	ctx := context.Background()

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Second close is a no-op.
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get: expected ErrCacheClosed, got %v", err)
	}
	if err := cache.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set: expected ErrCacheClosed, got %v", err)
	}
	if err := cache.Delete(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Delete: expected ErrCacheClosed, got %v", err)
	}
	if err := cache.Clear(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Clear: expected ErrCacheClosed, got %v", err)
	}
	if _, err := cache.Has(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Has: expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryCache_CleanupLoop(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      10 * time.Millisecond,
		CleanupInterval: 20 * time.Millisecond,
	})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cache.Stats().Items == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("cleanup loop did not remove the expired entry")
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%5)
			for j := 0; j < 50; j++ {
				_ = cache.Set(ctx, key, []byte("v"), 0)
				_, _ = cache.Get(ctx, key)
				_, _ = cache.Has(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if got := cache.Stats().Items; got != 5 {
		t.Errorf("expected 5 items, got %d", got)
	}
}
