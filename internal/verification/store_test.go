package verification

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisCodeStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedisCodeStore(client), mr
}

func TestKeyIsolatesSessions(t *testing.T) {
	a := Key("s1", "a@x.com")
	b := Key("s2", "a@x.com")
	if a == b {
		t.Fatalf("keys for different sessions collided: %s", a)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	key := Key("s1", "a@x.com")

	exists, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected no entry before set")
	}
	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected absent value, ok=%v err=%v", ok, err)
	}
	if _, live, err := store.RemainingTTL(ctx, key); err != nil || live {
		t.Fatalf("expected no ttl, live=%v err=%v", live, err)
	}

	if err := store.SetWithTTL(ctx, key, "123456", 180*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if val != "123456" {
		t.Fatalf("expected 123456, got %s", val)
	}
	ttl, live, err := store.RemainingTTL(ctx, key)
	if err != nil || !live {
		t.Fatalf("ttl: live=%v err=%v", live, err)
	}
	if ttl <= 170*time.Second || ttl > 180*time.Second {
		t.Fatalf("unexpected remaining ttl: %s", ttl)
	}
}

func TestStoreOverwriteResetsTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	key := Key("s1", "a@x.com")

	if err := store.SetWithTTL(ctx, key, "111111", 180*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(100 * time.Second)

	if err := store.SetWithTTL(ctx, key, "222222", 180*time.Second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	val, _, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "222222" {
		t.Fatalf("expected overwritten code, got %s", val)
	}
	ttl, _, err := store.RemainingTTL(ctx, key)
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 170*time.Second {
		t.Fatalf("expected ttl reset to ~180s, got %s", ttl)
	}
}

func TestStoreEntryLapsesOnExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	key := Key("s1", "a@x.com")

	if err := store.SetWithTTL(ctx, key, "123456", 180*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(181 * time.Second)

	exists, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected entry to lapse after ttl")
	}
}
