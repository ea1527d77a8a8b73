package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeCmdable implements only the commands the store issues.
type fakeCmdable struct {
	redis.Cmdable
	keys    map[string]time.Duration
	err     error
	deleted []string
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{keys: make(map[string]time.Duration)}
}

func (f *fakeCmdable) SetNX(ctx context.Context, key string, _ interface{}, ttl time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	if _, ok := f.keys[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	f.keys[key] = ttl
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	for _, k := range keys {
		delete(f.keys, k)
		f.deleted = append(f.deleted, k)
	}
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestIdempotencyStore_ClaimOnce(t *testing.T) {
	fake := newFakeCmdable()
	store := NewIdempotencyStore(fake, time.Hour)

	ok, err := store.Claim(context.Background(), 7, "abc")
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}
	ok, err = store.Claim(context.Background(), 7, "abc")
	if err != nil || ok {
		t.Fatalf("second claim must be rejected: ok=%v err=%v", ok, err)
	}
	if ttl := fake.keys["idem:expense:7:abc"]; ttl != time.Hour {
		t.Errorf("unexpected ttl %s", ttl)
	}
}

func TestIdempotencyStore_KeysAreScopedPerUser(t *testing.T) {
	store := NewIdempotencyStore(newFakeCmdable(), time.Hour)

	if ok, _ := store.Claim(context.Background(), 1, "same"); !ok {
		t.Fatal("user 1 claim failed")
	}
	if ok, _ := store.Claim(context.Background(), 2, "same"); !ok {
		t.Fatal("user 2 must be able to use the same key")
	}
}

func TestIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	fake := newFakeCmdable()
	store := NewIdempotencyStore(fake, 0)

	_, _ = store.Claim(context.Background(), 3, "k")
	if err := store.Release(context.Background(), 3, "k"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if ok, _ := store.Claim(context.Background(), 3, "k"); !ok {
		t.Fatal("claim after release must succeed")
	}
	if fake.keys["idem:expense:3:k"] != defaultIdempotencyTTL {
		t.Errorf("expected default ttl, got %s", fake.keys["idem:expense:3:k"])
	}
}

func TestIdempotencyStore_PropagatesErrors(t *testing.T) {
	fake := newFakeCmdable()
	fake.err = errors.New("connection refused")
	store := NewIdempotencyStore(fake, time.Hour)

	if _, err := store.Claim(context.Background(), 1, "k"); err == nil {
		t.Fatal("expected error")
	}
}
