package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreFirstRequest(t *testing.T) {
	client, _ := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, existing, err := store.CheckAndSet(ctx, "submit-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("expected first request to claim the key, got existing=%s", existing)
	}

	if err := store.Update(ctx, "submit-1", []byte(`{"status":"submitted"}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, existing, err = store.CheckAndSet(ctx, "submit-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected replayed request to find the stored response")
	}
	if string(existing) != `{"status":"submitted"}` {
		t.Fatalf("unexpected stored response: %s", existing)
	}
}

func TestIdempotencyStoreWithImmediateResponse(t *testing.T) {
	client, _ := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "k", []byte("response"), time.Minute)
	if err != nil || exists {
		t.Fatalf("unexpected result: exists=%v err=%v", exists, err)
	}

	exists, existing, err := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists || string(existing) != "response" {
		t.Fatalf("expected stored response, got exists=%v value=%s", exists, existing)
	}
}

func TestIdempotencyStoreExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "k", []byte("response"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	exists, _, err := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected expired key to be claimable again")
	}
}
