package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemory_AllowsUpToLimit(t *testing.T) {
	m := NewMemory(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := m.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if ok, _ := m.Allow(ctx, "1.2.3.4"); ok {
		t.Error("fourth request should be denied")
	}
	if ok, _ := m.Allow(ctx, "5.6.7.8"); !ok {
		t.Error("other keys have their own window")
	}
}

func TestMemory_WindowResets(t *testing.T) {
	m := NewMemory(1, 15*time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if ok, _ := m.Allow(ctx, "ip"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := m.Allow(ctx, "ip"); ok {
		t.Fatal("second request should be denied")
	}

	now = now.Add(15 * time.Minute)
	if ok, _ := m.Allow(ctx, "ip"); !ok {
		t.Error("request after the window should be allowed")
	}
}

func TestMemory_SweepsExpiredWindows(t *testing.T) {
	m := NewMemory(5, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	m.Allow(ctx, "a")
	m.Allow(ctx, "b")
	now = now.Add(2 * time.Minute)
	m.Allow(ctx, "c")

	if len(m.windows) != 1 {
		t.Errorf("expected expired windows to be dropped, have %d", len(m.windows))
	}
}

func newTestRedis(t *testing.T, limit int, period time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, limit, period), mr
}

func TestRedis_AllowsUpToLimit(t *testing.T) {
	r, _ := newTestRedis(t, 2, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := r.Allow(ctx, "1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("request %d should be allowed, got %v %v", i+1, ok, err)
		}
	}
	if ok, _ := r.Allow(ctx, "1.2.3.4"); ok {
		t.Error("third request should be denied")
	}
	if ok, _ := r.Allow(ctx, "5.6.7.8"); !ok {
		t.Error("other keys have their own window")
	}
}

func TestRedis_FirstHitSetsTTL(t *testing.T) {
	r, mr := newTestRedis(t, 1, 15*time.Minute)
	ctx := context.Background()

	r.Allow(ctx, "1.2.3.4")
	if ttl := mr.TTL("ratelimit:1.2.3.4"); ttl != 15*time.Minute {
		t.Errorf("expected 15m TTL, got %v", ttl)
	}

	if ok, _ := r.Allow(ctx, "1.2.3.4"); ok {
		t.Error("second request should be denied")
	}

	mr.FastForward(15 * time.Minute)
	if ok, _ := r.Allow(ctx, "1.2.3.4"); !ok {
		t.Error("request after the window should be allowed")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Connect(context.Background(), addr, "", 0); err == nil {
		t.Error("expected error for unreachable redis")
	}
}
