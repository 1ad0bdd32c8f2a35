package pricecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"RiskRadar/internal/model"
	"RiskRadar/internal/provider"
)

func TestGet_HitWithinStaleness(t *testing.T) {
	src := &provider.Mock{Price: 100}
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	c := NewWithClock(src, func() time.Time { return now })
	ctx := context.Background()

	if _, err := c.Get(ctx, "AAPL", model.Window1Y); err != nil {
		t.Fatalf("first get: %v", err)
	}
	now = now.Add(30 * time.Minute)
	if _, err := c.Get(ctx, "AAPL", model.Window1Y); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if n := src.FetchCount("AAPL", model.Window1Y); n != 1 {
		t.Errorf("expected 1 provider fetch within staleness window, got %d", n)
	}
}

func TestGet_RefetchAfterStaleness(t *testing.T) {
	src := &provider.Mock{Price: 100}
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	c := NewWithClock(src, func() time.Time { return now })
	ctx := context.Background()

	if _, err := c.Get(ctx, "AAPL", model.Window1Y); err != nil {
		t.Fatalf("first get: %v", err)
	}
	now = now.Add(Staleness + time.Minute)
	if _, err := c.Get(ctx, "AAPL", model.Window1Y); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if n := src.FetchCount("AAPL", model.Window1Y); n != 2 {
		t.Errorf("expected refetch after staleness elapsed, got %d fetches", n)
	}
}

func TestGet_KeyedBySymbolAndWindow(t *testing.T) {
	src := &provider.Mock{Price: 100}
	c := New(src)
	ctx := context.Background()

	c.Get(ctx, "AAPL", model.Window1Y)
	c.Get(ctx, "AAPL", model.Window6Mo)
	c.Get(ctx, "MSFT", model.Window1Y)

	if n := src.FetchCount("AAPL", model.Window1Y); n != 1 {
		t.Errorf("AAPL|1y: expected 1 fetch, got %d", n)
	}
	if n := src.FetchCount("AAPL", model.Window6Mo); n != 1 {
		t.Errorf("AAPL|6mo: expected 1 fetch, got %d", n)
	}

	st := c.Stats()
	if st.CacheSize != 3 {
		t.Errorf("expected 3 entries, got %d", st.CacheSize)
	}
	if st.CacheTimeoutMs != 3600000 {
		t.Errorf("expected timeout 3600000ms, got %d", st.CacheTimeoutMs)
	}
}

func TestClear(t *testing.T) {
	src := &provider.Mock{Price: 100}
	c := New(src)
	ctx := context.Background()

	c.Get(ctx, "AAPL", model.Window1Y)
	c.Clear()

	if st := c.Stats(); st.CacheSize != 0 {
		t.Fatalf("expected empty cache after clear, got %d entries", st.CacheSize)
	}
	c.Get(ctx, "AAPL", model.Window1Y)
	if n := src.FetchCount("AAPL", model.Window1Y); n != 2 {
		t.Errorf("expected refetch after clear, got %d fetches", n)
	}
}

func TestGet_ProviderErrorPassesThrough(t *testing.T) {
	src := &provider.Mock{Err: errors.New("rate limited")}
	c := New(src)

	_, err := c.Get(context.Background(), "AAPL", model.Window1Y)
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	var perr *provider.Error
	if !errors.As(err, &perr) {
		t.Errorf("expected *provider.Error, got %T", err)
	}
	if st := c.Stats(); st.CacheSize != 0 {
		t.Errorf("failed fetch must not populate the cache, got %d entries", st.CacheSize)
	}
}
