package cache

import (
	"sync"
	"testing"
	"time"

	"options-analytics/internal/models"
	"options-analytics/internal/pricing"
)

func TestGetSetRoundTrip(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get(42); ok {
		t.Error("empty cache returned a value")
	}

	c.Set(42, "hello")
	v, ok := c.Get(42)
	if !ok || v.(string) != "hello" {
		t.Errorf("Get = %v, %v, want hello, true", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	clock := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute)
	c.now = func() time.Time { return clock }

	c.Set(1, "fresh")
	if _, ok := c.Get(1); !ok {
		t.Fatal("entry expired immediately")
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := c.Get(1); ok {
		t.Error("expired entry still served")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 before purge", c.Len())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after purge", c.Len())
	}
}

func TestGreeksMemoized(t *testing.T) {
	c := New(time.Minute)
	in := pricing.Inputs{S: 100, K: 100, T: 30.0 / 365.0, R: 0.05, Sigma: 0.20, Right: models.Call}

	first, err := Greeks(c, in)
	if err != nil {
		t.Fatalf("Greeks returned error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after first computation", c.Len())
	}

	second, err := Greeks(c, in)
	if err != nil {
		t.Fatalf("cached Greeks returned error: %v", err)
	}
	if first != second {
		t.Errorf("cached result %+v differs from computed %+v", second, first)
	}

	// A different input must not collide.
	in.Sigma = 0.25
	if _, err := Greeks(c, in); err != nil {
		t.Fatalf("Greeks returned error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2 distinct entries", c.Len())
	}
}

func TestGreeksErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	bad := pricing.Inputs{S: -1, K: 100, T: 0.1, Sigma: 0.2, Right: models.Call}
	if _, err := Greeks(c, bad); err == nil {
		t.Fatal("expected error for invalid inputs")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after failed computation", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := uint64(j % 10)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 10 {
		t.Errorf("Len = %d, want 10", c.Len())
	}
}
