package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(max, window, WithClock(clock.now)), clock
}

func TestAdmitWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := l.Admit("a"); !ok {
			t.Fatalf("request %d denied, want admitted", i+1)
		}
	}
	ok, retryAfter := l.Admit("a")
	if ok {
		t.Fatal("request 4 admitted, want denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v, want within (0, 1m]", retryAfter)
	}
}

func TestClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if ok, _ := l.Admit("a"); !ok {
		t.Fatal("first client denied")
	}
	if ok, _ := l.Admit("b"); !ok {
		t.Fatal("second client denied, limits should be per client")
	}
	if ok, _ := l.Admit("a"); ok {
		t.Fatal("first client admitted over limit")
	}
}

func TestWindowSlides(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	l.Admit("a")
	clock.advance(30 * time.Second)
	l.Admit("a")

	if ok, _ := l.Admit("a"); ok {
		t.Fatal("third request admitted inside window")
	}

	// First request ages out; one slot frees up.
	clock.advance(31 * time.Second)
	if ok, _ := l.Admit("a"); !ok {
		t.Fatal("request denied after window slid past oldest entry")
	}
	if ok, _ := l.Admit("a"); ok {
		t.Fatal("request admitted but only one slot should have freed")
	}
}

func TestRetryAfterMatchesOldestEntry(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	l.Admit("a")
	clock.advance(20 * time.Second)

	_, retryAfter := l.Admit("a")
	if retryAfter != 40*time.Second {
		t.Errorf("retryAfter = %v, want 40s", retryAfter)
	}
}

func TestSetLimitsAppliesImmediately(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Admit("a")
	if ok, _ := l.Admit("a"); ok {
		t.Fatal("second request admitted under max=1")
	}

	l.SetLimits(3, time.Minute)
	if ok, _ := l.Admit("a"); !ok {
		t.Fatal("request denied after raising max to 3")
	}
}

func TestPruneDropsIdleClients(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	l.Admit("idle")
	l.Admit("active")
	clock.advance(2 * time.Minute)
	l.Admit("active")

	l.Prune()

	l.mu.Lock()
	_, idleKept := l.clients["idle"]
	_, activeKept := l.clients["active"]
	l.mu.Unlock()

	if idleKept {
		t.Error("idle client not pruned")
	}
	if !activeKept {
		t.Error("active client pruned")
	}
}
