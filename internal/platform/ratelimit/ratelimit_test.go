package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheck_FixedWindowGrid(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := time.Minute

	wantRemaining := []int{4, 3, 2, 1, 0}
	for i, want := range wantRemaining {
		res := l.check("k", 5, window, now)
		require.True(t, res.Allowed, "request %d should be allowed", i+1)
		require.Equal(t, want, res.Remaining)
		require.Equal(t, now.Add(window), res.ResetAt)
	}

	res := l.check("k", 5, window, now)
	require.False(t, res.Allowed)
	require.Equal(t, 0, res.Remaining)
}

func TestCheck_RejectionDoesNotExtendWindow(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	resetAt := now.Add(time.Minute)

	for i := 0; i < 2; i++ {
		l.check("k", 2, time.Minute, now)
	}

	// Repeated rejected requests keep reporting the original reset time.
	for i := 0; i < 10; i++ {
		res := l.check("k", 2, time.Minute, now.Add(time.Duration(i)*time.Second))
		require.False(t, res.Allowed)
		require.Equal(t, resetAt, res.ResetAt)
	}

	// The request immediately after expiry starts a fresh window.
	res := l.check("k", 2, time.Minute, resetAt.Add(time.Millisecond))
	require.True(t, res.Allowed)
	require.Equal(t, 1, res.Remaining)
}

func TestCheck_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, l.check("a", 1, time.Minute, now).Allowed)
	require.False(t, l.check("a", 1, time.Minute, now).Allowed)
	require.True(t, l.check("b", 1, time.Minute, now).Allowed)
}

func TestCheck_ConcurrentIncrementsAreCounted(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	const (
		workers = 8
		perG    = 25
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				l.check("k", 1000, time.Minute, now)
			}
		}()
	}
	wg.Wait()

	res := l.check("k", 1000, time.Minute, now)
	require.Equal(t, 1000-(workers*perG)-1, res.Remaining)
}

func TestSweep_DropsExpiredWindows(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.check("old", 5, time.Minute, now)
	l.check("live", 5, time.Hour, now)
	require.Equal(t, 2, l.size())

	l.sweep(now.Add(2 * time.Minute))
	require.Equal(t, 1, l.size())

	// The surviving key keeps its count.
	res := l.check("live", 5, time.Hour, now.Add(2*time.Minute))
	require.Equal(t, 3, res.Remaining)
}

func TestCheck_EvictionBoundsMemory(t *testing.T) {
	t.Parallel()

	l := NewLimiter(10)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		l.check(string(rune('a'+i)), 5, time.Second, now)
	}
	require.Equal(t, 10, l.size())

	// A new key after the old windows expire triggers lazy eviction.
	l.check("fresh", 5, time.Minute, now.Add(2*time.Second))
	require.Equal(t, 1, l.size())
}
