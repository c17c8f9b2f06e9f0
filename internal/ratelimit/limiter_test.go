package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowsUpToMax(t *testing.T) {
	l := New(time.Minute, 30)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 30; i++ {
		d := l.CheckAndRecord(42, base.Add(time.Duration(i)*100*time.Millisecond))
		require.True(t, d.Allowed, "request %d should be allowed", i+1)
		require.Zero(t, d.RetryAfter)
	}

	d := l.CheckAndRecord(42, base.Add(5*time.Second))
	assert.False(t, d.Allowed)
	assert.Positive(t, d.RetryAfter)
}

func TestRetryAfterCountsFromOldestEntry(t *testing.T) {
	l := New(time.Minute, 2)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, l.CheckAndRecord(1, base).Allowed)
	require.True(t, l.CheckAndRecord(1, base.Add(10*time.Second)).Allowed)

	d := l.CheckAndRecord(1, base.Add(20*time.Second))
	require.False(t, d.Allowed)
	// Oldest entry at base leaves the window at base+60s.
	assert.Equal(t, 40, d.RetryAfter)
}

func TestAllowedAgainAfterWindow(t *testing.T) {
	l := New(time.Minute, 30)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 30; i++ {
		require.True(t, l.CheckAndRecord(7, base).Allowed)
	}
	require.False(t, l.CheckAndRecord(7, base.Add(time.Second)).Allowed)

	d := l.CheckAndRecord(7, base.Add(61*time.Second))
	assert.True(t, d.Allowed)
}

func TestUsersAreIndependent(t *testing.T) {
	l := New(time.Minute, 1)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.True(t, l.CheckAndRecord(1, base).Allowed)
	require.False(t, l.CheckAndRecord(1, base).Allowed)
	assert.True(t, l.CheckAndRecord(2, base).Allowed)
}

func TestStoredEntriesStayBounded(t *testing.T) {
	l := New(time.Minute, 5)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		l.CheckAndRecord(9, base.Add(time.Duration(i)*time.Second))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.LessOrEqual(t, len(l.requests[9]), 5)
}

func TestSweepIdle(t *testing.T) {
	l := New(time.Minute, 30)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	l.CheckAndRecord(1, base)
	l.CheckAndRecord(2, base.Add(90*time.Second))

	removed := l.SweepIdle(base.Add(2 * time.Minute))
	assert.Equal(t, 1, removed)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.requests, uint(1))
	assert.Contains(t, l.requests, uint(2))
}
