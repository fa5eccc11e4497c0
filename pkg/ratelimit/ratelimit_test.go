package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveFirstCallIsImmediate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	l := NewWithClock(2*time.Second, func() time.Time { return now })

	assert.Equal(t, time.Duration(0), l.Reserve("consultant:1"))
}

func TestReserveEnforcesMinimumInterval(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	l := NewWithClock(2*time.Second, func() time.Time { return now })

	require.Equal(t, time.Duration(0), l.Reserve("consultant:1"))
	assert.Equal(t, 2*time.Second, l.Reserve("consultant:1"))

	now = now.Add(500 * time.Millisecond)
	// Second reservation already pushed the slot to t+4s.
	assert.Equal(t, 3500*time.Millisecond, l.Reserve("consultant:1"))
}

func TestReserveIdentitiesAreIndependent(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	l := NewWithClock(time.Minute, func() time.Time { return now })

	require.Equal(t, time.Duration(0), l.Reserve("consultant:1"))
	assert.Equal(t, time.Duration(0), l.Reserve("consultant:2"))
}

func TestReserveAfterIntervalElapsed(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	l := NewWithClock(2*time.Second, func() time.Time { return now })

	require.Equal(t, time.Duration(0), l.Reserve("consultant:1"))
	now = now.Add(5 * time.Second)
	assert.Equal(t, time.Duration(0), l.Reserve("consultant:1"))
}

func TestWaitHonoursContextCancellation(t *testing.T) {
	l := New(time.Hour)
	require.NoError(t, l.Wait(context.Background(), "consultant:1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Wait(ctx, "consultant:1")
	assert.ErrorIs(t, err, context.Canceled)
}
