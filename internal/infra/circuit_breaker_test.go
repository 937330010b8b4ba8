package infra_test

import (
	"errors"
	"testing"
	"time"

	"smartpos/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGatewayDown = errors.New("dial tcp: connection refused")

func testCB(openTimeout time.Duration) *infra.CircuitBreaker {
	return infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

func failN(cb *infra.CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return errGatewayDown })
	}
}

func TestBreakerTripsAfterFailureStreak(t *testing.T) {
	cb := testCB(time.Minute)

	failN(cb, 2)
	assert.Equal(t, infra.CBClosed, cb.State())

	failN(cb, 1)
	assert.Equal(t, infra.CBOpen, cb.State())

	// Open means fast-fail: the send function must not run.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerSuccessResetsFailureStreak(t *testing.T) {
	cb := testCB(time.Minute)

	failN(cb, 2)
	require.NoError(t, cb.Execute(func() error { return nil }))
	failN(cb, 2)

	// 2 failures, success, 2 failures — never 3 in a row.
	assert.Equal(t, infra.CBClosed, cb.State())
}

func TestBreakerClosesAfterSuccessfulProbes(t *testing.T) {
	cb := testCB(10 * time.Millisecond)

	failN(cb, 3)
	require.Equal(t, infra.CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, infra.CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Equal(t, infra.CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))

	assert.Equal(t, infra.CBClosed, cb.State())
}

func TestBreakerReopensWhenProbeFails(t *testing.T) {
	cb := testCB(10 * time.Millisecond)

	failN(cb, 3)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, infra.CBHalfOpen, cb.State())

	failN(cb, 1)
	assert.Equal(t, infra.CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.False(t, called)
}
