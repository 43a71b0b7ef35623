package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func testCB(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	cb := testCB(time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errBoom)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open state fast-fails without invoking fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_ExitoReiniciaElConteo(t *testing.T) {
	cb := testCB(time.Minute)

	require.Error(t, cb.Execute(fail))
	require.Error(t, cb.Execute(fail))
	require.NoError(t, cb.Execute(succeed))
	require.Error(t, cb.Execute(fail))
	require.Error(t, cb.Execute(fail))

	// Never reached three consecutive failures
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SemiAbiertoYRecuperacion(t *testing.T) {
	cb := testCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.Error(t, cb.Execute(fail))
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Two successful probes close the circuit
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_ProbeFallidoReabre(t *testing.T) {
	cb := testCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.Error(t, cb.Execute(fail))
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(fail), errBoom)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
