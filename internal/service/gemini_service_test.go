package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func newBreakerService(clock *time.Time) *GeminiService {
	return &GeminiService{
		MaxRetries:        0,
		BaseDelay:         time.Millisecond,
		MaxDelay:          time.Millisecond,
		RequestTimeout:    time.Second,
		logger:            zap.NewNop(),
		circuitBreakerMax: 2,
		breakerCooldown:   time.Minute,
		now:               func() time.Time { return *clock },
	}
}

func TestGeminiService_CircuitBreakerOpensAndRecovers(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newBreakerService(&clock)
	calls := 0
	failing := func(context.Context) error {
		calls++
		return genai.APIError{Code: 503, Message: "unavailable"}
	}
	healthy := func(context.Context) error {
		calls++
		return nil
	}

	ctx := context.Background()
	require.Error(t, s.withRetry(ctx, "op", failing))
	require.Error(t, s.withRetry(ctx, "op", failing))
	n, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 2, n)
	assert.True(t, open)

	err := s.withRetry(ctx, "op", healthy)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, calls, "open breaker must not call through")

	clock = clock.Add(time.Minute)
	require.NoError(t, s.withRetry(ctx, "op", healthy))
	assert.Equal(t, 3, calls)
	n, open = s.GetCircuitBreakerStatus()
	assert.Equal(t, 0, n)
	assert.False(t, open)
}

func TestGeminiService_FailedTrialReopens(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newBreakerService(&clock)
	failing := func(context.Context) error { return genai.APIError{Code: 500} }

	ctx := context.Background()
	_ = s.withRetry(ctx, "op", failing)
	_ = s.withRetry(ctx, "op", failing)

	clock = clock.Add(time.Minute)
	err := s.withRetry(ctx, "op", failing)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCircuitOpen)

	clock = clock.Add(30 * time.Second)
	err = s.withRetry(ctx, "op", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen, "cooldown restarts after a failed trial")
}

func TestGeminiService_ClientErrorsDoNotTripBreaker(t *testing.T) {
	clock := time.Now()
	s := newBreakerService(&clock)
	ctx := context.Background()

	for _, code := range []int{400, 401, 403, 404, 400} {
		err := s.withRetry(ctx, "op", func(context.Context) error { return genai.APIError{Code: code} })
		require.Error(t, err)
	}
	err := s.withRetry(ctx, "op", func(context.Context) error { return context.Canceled })
	require.Error(t, err)

	n, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 0, n)
	assert.False(t, open)
}

func TestIsServiceFailure(t *testing.T) {
	assert.True(t, isServiceFailure(genai.APIError{Code: 503}))
	assert.True(t, isServiceFailure(fmt.Errorf("wrapped: %w", genai.APIError{Code: 429})))
	assert.True(t, isServiceFailure(errors.New("connection reset")))
	assert.True(t, isServiceFailure(context.DeadlineExceeded))
	assert.False(t, isServiceFailure(genai.APIError{Code: 400}))
	assert.False(t, isServiceFailure(&genai.APIError{Code: 404}))
	assert.False(t, isServiceFailure(context.Canceled))
}
