package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.False(t, isRetryableError(context.Canceled))
	assert.False(t, isRetryableError(context.DeadlineExceeded))
	assert.False(t, isRetryableError(sql.ErrNoRows))

	// Constraint and syntax violations never retry.
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "42P01"}))

	// Transient failures do.
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "08006"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "53300"}))
	assert.True(t, isRetryableError(&pgconn.PgError{Code: "57P03"}))

	// Message inspection when no SQLSTATE is attached.
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("pq: too many clients already")))
	assert.False(t, isRetryableError(errors.New("column does not exist")))
}

func TestRetryWithBackoffStopsOnSuccess(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2, EnableRetry: true}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffNonRetryable(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2, EnableRetry: true}

	calls := 0
	want := &pgconn.PgError{Code: "23505"}
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return want
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, want)
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2, EnableRetry: true}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return errors.New("broken pipe")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryDisabled(t *testing.T) {
	cfg := RetryConfig{EnableRetry: false}

	calls := 0
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return errors.New("connection refused")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
