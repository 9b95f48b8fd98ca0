//go:build unit

package shared_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"
	sharedmock "library-lending/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conflict() error {
	return errs.Mark(errs.New("book version changed since read"), errs.ErrConcurrencyConflict)
}

func TestConflictRetryPolicy_Delays(t *testing.T) {
	t.Run("default schedule", func(t *testing.T) {
		p, err := shared.NewConflictRetryPolicy()
		require.NoError(t, err)

		assert.Equal(t, 3, p.MaxAttempts())
		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, p.Delays())
	})

	t.Run("doubles without jitter", func(t *testing.T) {
		p, err := shared.NewConflictRetryPolicy(shared.WithMaxAttempts(4), shared.WithBaseDelay(100*time.Millisecond))
		require.NoError(t, err)

		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, p.Delays())
	})

	t.Run("large attempt counts saturate instead of overflowing", func(t *testing.T) {
		for _, attempts := range []int{37, 64, 200} {
			p, err := shared.NewConflictRetryPolicy(shared.WithMaxAttempts(attempts), shared.WithBaseDelay(100*time.Millisecond))
			require.NoError(t, err)

			delays := p.Delays()
			require.Len(t, delays, attempts-1)
			assert.Equal(t, 100*time.Millisecond, delays[0])
			for i := 1; i < len(delays); i++ {
				assert.GreaterOrEqual(t, delays[i], delays[i-1], "attempts=%d wait %d shrank", attempts, i)
				assert.LessOrEqual(t, delays[i], shared.MaxRetryDelay)
			}
			assert.Equal(t, shared.MaxRetryDelay, delays[len(delays)-1])
		}
	})

	t.Run("base above the cap is clamped", func(t *testing.T) {
		p, err := shared.NewConflictRetryPolicy(shared.WithMaxAttempts(3), shared.WithBaseDelay(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, []time.Duration{shared.MaxRetryDelay, shared.MaxRetryDelay}, p.Delays())
	})

	t.Run("single attempt never waits", func(t *testing.T) {
		p, err := shared.NewConflictRetryPolicy(shared.WithMaxAttempts(1))
		require.NoError(t, err)
		assert.Empty(t, p.Delays())
	})
}

func TestNewConflictRetryPolicy_InvalidOptions(t *testing.T) {
	_, err := shared.NewConflictRetryPolicy(shared.WithMaxAttempts(0))
	assert.ErrorIs(t, err, shared.ErrInvalidMaxAttempts)

	_, err = shared.NewConflictRetryPolicy(shared.WithBaseDelay(-time.Millisecond))
	assert.ErrorIs(t, err, shared.ErrNegativeBaseDelay)
}

func TestConflictRetryPolicy_Do(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name          string
		failures      []error
		expectCalls   int
		expectKind    errs.Kind
		expectErrIs   error
		expectRetried int
		expectGaveUp  bool
	}{
		{
			name:        "success on first attempt",
			expectCalls: 1,
		},
		{
			name:          "conflict then success",
			failures:      []error{conflict()},
			expectCalls:   2,
			expectRetried: 1,
		},
		{
			name:          "success on last attempt",
			failures:      []error{conflict(), conflict()},
			expectCalls:   3,
			expectRetried: 2,
		},
		{
			name:          "exhausted after three conflicts",
			failures:      []error{conflict(), conflict(), conflict()},
			expectCalls:   3,
			expectKind:    errs.KindConflictExhausted,
			expectRetried: 2,
			expectGaveUp:  true,
		},
		{
			name:        "out of stock is not retried",
			failures:    []error{errs.Mark(errs.New("no copies"), errs.ErrOutOfStock)},
			expectCalls: 1,
			expectKind:  errs.KindOutOfStock,
		},
		{
			name:        "technical failure is not retried",
			failures:    []error{errBoom},
			expectCalls: 1,
			expectKind:  errs.KindInternal,
			expectErrIs: errBoom,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := sharedmock.NewMockRecorder()
			p, err := shared.NewConflictRetryPolicy(
				shared.WithBaseDelay(time.Millisecond),
				shared.WithRecorder(recorder),
			)
			require.NoError(t, err)

			calls := 0
			err = p.Do(context.Background(), "BorrowBook", func(context.Context) error {
				calls++
				if calls <= len(tc.failures) {
					return tc.failures[calls-1]
				}
				return nil
			})

			assert.Equal(t, tc.expectCalls, calls)
			if tc.expectKind == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tc.expectKind, errs.KindOf(err))
			}
			if tc.expectErrIs != nil {
				assert.ErrorIs(t, err, tc.expectErrIs)
			}
			if tc.expectGaveUp {
				assert.True(t, errs.Is(err, errs.ErrConcurrencyConflict), "exhaustion keeps the conflict marker")
				recorder.AssertCalled(t, "ConflictExhausted", "BorrowBook")
			} else {
				recorder.AssertNotCalled(t, "ConflictExhausted", "BorrowBook")
			}
			recorder.AssertNumberOfCalls(t, "ConflictRetried", tc.expectRetried)
		})
	}
}

func TestConflictRetryPolicy_Do_WaitsBetweenAttempts(t *testing.T) {
	p, err := shared.NewConflictRetryPolicy(shared.WithBaseDelay(20 * time.Millisecond))
	require.NoError(t, err)

	var starts []time.Time
	err = p.Do(context.Background(), "ReturnBook", func(context.Context) error {
		starts = append(starts, time.Now())
		return conflict()
	})

	require.Error(t, err)
	require.Len(t, starts, 3)
	assert.GreaterOrEqual(t, starts[1].Sub(starts[0]), 20*time.Millisecond)
	assert.GreaterOrEqual(t, starts[2].Sub(starts[1]), 40*time.Millisecond)
}

func TestConflictRetryPolicy_Do_CancelDuringDelay(t *testing.T) {
	p, err := shared.NewConflictRetryPolicy(shared.WithBaseDelay(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	err = p.Do(ctx, "BorrowBook", func(context.Context) error {
		calls.Add(1)
		return conflict()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
	assert.Less(t, time.Since(start), time.Minute)
}
