package shared

import (
	"context"
	"log/slog"
	"time"

	"library-lending/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 100 * time.Millisecond

	// MaxRetryDelay bounds a single wait however many attempts are configured.
	MaxRetryDelay = 30 * time.Second
)

var (
	ErrInvalidMaxAttempts = errs.New("max attempts must be positive")
	ErrNegativeBaseDelay  = errs.New("base delay must not be negative")
)

// RetryableFunc is one complete read-modify-write attempt, including its transaction.
type RetryableFunc func(ctx context.Context) error

type RetryOption func(*ConflictRetryPolicy) error

func WithMaxAttempts(n int) RetryOption {
	return func(p *ConflictRetryPolicy) error {
		if n <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = n
		return nil
	}
}

func WithBaseDelay(d time.Duration) RetryOption {
	return func(p *ConflictRetryPolicy) error {
		if d < 0 {
			return ErrNegativeBaseDelay
		}
		p.baseDelay = d
		return nil
	}
}

func WithLogger(l *slog.Logger) RetryOption {
	return func(p *ConflictRetryPolicy) error {
		if l != nil {
			p.logger = l
		}
		return nil
	}
}

func WithRecorder(r Recorder) RetryOption {
	return func(p *ConflictRetryPolicy) error {
		if r != nil {
			p.recorder = r
		}
		return nil
	}
}

// ConflictRetryPolicy re-runs an attempt that failed with errs.ErrConcurrencyConflict.
// Delays double from baseDelay with no jitter; every other error is returned at once.
type ConflictRetryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
	recorder    Recorder
}

func NewConflictRetryPolicy(opts ...RetryOption) (*ConflictRetryPolicy, error) {
	p := &ConflictRetryPolicy{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		logger:      slog.Default(),
		recorder:    NopRecorder{},
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *ConflictRetryPolicy) MaxAttempts() int { return p.maxAttempts }

// Do runs fn until it succeeds, fails with a non-conflict error, or uses up maxAttempts.
// The last conflict is returned marked with errs.ErrConflictExhausted.
func (p *ConflictRetryPolicy) Do(ctx context.Context, operation string, fn RetryableFunc) error {
	attempt := 0
	op := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !errs.Is(err, errs.ErrConcurrencyConflict) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		p.recorder.ConflictRetried(operation, attempt)
		p.logger.Warn("retrying after version conflict",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", p.maxAttempts,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())
	}

	b := backoff.WithContext(backoff.WithMaxRetries(p.schedule(), uint64(p.maxAttempts-1)), ctx)
	err := backoff.RetryNotify(op, b, notify)
	if err == nil {
		return nil
	}

	if errs.Is(err, errs.ErrConcurrencyConflict) {
		p.recorder.ConflictExhausted(operation)
		p.logger.Error("version conflict retries exhausted",
			"operation", operation,
			"attempts", attempt,
			"error", err.Error())
		return errs.Mark(errs.Wrapf(err, "%s: gave up after %d attempts", operation, attempt), errs.ErrConflictExhausted)
	}
	return err
}

// Delays lists the waits taken before attempts 2..maxAttempts.
func (p *ConflictRetryPolicy) Delays() []time.Duration {
	b := p.schedule()
	b.Reset()
	delays := make([]time.Duration, 0, p.maxAttempts-1)
	for i := 1; i < p.maxAttempts; i++ {
		delays = append(delays, b.NextBackOff())
	}
	return delays
}

func (p *ConflictRetryPolicy) schedule() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = min(p.baseDelay, MaxRetryDelay)
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = longestDelay(p.baseDelay, p.maxAttempts)
	b.MaxElapsedTime = 0
	return b
}

// longestDelay is the wait before the last attempt, doubling from base and saturating at MaxRetryDelay.
func longestDelay(base time.Duration, attempts int) time.Duration {
	d := base
	for i := 2; i < attempts && d < MaxRetryDelay; i++ {
		d *= 2
	}
	return min(d, MaxRetryDelay)
}
