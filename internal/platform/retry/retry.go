// Package retry executes remote calls with exponential backoff. Failures are
// classified as transient or fatal: transient failures are retried with a
// doubling delay up to a bounded attempt count, fatal failures propagate
// immediately and unchanged. Once retries are exhausted the last transient
// failure is rewritten into one of the user-facing terminal errors in the
// tutor package.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vesaliusapp/vesalius-llm/internal/metrics"
	"github.com/vesaliusapp/vesalius-llm/internal/redact"
	"github.com/vesaliusapp/vesalius-llm/internal/tutor"
)

// Kind classifies a failed call attempt.
type Kind int

const (
	// KindTransient marks failures worth retrying: rate limits, quota
	// exhaustion, temporary overload.
	KindTransient Kind = iota

	// KindFatal marks everything else. Fatal failures are never retried.
	KindFatal
)

// Classifier decides whether a failed attempt is worth retrying.
// Implementations receive the non-nil error returned by the call.
type Classifier func(error) Kind

// Defaults applied when Config carries zero or invalid values.
const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 2 * time.Second
)

// transientMarkers are message fragments that identify retryable failures
// when no structured status code is available.
var transientMarkers = []string{
	"429",
	"503",
	"rate limit",
	"rate-limit",
	"too many requests",
	"quota",
	"resource_exhausted",
	"resource exhausted",
	"overloaded",
	"unavailable",
}

// quotaMarkers identify the quota-exhausted flavor of a transient failure,
// which gets its own terminal error once retries run out.
var quotaMarkers = []string{
	"quota",
	"resource_exhausted",
	"resource exhausted",
}

// DefaultClassifier classifies an error by scanning its message for known
// rate-limit and overload markers. Adapters with access to structured status
// codes should check those first and fall back to this.
func DefaultClassifier(err error) Kind {
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return KindTransient
		}
	}
	return KindFatal
}

// isQuotaExhausted reports whether the message points at quota exhaustion
// rather than momentary overload.
func isQuotaExhausted(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Config controls one resilient call.
type Config struct {
	// Operation names the call in logs and metrics, e.g. "generate_questions".
	Operation string

	// MaxRetries is the number of re-attempts after the first call, so the
	// total attempt count is MaxRetries+1. Zero means a single attempt;
	// negative values are corrected to DefaultMaxRetries with a warning.
	MaxRetries int

	// InitialDelay is the wait before the first retry. It doubles after
	// every further transient failure. Non-positive values are corrected to
	// DefaultInitialDelay with a warning.
	InitialDelay time.Duration

	// Classify decides transient versus fatal. Nil means DefaultClassifier.
	Classify Classifier

	// Logger receives one entry per retry. Nil means slog.Default().
	Logger *slog.Logger

	// sleep is the backoff wait, replaceable in tests. Nil means a real
	// timer honoring context cancellation.
	sleep func(context.Context, time.Duration) error
}

// Do invokes fn until it succeeds, a fatal failure occurs, or retries run
// out. The first attempt is immediate; each transient failure with attempts
// remaining waits the current delay and doubles it for next time. The wait
// suspends only the calling goroutine and honors context cancellation.
//
// Exhausted transient failures come back as tutor.ErrQuotaExhausted when the
// last failure mentions quota, otherwise tutor.ErrServiceOverloaded. Both
// wrap tutor.ErrTransientService.
func Do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	classify := cfg.Classify
	if classify == nil {
		classify = DefaultClassifier
	}
	sleep := cfg.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		logger.WarnContext(ctx, "Invalid max retries value, using default",
			"operation", cfg.Operation,
			"max_retries", DefaultMaxRetries)
		maxRetries = DefaultMaxRetries
	}

	delay := cfg.InitialDelay
	if delay <= 0 {
		logger.WarnContext(ctx, "Invalid initial delay value, using default",
			"operation", cfg.Operation,
			"initial_delay", DefaultInitialDelay)
		delay = DefaultInitialDelay
	}

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1 // For logging (1-based)

		result, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.InfoContext(ctx, "Call succeeded after retries",
					"operation", cfg.Operation,
					"attempt", attemptNum)
			}
			metrics.LLMCalls.WithLabelValues(cfg.Operation, metrics.OutcomeSuccess).Inc()
			metrics.LLMCallDuration.WithLabelValues(cfg.Operation).Observe(time.Since(start).Seconds())
			return result, nil
		}

		if classify(err) == KindFatal {
			metrics.LLMCalls.WithLabelValues(cfg.Operation, metrics.OutcomeFatal).Inc()
			metrics.LLMCallDuration.WithLabelValues(cfg.Operation).Observe(time.Since(start).Seconds())
			return zero, err
		}

		lastErr = err

		if attempt >= maxRetries {
			break
		}

		logger.InfoContext(ctx, "Transient failure, retrying after delay",
			"operation", cfg.Operation,
			"attempt", attemptNum,
			"max_attempts", maxRetries+1,
			"delay", delay,
			"error", redact.Error(err))
		metrics.LLMRetries.WithLabelValues(cfg.Operation).Inc()

		if werr := sleep(ctx, delay); werr != nil {
			logger.WarnContext(ctx, "Call canceled during retry delay",
				"operation", cfg.Operation,
				"attempt", attemptNum)
			metrics.LLMCalls.WithLabelValues(cfg.Operation, metrics.OutcomeCanceled).Inc()
			metrics.LLMCallDuration.WithLabelValues(cfg.Operation).Observe(time.Since(start).Seconds())
			return zero, fmt.Errorf("%w (canceled after %d attempts, last error: %s)",
				werr, attemptNum, redact.Error(lastErr))
		}

		delay *= 2
	}

	logger.WarnContext(ctx, "Maximum retry attempts reached",
		"operation", cfg.Operation,
		"max_attempts", maxRetries+1,
		"error", redact.Error(lastErr))
	metrics.LLMCalls.WithLabelValues(cfg.Operation, metrics.OutcomeExhausted).Inc()
	metrics.LLMCallDuration.WithLabelValues(cfg.Operation).Observe(time.Since(start).Seconds())

	if isQuotaExhausted(lastErr) {
		return zero, fmt.Errorf("%w (after %d attempts: %s)",
			tutor.ErrQuotaExhausted, maxRetries+1, redact.Error(lastErr))
	}
	return zero, fmt.Errorf("%w (after %d attempts: %s)",
		tutor.ErrServiceOverloaded, maxRetries+1, redact.Error(lastErr))
}

// sleepContext waits for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
