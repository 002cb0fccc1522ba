package task

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/taskstats/errors"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/resilience"
)

// WithDelay makes every FetchAll wait d before reaching src. The wait is
// cut short, with the context error, if ctx ends first.
func WithDelay(src Source, d time.Duration) Source {
	if d <= 0 {
		return src
	}
	return SourceFunc(func(ctx context.Context) ([]Task, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
		return src.FetchAll(ctx)
	})
}

// WithRetry retries FetchAll on errors that errors.IsRetryable accepts.
func WithRetry(src Source, cfg resilience.RetryConfig, log *logger.Logger) Source {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("task-source")
	cfg.RetryIf = func(err error) bool {
		return resilience.DefaultRetryIf(err) && errors.IsRetryable(err)
	}
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("Fetch failed, retrying", logger.Fields(
			"attempt", attempt,
			logger.FieldError, err.Error(),
			"backoff_ms", backoff.Milliseconds(),
		))
	}
	return SourceFunc(func(ctx context.Context) ([]Task, error) {
		return resilience.Retry(ctx, cfg, src.FetchAll)
	})
}

// WithCircuitBreaker fails fast with a SERVICE_UNAVAILABLE error while cb
// is open. Context cancellation does not count against the breaker.
func WithCircuitBreaker(src Source, cb *resilience.CircuitBreaker) Source {
	return SourceFunc(func(ctx context.Context) ([]Task, error) {
		var out []Task
		err := cb.Execute(func() error {
			var err error
			out, err = src.FetchAll(ctx)
			return err
		})
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			return nil, errors.ServiceUnavailable("task store").WithCause(err)
		}
		return out, err
	})
}

// CountsFailure is a CircuitBreakerConfig.IsFailure that ignores
// cancellation and not-found errors.
func CountsFailure(err error) bool {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.HasCode(err, errors.ErrCodeNotFound)
}

// WithLogging logs every fetch at debug and failures at warn.
func WithLogging(src Source, log *logger.Logger) Source {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("task-source")
	return SourceFunc(func(ctx context.Context) ([]Task, error) {
		start := time.Now()
		tasks, err := src.FetchAll(ctx)
		l := log.WithContext(ctx)
		if err != nil {
			l.Warn("Fetch failed", logger.MergeWithError(logger.DurationFields("fetch_all", time.Since(start)), err))
			return nil, err
		}
		l.Debug("Fetched tasks", logger.Fields("count", len(tasks), logger.FieldDuration, time.Since(start).Milliseconds()))
		return tasks, nil
	})
}
