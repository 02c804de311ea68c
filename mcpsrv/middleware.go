package mcpsrv

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/erraggy/oaskb/oaserrors"
)

// runWithMiddleware wraps one tool invocation with the chain
// calls for: circuit breaker check -> bounded pool acquire -> per-request
// timeout -> retry-on-transient-failure -> run -> record. Parameter
// validation happens in the handler itself, before this is called, since
// validation failures must never count against the circuit breaker or the
// retry budget.
func runWithMiddleware[TOut any](ctx context.Context, sc *ServerContext, method string, fn func(ctx context.Context) (TOut, error)) (TOut, error) {
	var zero TOut
	start := time.Now()

	breaker := sc.breaker(method)
	if err := breaker.Allow(); err != nil {
		sc.Monitor.RecordRequest(method, time.Since(start), errorType(err))
		return zero, err
	}

	release, err := sc.pool(method).Acquire(ctx)
	if err != nil {
		breaker.RecordFailure()
		sc.Monitor.RecordRequest(method, time.Since(start), errorType(err))
		return zero, err
	}
	defer release()

	runCtx := ctx
	var cancel context.CancelFunc
	if sc.Config.HandlerTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, sc.Config.HandlerTimeout)
		defer cancel()
	}

	out, runErr := retryTransient(runCtx, sc.Config, method, fn)

	sc.Monitor.RecordRequest(method, time.Since(start), errorType(runErr))
	if runErr != nil {
		breaker.RecordFailure()
		return zero, runErr
	}
	breaker.RecordSuccess()
	return out, nil
}

// retryTransient retries fn up to cfg.RetryMaxAttempts times, with
// exponential back-off plus jitter, but only while the error belongs to a
// retriable class (oaserrors.IsRetriable). A context deadline exceeded while
// waiting to retry is reported as an oaserrors.TimeoutError.
func retryTransient[TOut any](ctx context.Context, cfg *Config, method string, fn func(ctx context.Context) (TOut, error)) (TOut, error) {
	var zero TOut
	attempts := cfg.RetryMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		start := time.Now()
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, &oaserrors.TimeoutError{Method: method, Elapsed: time.Since(start), Limit: cfg.HandlerTimeout}
		}
		if !oaserrors.IsRetriable(err) || attempt == attempts-1 {
			return zero, err
		}

		delay := cfg.RetryBaseDelay * time.Duration(1<<uint(attempt))
		delay += time.Duration(rand.Int64N(int64(cfg.RetryBaseDelay) + 1))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, &oaserrors.TimeoutError{Method: method, Elapsed: time.Since(start), Limit: cfg.HandlerTimeout}
		}
	}
	return zero, lastErr
}

// errorType maps an error to the taxonomy label monitor's error_types
// histogram and recent-alert messages use. Unrecognized errors fall back to
// their dynamic type name so a new error type never gets silently dropped
// from the histogram.
func errorType(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, oaserrors.ErrValidation):
		return "ValidationError"
	case errors.Is(err, oaserrors.ErrResourceNotFound):
		return "ResourceNotFound"
	case errors.Is(err, oaserrors.ErrUnsupportedVersion):
		return "UnsupportedVersion"
	case errors.Is(err, oaserrors.ErrDatabaseConnection):
		return "DatabaseConnection"
	case errors.Is(err, oaserrors.ErrTransient):
		return "Transient"
	case errors.Is(err, oaserrors.ErrTimeout):
		return "Timeout"
	case errors.Is(err, oaserrors.ErrCircuitOpen):
		return "CircuitOpen"
	case errors.Is(err, oaserrors.ErrResourceExhausted):
		return "ResourceExhausted"
	case errors.Is(err, oaserrors.ErrSchemaResolution):
		return "SchemaResolution"
	case errors.Is(err, oaserrors.ErrCodeGeneration):
		return "CodeGeneration"
	case errors.Is(err, oaserrors.ErrDataIntegrity):
		return "DataIntegrity"
	case errors.Is(err, oaserrors.ErrConflict):
		return "Conflict"
	default:
		return "Error"
	}
}
