package monitor

import (
	"sync/atomic"
	"time"

	"github.com/erraggy/oaskb/oaserrors"
)

// CircuitState is one state of the CircuitBreaker state machine.
type CircuitState int32

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// DefaultFailureThreshold, DefaultSuccessThreshold, and
// DefaultRecoveryTimeout are the circuit breaker's out-of-the-box settings.
// The state machine's transitions are well known; the concrete thresholds
// are a judgment call recorded in DESIGN.md.
const (
	DefaultFailureThreshold = 5
	DefaultSuccessThreshold = 2
	DefaultRecoveryTimeout  = 30 * time.Second
)

// CircuitBreaker guards one MCP method, short-circuiting calls once
// consecutive failures cross FailureThreshold until RecoveryTimeout has
// elapsed: CLOSED -> (failures) -> OPEN -> (timeout) ->
// HALF_OPEN -> (successes) -> CLOSED.
type CircuitBreaker struct {
	Name             string
	FailureThreshold int32
	SuccessThreshold int32
	RecoveryTimeout  time.Duration

	state                atomic.Int32
	consecutiveFailures  atomic.Int32
	consecutiveSuccesses atomic.Int32
	openedAt             atomic.Int64
}

// NewCircuitBreaker creates a CircuitBreaker starting CLOSED.
func NewCircuitBreaker(name string, failureThreshold, successThreshold int32, recoveryTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		Name:             name,
		FailureThreshold: failureThreshold,
		SuccessThreshold: successThreshold,
		RecoveryTimeout:  recoveryTimeout,
	}
}

// NewDefaultCircuitBreaker creates a CircuitBreaker with the package
// defaults.
func NewDefaultCircuitBreaker(name string) *CircuitBreaker {
	return NewCircuitBreaker(name, DefaultFailureThreshold, DefaultSuccessThreshold, DefaultRecoveryTimeout)
}

// State reports the breaker's current state, transitioning OPEN to
// HALF_OPEN as a side effect once RecoveryTimeout has elapsed.
func (cb *CircuitBreaker) State() CircuitState {
	cb.maybeHalfOpen()
	return CircuitState(cb.state.Load())
}

func (cb *CircuitBreaker) maybeHalfOpen() {
	if CircuitState(cb.state.Load()) != StateOpen {
		return
	}
	openedAt := time.Unix(0, cb.openedAt.Load())
	if time.Since(openedAt) >= cb.RecoveryTimeout {
		cb.state.CompareAndSwap(int32(StateOpen), int32(StateHalfOpen))
	}
}

// Allow reports whether a call may proceed. Returns oaserrors.CircuitOpenError
// when the breaker is OPEN and the recovery timeout has not yet elapsed.
func (cb *CircuitBreaker) Allow() error {
	if cb.State() == StateOpen {
		openedAt := time.Unix(0, cb.openedAt.Load())
		return &oaserrors.CircuitOpenError{
			Method:      cb.Name,
			RetryAfter:  cb.RecoveryTimeout - time.Since(openedAt),
			OpenedSince: time.Since(openedAt),
		}
	}
	return nil
}

// RecordSuccess reports a successful call outcome.
func (cb *CircuitBreaker) RecordSuccess() {
	switch CircuitState(cb.state.Load()) {
	case StateHalfOpen:
		if cb.consecutiveSuccesses.Add(1) >= cb.SuccessThreshold {
			cb.reset()
		}
	case StateClosed:
		cb.consecutiveFailures.Store(0)
	}
}

// RecordFailure reports a failed call outcome.
func (cb *CircuitBreaker) RecordFailure() {
	cb.consecutiveSuccesses.Store(0)
	switch CircuitState(cb.state.Load()) {
	case StateHalfOpen:
		cb.trip()
	case StateClosed:
		if cb.consecutiveFailures.Add(1) >= cb.FailureThreshold {
			cb.trip()
		}
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state.Store(int32(StateOpen))
	cb.openedAt.Store(time.Now().UnixNano())
	cb.consecutiveFailures.Store(0)
}

func (cb *CircuitBreaker) reset() {
	cb.state.Store(int32(StateClosed))
	cb.consecutiveFailures.Store(0)
	cb.consecutiveSuccesses.Store(0)
}
