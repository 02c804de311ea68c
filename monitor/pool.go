package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/erraggy/oaskb/oaserrors"
)

// DefaultPoolAcquireTimeout bounds how long Acquire waits for a slot before
// returning oaserrors.ResourceExhaustedError.
const DefaultPoolAcquireTimeout = 5 * time.Second

// Pool is a bounded, per-method concurrency semaphore, the C12 middleware
// chain's "pool acquire" stage. Mirrors store.DB's Acquire/semaphore.Weighted
// idiom, scoped per-method instead of per-database.
type Pool struct {
	name           string
	sem            *semaphore.Weighted
	acquireTimeout time.Duration
	size           int64
	inUse          atomic.Int32
}

// NewPool creates a Pool admitting up to size concurrent acquisitions,
// waiting at most acquireTimeout for a slot.
func NewPool(name string, size int, acquireTimeout time.Duration) *Pool {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultPoolAcquireTimeout
	}
	return &Pool{
		name:           name,
		sem:            semaphore.NewWeighted(int64(size)),
		acquireTimeout: acquireTimeout,
		size:           int64(size),
	}
}

// Acquire reserves one slot, bounded by the pool's acquire timeout, and
// returns a release function that must be called exactly once.
func (p *Pool) Acquire(ctx context.Context) (release func(), err error) {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	start := time.Now()
	if err := p.sem.Acquire(acquireCtx, 1); err != nil {
		return nil, &oaserrors.ResourceExhaustedError{Resource: p.name, Waited: time.Since(start)}
	}
	p.inUse.Add(1)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		p.inUse.Add(-1)
		p.sem.Release(1)
	}, nil
}

// InUse reports the number of slots currently held.
func (p *Pool) InUse() int32 {
	return p.inUse.Load()
}

// Utilization reports the fraction of the pool's capacity currently in use.
func (p *Pool) Utilization() float64 {
	if p.size <= 0 {
		return 0
	}
	return float64(p.InUse()) / float64(p.size)
}
