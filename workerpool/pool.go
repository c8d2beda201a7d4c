package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/go-flowgraph/flog"
	"go.uber.org/automaxprocs/maxprocs"
)

func init() {
	// best-effort: align runtime.GOMAXPROCS with any cgroup CPU quota, so
	// that Node.Threads == 0 (host CPU count default) resolves to a
	// container-aware value rather than the raw host core count.
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		flog.Debug("workerpool", fmt.Sprintf(format, args...), nil)
	})); err != nil {
		flog.Warn("workerpool", "failed to set GOMAXPROCS", flog.Fields{"error": err.Error()})
	}
}

// ErrInvalidThreads is returned by QueueWork for a non-positive thread count,
// resolving a zero-size pool as an error rather than a silently-idle one.
var ErrInvalidThreads = errors.New("workerpool: threads must be positive")

// ErrStopped is returned by Go/QueueWork once Shutdown has been called.
var ErrStopped = errors.New("workerpool: pool is shut down")

// Pool is a fixed-size set of worker goroutines, each repeatedly executing
// a supplied function until the pool is shut down.
//
// Panics raised by a worker's function are recovered, logged and
// swallowed: business errors are never fatal to the worker loop.
type Pool struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once
	stopped  bool
	size     int
}

// NewPool constructs an unstarted Pool. Use Go or QueueWork to start
// workers.
func NewPool() *Pool {
	return &Pool{done: make(chan struct{})}
}

// Go starts a single worker goroutine running work repeatedly, until the
// pool is shut down. It returns ErrStopped if the pool has already begun
// shutting down.
func (p *Pool) Go(work func()) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}
	p.wg.Add(1)
	p.size++
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.runWorker(work)
	}()
	return nil
}

// QueueWork starts n worker goroutines, each running work repeatedly.
// n must be positive, or ErrInvalidThreads is returned.
func (p *Pool) QueueWork(work func(), n int) error {
	if n <= 0 {
		return ErrInvalidThreads
	}
	for i := 0; i < n; i++ {
		if err := p.Go(work); err != nil {
			return err
		}
	}
	return nil
}

// Size reports the number of worker goroutines started so far via Go or
// QueueWork.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Done returns a channel that is closed once Shutdown begins phase 2
// (forced cancellation). Cooperative work functions, and the yield
// function used by Work, should select on this to return promptly.
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// runWorker runs work repeatedly until Shutdown has been called, recovering
// panics from work (logging and swallowing them), so a single worker never
// dies on a business error.
func (p *Pool) runWorker(work func()) {
	for {
		select {
		case <-p.done:
			return
		default:
		}
		p.mu.Lock()
		stopped := p.stopped
		p.mu.Unlock()
		if stopped {
			return
		}
		p.runOnce(work)
	}
}

func (p *Pool) runOnce(work func()) {
	defer func() {
		if r := recover(); r != nil {
			flog.Error("workerpool", "worker function panicked", fmt.Errorf("%v", r), nil)
		}
	}()
	work()
}

// Shutdown implements the two-phase shutdown protocol:
// phase 1 stops accepting new workers and waits up to 60s (less if ctx is
// done sooner) for every running worker to finish its current call of
// work and return on its own; if that does not happen in time, phase 2
// closes Done (observed by cooperative workers and the default yield),
// then waits another 60s. If the pool still has not drained, the timeout
// is logged and Shutdown returns nil regardless (a background leak is
// logged, not escalated to a panic). If ctx is canceled while waiting,
// Shutdown moves directly to phase 2 and returns ctx.Err().
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()

	phase1 := time.NewTimer(60 * time.Second)
	defer phase1.Stop()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		p.forceCancel()
		return p.waitPhase2(context.Background(), drained, ctx.Err())
	case <-phase1.C:
		p.forceCancel()
		return p.waitPhase2(ctx, drained, nil)
	}
}

func (p *Pool) forceCancel() {
	p.doneOnce.Do(func() { close(p.done) })
}

func (p *Pool) waitPhase2(ctx context.Context, drained <-chan struct{}, pending error) error {
	phase2 := time.NewTimer(60 * time.Second)
	defer phase2.Stop()

	select {
	case <-drained:
		return pending
	case <-ctx.Done():
		if pending == nil {
			pending = ctx.Err()
		}
		return pending
	case <-phase2.C:
		flog.Warn("workerpool", "pool did not terminate", nil)
		return pending
	}
}
