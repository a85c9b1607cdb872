package pool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/cpuforge/raster3d"
)

// Pool is a fixed-size collection of worker goroutines, each with its
// own external (shared, mutex-guarded) and local (owner-only) queue.
// No worker takes tasks from another worker's queues. Tasks
// submitted with allowLocal from inside a running task stay on that
// task's worker; every other submission round-robins across workers.
type Pool struct {
	workers    []*worker
	nextWorker atomic.Uint32
	closed     atomic.Bool
	wg         sync.WaitGroup
}

// Option configures a Pool at construction time.
type Option func(*poolConfig)

type poolConfig struct {
	size int
}

// WithSize overrides the pool's worker count. Without it, NewPool uses
// DefaultConcurrency().
func WithSize(size int) Option {
	return func(c *poolConfig) { c.size = size }
}

// DefaultConcurrency returns the host's usable CPU count, falling back
// to gopsutil's logical count and finally to 4 if neither can be read.
func DefaultConcurrency() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return 4
}

// NewPool starts size workers, or DefaultConcurrency() if no WithSize
// option is given, and blocks until all of them are running.
func NewPool(opts ...Option) *Pool {
	cfg := poolConfig{size: DefaultConcurrency()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size < 1 {
		cfg.size = 1
	}

	p := &Pool{workers: make([]*worker, cfg.size)}
	p.wg.Add(cfg.size)
	var started sync.WaitGroup
	started.Add(cfg.size)
	for i := 0; i < cfg.size; i++ {
		w := newWorker(i, p)
		p.workers[i] = w
		go func() {
			defer p.wg.Done()
			started.Done()
			w.run()
		}()
	}
	started.Wait()
	raster3d.Logger().Debug("pool started", "workers", cfg.size)
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return len(p.workers) }

func (p *Pool) nextWorkerID() int {
	id := p.nextWorker.Add(1) - 1
	return int(id % uint32(len(p.workers)))
}

// SubmitTaskFor submits t directly to worker tid's external queue; that
// worker is the one that runs it. tid must be in [0, Size()).
func (p *Pool) SubmitTaskFor(tid int, t Task) *Future {
	if p.closed.Load() {
		return resolvedFuture(ErrPoolClosed)
	}
	future := newFuture()
	p.workers[tid].queueExternal(&queuedTask{task: t, future: future})
	return future
}

// SubmitTask submits t to the pool's next worker in round-robin order.
// Unlike WorkerContext.SubmitTask, a call made from outside a running
// task has no local queue to prefer, so it always routes externally.
func (p *Pool) SubmitTask(t Task) *Future {
	return p.SubmitTaskFor(p.nextWorkerID(), t)
}

func (p *Pool) submitLocal(workerID int, t Task) *Future {
	if p.closed.Load() {
		return resolvedFuture(ErrPoolClosed)
	}
	future := newFuture()
	p.workers[workerID].queueLocal(&queuedTask{task: t, future: future})
	return future
}

// SubmitAll is a convenience wrapper around repeated SubmitTask calls,
// spreading tasks across the pool's workers in round-robin order. It
// is not part of the pool's core execution path — equivalent behavior
// is always reachable through SubmitTask alone.
func (p *Pool) SubmitAll(tasks []Task) []*Future {
	futures := make([]*Future, len(tasks))
	for i, t := range tasks {
		futures[i] = p.SubmitTask(t)
	}
	return futures
}

// Close stops accepting new tasks and waits for every worker to drain
// its queues and exit. Tasks already queued before Close run to
// completion; only tasks submitted after Close resolve immediately
// with ErrPoolClosed.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		w.queueExternal(nil)
	}
	p.wg.Wait()
	raster3d.Logger().Debug("pool closed", "workers", len(p.workers))
}
