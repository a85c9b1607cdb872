package pool

import "errors"

// ErrPoolClosed is the error a Future resolves to when the pool is
// closed before the future's task runs. It is the broken-promise case:
// the task itself never executed.
var ErrPoolClosed = errors.New("pool: closed before task ran")

// Future is the result of a task submitted to the pool. It behaves
// like a single-use, one-shot channel: exactly one value is ever sent.
type Future struct {
	result chan error
}

func newFuture() *Future {
	return &Future{result: make(chan error, 1)}
}

func resolvedFuture(err error) *Future {
	f := newFuture()
	f.result <- err
	return f
}

// Resolved returns a Future that has already completed with err (nil
// for success). Pipeline code uses it to report a failure that occurs
// before a task is ever submitted to the pool.
func Resolved(err error) *Future {
	return resolvedFuture(err)
}

func (f *Future) resolve(err error) {
	f.result <- err
}

// Wait blocks until the task completes and returns the error it
// produced, or ErrPoolClosed if the pool shut down before the task ran.
func (f *Future) Wait() error {
	return <-f.result
}

// TryWait returns the task's result without blocking. ok is false if
// the task has not completed yet.
func (f *Future) TryWait() (err error, ok bool) {
	select {
	case err = <-f.result:
		f.result <- err
		return err, true
	default:
		return nil, false
	}
}
