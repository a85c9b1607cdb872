package pool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSubmitTaskRunsAndResolves(t *testing.T) {
	p := NewPool(WithSize(2))
	defer p.Close()

	future := p.SubmitTask(func(ctx *WorkerContext) error {
		return nil
	})
	if err := future.Wait(); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}
}

func TestSubmitTaskPropagatesError(t *testing.T) {
	p := NewPool(WithSize(2))
	defer p.Close()

	boom := errors.New("boom")
	future := p.SubmitTask(func(ctx *WorkerContext) error {
		return boom
	})
	if err := future.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait() = %v, want %v", err, boom)
	}
}

func TestSubmitTaskForTargetsWorker(t *testing.T) {
	p := NewPool(WithSize(4))
	defer p.Close()

	seen := make(chan int, 1)
	future := p.SubmitTaskFor(2, func(ctx *WorkerContext) error {
		seen <- ctx.WorkerID()
		return nil
	})
	if err := future.Wait(); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}
	if got := <-seen; got != 2 {
		t.Fatalf("task ran on worker %d, want 2", got)
	}
}

func TestLocalSubmissionStaysOnSameWorker(t *testing.T) {
	p := NewPool(WithSize(4))
	defer p.Close()

	var childWorker int32
	var childDone sync.WaitGroup
	childDone.Add(1)

	// The outer task must submit the local child and return, not wait
	// on it: the worker only drains its local queue between tasks, so
	// a task that blocks on a future it just queued locally on its own
	// worker would deadlock forever (nothing else ever runs that task).
	outer := p.SubmitTaskFor(1, func(ctx *WorkerContext) error {
		ctx.SubmitTask(func(childCtx *WorkerContext) error {
			defer childDone.Done()
			atomic.StoreInt32(&childWorker, int32(childCtx.WorkerID()))
			return nil
		}, true)
		return nil
	})

	if err := outer.Wait(); err != nil {
		t.Fatalf("outer task failed: %v", err)
	}
	childDone.Wait()
	if got := atomic.LoadInt32(&childWorker); got != 1 {
		t.Fatalf("local task ran on worker %d, want 1", got)
	}
}

func TestSubmitAllSpreadsAcrossWorkers(t *testing.T) {
	p := NewPool(WithSize(4))
	defer p.Close()

	var ran atomic.Int32
	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = func(ctx *WorkerContext) error {
			ran.Add(1)
			return nil
		}
	}
	futures := p.SubmitAll(tasks)
	for _, f := range futures {
		if err := f.Wait(); err != nil {
			t.Fatalf("Wait() = %v, want nil", err)
		}
	}
	if ran.Load() != 8 {
		t.Fatalf("ran %d tasks, want 8", ran.Load())
	}
}

func TestCloseResolvesLateSubmissionsWithErrPoolClosed(t *testing.T) {
	p := NewPool(WithSize(2))
	p.Close()

	future := p.SubmitTask(func(ctx *WorkerContext) error {
		return nil
	})
	if err := future.Wait(); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("Wait() = %v, want ErrPoolClosed", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := NewPool(WithSize(2))
	p.Close()
	p.Close()
}

func TestDefaultConcurrencyIsPositive(t *testing.T) {
	if DefaultConcurrency() < 1 {
		t.Fatal("DefaultConcurrency() returned a non-positive value")
	}
}
