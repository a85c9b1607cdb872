package pool

// Task is work submitted to a Pool. ctx identifies which worker is
// running it and gives access back to the pool for further
// submissions, mirroring how a rasterizer task recursively dispatches
// sub-triangles onto the same pool.
type Task func(ctx *WorkerContext) error

type queuedTask struct {
	task   Task
	future *Future
}

// WorkerContext is handed to a running Task so it can identify its own
// worker and submit further tasks, including tasks that should stay on
// this same worker's local queue.
type WorkerContext struct {
	pool *Pool
	id   int
}

// WorkerID returns the index, in [0, Pool.Size()), of the worker
// running the current task.
func (c *WorkerContext) WorkerID() int { return c.id }

// Pool returns the pool that dispatched the current task.
func (c *WorkerContext) Pool() *Pool { return c.pool }

// SubmitTask submits t from inside a running task. When allowLocal is
// true, t is pushed onto this worker's local queue, so it runs on the
// same worker and cannot be stolen. When false, t is routed to the
// pool's round-robin worker selection exactly as SubmitTask from
// outside the pool would.
func (c *WorkerContext) SubmitTask(t Task, allowLocal bool) *Future {
	if allowLocal {
		return c.pool.submitLocal(c.id, t)
	}
	return c.pool.SubmitTask(t)
}

// SubmitAll submits tasks from inside a running task, putting the first
// task on this worker's local queue and spreading the rest across the
// workers' external queues in round-robin order, starting with the
// worker after this one. The pool-level SubmitAll, called from outside
// a task, has no local queue and round-robins every task.
func (c *WorkerContext) SubmitAll(tasks []Task) []*Future {
	futures := make([]*Future, len(tasks))
	worker := c.id
	for i, t := range tasks {
		if i == 0 {
			futures[i] = c.SubmitTask(t, true)
		} else {
			futures[i] = c.pool.SubmitTaskFor(worker, t)
		}
		worker = (worker + 1) % c.pool.Size()
	}
	return futures
}

// worker owns one external queue, shared with the rest of the pool for
// submission, and one local queue that only this worker's own
// goroutine ever reads or writes.
type worker struct {
	id       int
	external *deque[*queuedTask]
	local    []*queuedTask
	pool     *Pool
}

func newWorker(id int, pool *Pool) *worker {
	return &worker{
		id:       id,
		external: newDeque[*queuedTask](),
		pool:     pool,
	}
}

// run executes tasks until it receives the shutdown sentinel (a nil
// *queuedTask), draining whatever was already queued ahead of it first.
func (w *worker) run() {
	ctx := &WorkerContext{pool: w.pool, id: w.id}
	for {
		qt := w.nextTask()
		if qt == nil {
			return
		}
		err := qt.task(ctx)
		qt.future.resolve(err)
	}
}

func (w *worker) nextTask() *queuedTask {
	if len(w.local) > 0 {
		qt := w.local[0]
		w.local = w.local[1:]
		return qt
	}
	return w.external.Dequeue()
}

func (w *worker) queueLocal(qt *queuedTask) {
	w.local = append(w.local, qt)
}

func (w *worker) queueExternal(qt *queuedTask) {
	w.external.Enqueue(qt)
}
