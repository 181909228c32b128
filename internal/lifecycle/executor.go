package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/nimasrn/donor-hub/pkg/worker"
)

// Task is one unit of notification work with its own error boundary.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Executor runs tasks. Submit never returns an error to the caller; what
// cannot be run is logged and counted.
type Executor interface {
	Submit(ctx context.Context, task Task)
}

var errPanic = errors.New("notification task panicked")

// execute runs t, turning a panic into an error, and logs the outcome.
func execute(ctx context.Context, t Task, stats *Stats) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				stats.recordPanic()
				err = fmt.Errorf("%w: %v", errPanic, r)
			}
		}()
		return t.Run(ctx)
	}()
	if err != nil {
		logger.Warn("[lifecycle] notification task failed", "task", t.Name, "error", err)
	}
}

// InlineExecutor runs each task before Submit returns. The caller waits for
// delivery but never sees its error.
type InlineExecutor struct {
	stats *Stats
}

func NewInlineExecutor(stats *Stats) *InlineExecutor {
	if stats == nil {
		stats = NewStats()
	}
	return &InlineExecutor{stats: stats}
}

func (e *InlineExecutor) Submit(ctx context.Context, t Task) {
	execute(ctx, t, e.stats)
}

type PoolOptions struct {
	Workers int
	Buffer  int
	// EnqueueTimeout bounds how long Submit waits for buffer space.
	EnqueueTimeout time.Duration
}

type poolJob struct {
	ctx  context.Context
	task Task
}

// PoolExecutor hands tasks to a worker pool and returns immediately. Tasks
// run on a fresh background context: the caller's context may be a pooled
// request context that is reset once the handler returns, so nothing is
// read from it after Submit.
type PoolExecutor struct {
	pool    *worker.WorkerManager
	stats   *Stats
	timeout time.Duration
}

func NewPoolExecutor(opts PoolOptions, stats *Stats) *PoolExecutor {
	if opts.Buffer <= 0 {
		opts.Buffer = 1024
	}
	if opts.EnqueueTimeout <= 0 {
		opts.EnqueueTimeout = 100 * time.Millisecond
	}
	if stats == nil {
		stats = NewStats()
	}
	e := &PoolExecutor{
		pool:    worker.NewWorkerManager(opts.Buffer, opts.Workers, nil),
		stats:   stats,
		timeout: opts.EnqueueTimeout,
	}
	e.pool.SetWorker(e.handle)
	e.pool.Start()
	return e
}

func (e *PoolExecutor) handle(workerIndex int, job interface{}) {
	j, ok := job.(poolJob)
	if !ok {
		logger.Error("[lifecycle] invalid job type", "worker", workerIndex)
		return
	}
	execute(j.ctx, j.task, e.stats)
}

func (e *PoolExecutor) Submit(_ context.Context, t Task) {
	enqueueCtx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	if err := e.pool.Enqueue(enqueueCtx, poolJob{ctx: context.Background(), task: t}); err != nil {
		e.stats.recordDropped()
		logger.Error("[lifecycle] notification dropped", "task", t.Name, "error", err)
	}
}

// Pending is the number of tasks waiting for a worker.
func (e *PoolExecutor) Pending() int64 {
	return e.pool.GetUnreadCount()
}

// Close stops accepting tasks and waits for queued ones until ctx is done.
func (e *PoolExecutor) Close(ctx context.Context) error {
	return e.pool.Exit(ctx)
}
