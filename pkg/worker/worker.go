package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/nimasrn/donor-hub/pkg/logger"
)

var ErrStopped = errors.New("worker manager stopped")

type WorkerHandler = func(workerIndex int, job interface{})

type WorkerManager struct {
	bufferSize     int
	jobChannel     chan interface{}
	numberOfWorker int
	do             WorkerHandler
	waiter         *sync.WaitGroup
	quit           chan struct{}
	stopOnce       sync.Once
	mu             sync.RWMutex
	stopped        bool
}

// NewWorkerManager
// is a job manager based on go routines. Define the number of internal
// workers, and start publishing jobs using the Enqueue API. It distributes
// the jobs among its internal pool. Exit stops accepting new jobs, lets the
// workers drain what is already buffered and waits for them to return.
func NewWorkerManager(bufferSize, numberOfWorkers int, jobChannel chan interface{}) *WorkerManager {
	if jobChannel == nil {
		jobChannel = make(chan interface{}, bufferSize)
	}
	if numberOfWorkers <= 0 {
		numberOfWorkers = 1
	}

	return &WorkerManager{
		bufferSize:     bufferSize,
		numberOfWorker: numberOfWorkers,
		jobChannel:     jobChannel,
		waiter:         &sync.WaitGroup{},
		quit:           make(chan struct{}),
	}
}

func (w *WorkerManager) GetUnreadCount() int64 {
	if w.jobChannel == nil {
		return 0
	}
	return int64(len(w.jobChannel))
}

func (w *WorkerManager) SetWorker(worker WorkerHandler) {
	w.do = worker
}

// Enqueue
// Publishes a job onto the channel. It blocks while the buffer is full and
// gives up when ctx is done or the manager has been stopped.
func (w *WorkerManager) Enqueue(ctx context.Context, val interface{}) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.jobChannel <- val:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start
// starts off the workers as many as defined by w.numberOfWorker. It does
// not block.
func (w *WorkerManager) Start() {
	w.waiter.Add(w.numberOfWorker)
	for i := 0; i < w.numberOfWorker; i++ {
		go func(index int) {
			defer w.waiter.Done()
			for {
				select {
				case job := <-w.jobChannel:
					w.do(index, job)
				case <-w.quit:
					w.drain(index)
					return
				}
			}
		}(i)
	}
}

func (w *WorkerManager) drain(index int) {
	for {
		select {
		case job := <-w.jobChannel:
			w.do(index, job)
		default:
			return
		}
	}
}

// Exit
// stops the pool and blocks until buffered jobs are handled or ctx is done.
func (w *WorkerManager) Exit(ctx context.Context) error {
	w.stopOnce.Do(func() {
		logger.Info("Exit() is called and worker manager is going to be shutdown", "pending", w.GetUnreadCount())
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
		close(w.quit)
	})

	done := make(chan struct{})
	go func() {
		w.waiter.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
