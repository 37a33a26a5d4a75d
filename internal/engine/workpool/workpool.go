// Package workpool runs CPU-bound batches (mesh generation, point cloud
// slices) on a long-lived worker pool and blocks until the batch finishes.
package workpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

const (
	queueSize   = 256
	idleTimeout = time.Second
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("workpool: closed")

// Pool is a fork-join wrapper around a dynamic worker pool. A nil *Pool is
// valid and runs every task inline on the calling goroutine.
//
// Run must not be called from inside a task: all workers may already be
// busy with the outer batch.
type Pool struct {
	mu      sync.Mutex
	pool    worker.DynamicWorkerPool
	workers int
	nextID  int
	closed  bool
}

// New creates a pool with the given number of workers. workers <= 0 selects
// runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		pool:    worker.NewDynamicWorkerPool(workers, queueSize, idleTimeout),
		workers: workers,
	}
}

// Workers returns the worker count, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Run executes tasks concurrently and waits for all of them. Errors are
// joined in task order. A panicking task is reported as an error.
func (p *Pool) Run(tasks ...func() error) error {
	errs := make([]error, len(tasks))
	if p == nil {
		for i, task := range tasks {
			errs[i] = call(task)
		}
		return errors.Join(errs...)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	base := p.nextID
	p.nextID += len(tasks)
	p.mu.Unlock()

	// pool.Wait() only returns once workers idle-exit, so each batch gets
	// its own barrier.
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		p.pool.SubmitTask(worker.Task{
			ID: base + i,
			Do: func() (any, error) {
				defer wg.Done()
				errs[i] = call(task)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close stops the workers. Further Run calls return ErrClosed.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.pool.Stop()
}

func call(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workpool: task panicked: %v", r)
		}
	}()
	return task()
}
