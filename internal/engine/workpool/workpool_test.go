package workpool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunAllTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	var sum atomic.Int64
	tasks := make([]func() error, 100)
	for i := range tasks {
		n := int64(i + 1)
		tasks[i] = func() error {
			sum.Add(n)
			return nil
		}
	}
	if err := p.Run(tasks...); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := sum.Load(); got != 5050 {
		t.Errorf("sum = %d, want 5050", got)
	}
}

func TestRunMoreTasksThanQueue(t *testing.T) {
	p := New(2)
	defer p.Close()

	var count atomic.Int64
	tasks := make([]func() error, queueSize*3)
	for i := range tasks {
		tasks[i] = func() error {
			count.Add(1)
			return nil
		}
	}
	if err := p.Run(tasks...); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if count.Load() != int64(len(tasks)) {
		t.Errorf("ran %d tasks, want %d", count.Load(), len(tasks))
	}
}

func TestRunErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	for _, tc := range []struct {
		name string
		pool *Pool
	}{
		{"pooled", New(3)},
		{"inline", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer tc.pool.Close()
			err := tc.pool.Run(
				func() error { return nil },
				func() error { return errA },
				func() error { return errB },
			)
			if !errors.Is(err, errA) || !errors.Is(err, errB) {
				t.Errorf("Run() error = %v, want both task errors", err)
			}
		})
	}
}

func TestRunRecoversPanic(t *testing.T) {
	p := New(1)
	defer p.Close()

	err := p.Run(func() error { panic("boom") })
	if err == nil {
		t.Fatal("expected error from panicking task")
	}
	if err := p.Run(func() error { return nil }); err != nil {
		t.Errorf("pool unusable after panic: %v", err)
	}
}

func TestRunAfterClose(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close()
	if err := p.Run(func() error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Close = %v, want ErrClosed", err)
	}
}

func TestNilPoolWorkers(t *testing.T) {
	var p *Pool
	if p.Workers() != 1 {
		t.Errorf("nil Workers() = %d, want 1", p.Workers())
	}
}
