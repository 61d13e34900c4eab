package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRunner_ExecutesJobOnInterval(t *testing.T) {
	var runs int64
	job := Job{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			atomic.AddInt64(&runs, 1)
			return nil
		},
	}

	r := NewRunner(zap.NewNop(), job)
	r.Start()
	time.Sleep(60 * time.Millisecond)
	r.Stop()

	if got := atomic.LoadInt64(&runs); got < 2 {
		t.Errorf("job ran %d times, want at least 2", got)
	}
}

func TestRunner_StopHaltsExecution(t *testing.T) {
	var runs int64
	job := Job{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			atomic.AddInt64(&runs, 1)
			return nil
		},
	}

	r := NewRunner(zap.NewNop(), job)
	r.Start()
	time.Sleep(30 * time.Millisecond)
	r.Stop()

	after := atomic.LoadInt64(&runs)
	time.Sleep(40 * time.Millisecond)
	if got := atomic.LoadInt64(&runs); got != after {
		t.Errorf("job ran after Stop: %d -> %d", after, got)
	}
}

func TestRunner_JobErrorDoesNotStopOthers(t *testing.T) {
	var okRuns int64
	failing := Job{
		Name:     "failing",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			return errors.New("boom")
		},
	}
	healthy := Job{
		Name:     "healthy",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			atomic.AddInt64(&okRuns, 1)
			return nil
		},
	}

	r := NewRunner(zap.NewNop(), failing, healthy)
	r.Start()
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	if got := atomic.LoadInt64(&okRuns); got < 2 {
		t.Errorf("healthy job ran %d times, want at least 2", got)
	}
}
