package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one unit of batch work.
type Task struct {
	ID      string
	Payload interface{}
}

// Handler processes a task.
type Handler func(context.Context, Task) error

// Result reports the outcome of one task.
type Result struct {
	Task     Task
	Err      error
	Duration time.Duration
}

// PoolConfig configures worker pool behaviour.
type PoolConfig struct {
	Workers int
	Logger  *zap.Logger
}

// Pool runs a fixed batch of tasks on a bounded number of goroutines.
// Failed tasks are reported, never retried.
type Pool struct {
	name    string
	handler Handler
	workers int
	logger  *zap.Logger
}

// NewPool builds a pool with the provided handler.
func NewPool(name string, handler Handler, cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{name: name, handler: handler, workers: cfg.Workers, logger: cfg.Logger}
}

// Run processes every task and returns the results in task order. Tasks not
// started before ctx is cancelled report the context error.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	indexes := make(chan int)

	var wg sync.WaitGroup
	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.process(ctx, tasks[i])
			}
		}()
	}

	for i := range tasks {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Task: tasks[i], Err: err}
			continue
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	p.logger.Sugar().Infow("batch finished", "pool", p.name, "tasks", len(tasks), "workers", workers)
	return results
}

func (p *Pool) process(ctx context.Context, task Task) Result {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Result{Task: task, Err: err}
	}
	err := p.handler(ctx, task)
	if err != nil {
		p.logger.Sugar().Warnw("task failed", "pool", p.name, "task_id", task.ID, "error", err)
	}
	return Result{Task: task, Err: err, Duration: time.Since(start)}
}
