package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunKeepsTaskOrder(t *testing.T) {
	var calls int32
	pool := NewPool("test", func(ctx context.Context, task Task) error {
		atomic.AddInt32(&calls, 1)
		if task.ID == "3" {
			return errors.New("boom")
		}
		return nil
	}, PoolConfig{Workers: 3})

	tasks := make([]Task, 6)
	for i := range tasks {
		tasks[i] = Task{ID: fmt.Sprint(i)}
	}
	results := pool.Run(context.Background(), tasks)

	require.Len(t, results, 6)
	assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
	for i, res := range results {
		assert.Equal(t, fmt.Sprint(i), res.Task.ID)
		if i == 3 {
			assert.EqualError(t, res.Err, "boom")
		} else {
			assert.NoError(t, res.Err)
		}
	}
}

func TestPoolRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pool := NewPool("test", func(ctx context.Context, task Task) error { return nil }, PoolConfig{Workers: 2})

	results := pool.Run(ctx, []Task{{ID: "a"}, {ID: "b"}})
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestPoolRunEmpty(t *testing.T) {
	pool := NewPool("test", func(ctx context.Context, task Task) error { return nil }, PoolConfig{})
	assert.Empty(t, pool.Run(context.Background(), nil))
}
