package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRunner struct {
	calls atomic.Int64
	err   error
}

func (r *countingRunner) Run(ctx context.Context) (int, error) {
	r.calls.Add(1)
	return 3, r.err
}

func TestRunsImmediatelyThenOnTicks(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, zap.NewNop(), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runner.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}

func TestKeepsRunningAfterFailure(t *testing.T) {
	runner := &countingRunner{err: errors.New("api down")}
	s := New(runner, zap.NewNop(), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	require.Eventually(t, func() bool {
		return runner.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestStopsBeforeFirstTick(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, zap.NewNop(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()
	s.Run(ctx)

	assert.Equal(t, int64(1), runner.calls.Load())
}
