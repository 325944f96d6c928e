package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_Add(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	require.NoError(t, s.Add("reconcile", "4 * * * *", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("cleanup", "33 4 * * *", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("disabled", "", func(context.Context) error { return nil }))
	assert.Equal(t, 2, s.Len())

	err := s.Add("broken", "not a cron", func(context.Context) error { return nil })
	assert.ErrorContains(t, err, `invalid schedule "not a cron" for job broken`)
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	var runs atomic.Int32
	release := make(chan struct{})
	require.NoError(t, s.Add("slow", "@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}))

	s.Start()
	time.Sleep(3500 * time.Millisecond)
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(ctx)

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StopCancelsJobs(t *testing.T) {
	s := New(time.UTC, zap.NewNop())

	cancelled := make(chan struct{})
	require.NoError(t, s.Add("wait", "@every 1s", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}))

	s.Start()
	time.Sleep(1500 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(ctx)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job was not cancelled")
	}
}
