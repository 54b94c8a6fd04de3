package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/logger"
)

func TestProcessRefresh(t *testing.T) {
	// Given: 첫 호출은 실패, 두 번째는 성공하는 대상
	var calls int32
	target := RefreshFunc(func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("token endpoint down")
		}
		return nil
	})
	w := NewRefreshWorker(target, time.Minute, logger.Discard())

	// When / Then
	assert.Error(t, w.ProcessRefresh(context.Background()))
	assert.NoError(t, w.ProcessRefresh(context.Background()))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRunStopsWithContext(t *testing.T) {
	var calls int32
	target := RefreshFunc(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	w := NewRefreshWorker(target, 5*time.Millisecond, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
