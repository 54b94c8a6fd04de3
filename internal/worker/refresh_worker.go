package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher: 주기적으로 갱신해야 하는 세션
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc는 함수를 Refresher로 씁니다.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// RefreshWorker는 주기적으로 백엔드 세션 토큰을 갱신합니다.
type RefreshWorker struct {
	Target   Refresher
	Interval time.Duration
	Log      *logrus.Entry
}

func NewRefreshWorker(target Refresher, interval time.Duration, log *logrus.Entry) *RefreshWorker {
	return &RefreshWorker{
		Target:   target,
		Interval: interval,
		Log:      log,
	}
}

// Run: ctx가 끝날 때까지 Interval마다 ProcessRefresh를 호출하는 메인 루프
func (w *RefreshWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.Log.WithField("interval", w.Interval).Info("refresh worker started")

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("refresh worker stopped")
			return
		case <-ticker.C:
			w.ProcessRefresh(ctx)
		}
	}
}

// ProcessRefresh: 한 번 갱신합니다. 실패는 로그만 남기고 다음 주기를 기다립니다.
func (w *RefreshWorker) ProcessRefresh(ctx context.Context) error {
	if err := w.Target.Refresh(ctx); err != nil {
		w.Log.WithError(err).Warn("session refresh failed")
		return err
	}
	return nil
}
