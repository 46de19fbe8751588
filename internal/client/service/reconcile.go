package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/client/state"
)

// StartAutoReconcile refetches the favorites every interval while the user
// is authorized, so that optimistic toggles whose request failed do not
// drift for long. It stops when ctx is done; the returned channel is
// closed once the goroutine has exited. A non-positive interval disables it.
func StartAutoReconcile(ctx context.Context, svc *Service, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !state.IsAuthorized(svc.store.State()) {
					continue
				}
				res := svc.FetchFavorites(ctx)
				if res.Outcome == Superseded {
					svc.log.Debug("reconcile skipped, favorites changed meanwhile")
					continue
				}
				if !res.OK() {
					svc.log.Warn("reconcile favorites failed", zap.Error(res.Err))
					continue
				}
				svc.log.Debug("favorites reconciled", zap.Int("count", len(res.Value)))
			}
		}
	}()
	return done
}
