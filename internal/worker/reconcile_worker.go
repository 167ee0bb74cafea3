package worker

import (
	"context"

	"go.uber.org/zap"
)

// Refresher re-syncs the local collection with the server.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ReconcileWorker serializes the background re-fetches issued after
// successful mutations. Requests arriving while one is already queued
// coalesce into a single fetch.
type ReconcileWorker struct {
	requests chan struct{}
	logger   *zap.Logger
}

// NewReconcileWorker creates the worker.
func NewReconcileWorker(logger *zap.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		requests: make(chan struct{}, 1),
		logger:   logger,
	}
}

// Enqueue requests a re-fetch. It never blocks.
func (w *ReconcileWorker) Enqueue() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

// Start runs the drain loop until ctx is cancelled. Fetch failures are
// logged and swallowed: a reconcile is best-effort, the optimistic
// state already on screen stays valid.
func (w *ReconcileWorker) Start(ctx context.Context, refresher Refresher) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.requests:
				if err := refresher.Refresh(ctx); err != nil {
					w.logger.Warn("reconcile fetch failed", zap.Error(err))
				}
			}
		}
	}()
}
