package worker

import (
	"context"
	"log/slog"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
)

// Worker consumes traces from a channel and persists them, keeping trace
// writes off the verification hot path. A failed append is logged and
// dropped rather than stalling the inbox; traces are forensic, not
// transactional.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Trace
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Trace, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case trace := <-w.inbox:
			if err := w.store.Append(ctx, trace); err != nil {
				w.logger.ErrorContext(ctx, "append verification trace",
					"attempt_id", trace.AttemptID.String(),
					"outcome", trace.Outcome,
					"error", err,
				)
			}
		}
	}
}
