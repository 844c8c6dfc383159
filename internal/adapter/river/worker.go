package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EventWorker processes domain event jobs from the River queue.
// For now it logs the event; future versions will feed satellite-register
// notification and reporting pipelines.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing event",
		"event", job.Args.Event,
		"tenant_id", job.Args.TenantID,
		"register_id", job.Args.RegisterID,
		"session_id", job.Args.SessionID,
		"sale_id", job.Args.SaleID,
		"amount", job.Args.Amount,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
