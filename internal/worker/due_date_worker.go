package worker

import (
	"context"
	"taskServer/internal/logger"
	"taskServer/internal/models/task"
	"time"

	"go.uber.org/zap"
)

type OverdueSource interface {
	OverdueTasks(ctx context.Context, now time.Time) []task.Task
}

// DueDateWorker periodically reports open tasks that are past their due date.
// It never changes a task.
type DueDateWorker struct {
	source   OverdueSource
	interval time.Duration
	now      func() time.Time
}

func NewDueDateWorker(source OverdueSource, interval time.Duration) *DueDateWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &DueDateWorker{
		source:   source,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start blocks until ctx is cancelled.
func (w *DueDateWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Worker: Due date check started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Due date check stopping")
			return nil
		}
	}
}

// Check runs a single scan and returns the overdue tasks it found.
func (w *DueDateWorker) Check(ctx context.Context) []task.Task {
	start := time.Now()
	now := w.now()

	overdue := w.source.OverdueTasks(ctx, now)
	for _, t := range overdue {
		logger.Warn("Worker: Task is past its due date",
			zap.Int("task_id", t.ID),
			zap.String("title", t.Title),
			zap.String("status", string(t.Status)),
			zap.Time("due_date", *t.DueDate),
		)
	}

	logger.Info("Worker: Due date check finished",
		zap.Duration("ms", time.Since(start)),
		zap.Int("overdue", len(overdue)),
	)
	return overdue
}
