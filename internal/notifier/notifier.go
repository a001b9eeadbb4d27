package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskly-be/internal/repository"
)

// Notifier periodically reports tasks that are due on the current
// calendar date. It only reads the task store; a missed tick is lost, no
// catch-up is attempted.
type Notifier struct {
	taskRepo repository.TaskRepository
	logger   *zap.Logger
	interval time.Duration
}

// New creates a due-task notifier that sweeps once per interval.
func New(taskRepo repository.TaskRepository, logger *zap.Logger, interval time.Duration) *Notifier {
	return &Notifier{
		taskRepo: taskRepo,
		logger:   logger,
		interval: interval,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.sweep(time.Now())
			}
		}
	}()
}

// sweep logs the titles of unfinished tasks due on the given day, in the
// process's local timezone.
func (n *Notifier) sweep(now time.Time) {
	tasks, err := n.taskRepo.FindDueOn(now)
	if err != nil {
		n.logger.Error("due-task sweep failed", zap.Error(err))
		return
	}
	if len(tasks) == 0 {
		return
	}

	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	n.logger.Info("tasks due today",
		zap.String("date", now.Format("2006-01-02")),
		zap.Strings("titles", titles),
	)
}
