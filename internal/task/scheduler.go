// Package task runs background jobs on the shutdown coordinator: the
// startup recovery pass and the periodic reconcile sweep.
package task

import (
	"context"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task defines a background job.
type Task interface {
	Name() string
	Run(ctx context.Context) error
	// LoopInterval fixed re-run interval; <= 0 disables the loop.
	LoopInterval() time.Duration
	// IsStartupRun run once immediately on start.
	IsStartupRun() bool
}

// CronTask is a Task driven by a cron schedule instead of a fixed
// interval. Schedule takes precedence over LoopInterval.
type CronTask interface {
	Task
	Schedule() cron.Schedule
}

// Scheduler runs registered tasks until the close signal arrives.
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler creates a task scheduler bound to the shutdown coordinator.
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask registers a task. Must be called before Start.
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start launches all registered tasks.
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

func (s *Scheduler) startTask(task Task) {

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		if task.IsStartupRun() {
			s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("startupRun", true))
			s.runOnce(task, "startupRun")
		}

		if ct, ok := task.(CronTask); ok && ct.Schedule() != nil {
			s.cronLoop(ct, closeSignal)
			return
		}

		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("loopRun", true))
				s.runOnce(task, "loopRun")
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("name", task.Name()))
				return
			}
		}
	})
}

// cronLoop sleeps until the schedule's next instant, runs, and repeats.
func (s *Scheduler) cronLoop(task CronTask, closeSignal <-chan struct{}) {
	schedule := task.Schedule()

	for {
		next := schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("cronRun", true))
			s.runOnce(task, "cronRun")
		case <-closeSignal:
			timer.Stop()
			s.logger.Info("task stopped", zap.String("name", task.Name()))
			return
		}
	}
}

func (s *Scheduler) runOnce(task Task, mode string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.String("mode", mode),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("mode", mode),
			zap.Error(err))
	}
}
