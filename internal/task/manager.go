package task

import (
	"github.com/AlirezaNezami96/note-reminder-service/internal/service"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager builds and runs the background tasks.
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager creates the task manager bound to the shutdown coordinator.
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterTasks wires the recovery and reconcile tasks. reconcileSpec
// is a five-field cron expression; empty disables the sweep.
func (m *Manager) RegisterTasks(reminders service.ReminderService, reconcileSpec string) error {
	m.scheduler.AddTask(NewBootRecoveryTask(reminders, m.logger))

	reconcile, err := NewReconcileTask(reminders, reconcileSpec, m.logger)
	if err != nil {
		m.logger.Warn("failed to create reconcile task", zap.Error(err))
		return err
	}
	if reconcile != nil {
		m.scheduler.AddTask(reconcile)
	} else {
		m.logger.Info("reconcile task is disabled (cron expression not configured)")
	}

	return nil
}

// Start launches all registered tasks.
func (m *Manager) Start() {
	m.scheduler.Start()
}
