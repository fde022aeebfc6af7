package task

import (
	"context"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/service"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/logger"

	"go.uber.org/zap"
)

// BootRecoveryTask rebuilds alarm registrations from the store once at
// process start. Registrations never survive a restart, so without this
// pass every pending reminder would stay silent until edited again.
type BootRecoveryTask struct {
	reminders service.ReminderService
	logger    *zap.Logger
}

// NewBootRecoveryTask creates the startup recovery task.
func NewBootRecoveryTask(reminders service.ReminderService, lg *zap.Logger) *BootRecoveryTask {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &BootRecoveryTask{reminders: reminders, logger: lg}
}

func (t *BootRecoveryTask) Name() string { return "BootRecovery" }

func (t *BootRecoveryTask) LoopInterval() time.Duration { return 0 }

func (t *BootRecoveryTask) IsStartupRun() bool { return true }

func (t *BootRecoveryTask) Run(ctx context.Context) error {
	start := time.Now()
	n, err := t.reminders.RecoverPending(ctx)
	if err != nil {
		return err
	}
	t.logger.Info("boot recovery finished",
		zap.Int(logger.FieldCount, n),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}
