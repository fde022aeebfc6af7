package task

import (
	"context"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/service"

	pkgerrors "github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReconcileTask periodically re-arms alarms from the persisted reminder
// state. It backstops the non-atomic persist-then-rearm step in the
// delivery handler: a crash between the two drops at most one arming,
// which the next sweep restores.
type ReconcileTask struct {
	reminders service.ReminderService
	schedule  cron.Schedule
	logger    *zap.Logger
}

// NewReconcileTask parses spec as a five-field cron expression. An
// empty spec disables the task and returns (nil, nil).
func NewReconcileTask(reminders service.ReminderService, spec string, lg *zap.Logger) (*ReconcileTask, error) {
	if spec == "" {
		return nil, nil
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "invalid reconcile cron expression %q", spec)
	}

	return &ReconcileTask{
		reminders: reminders,
		schedule:  schedule,
		logger:    lg,
	}, nil
}

func (t *ReconcileTask) Name() string { return "ReminderReconcile" }

func (t *ReconcileTask) LoopInterval() time.Duration { return 0 }

func (t *ReconcileTask) IsStartupRun() bool { return false }

func (t *ReconcileTask) Schedule() cron.Schedule { return t.schedule }

func (t *ReconcileTask) Run(ctx context.Context) error {
	_, err := t.reminders.RecoverPending(ctx)
	return err
}
