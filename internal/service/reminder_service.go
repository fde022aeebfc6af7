package service

import (
	"context"
	"strconv"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/alarm"
	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/internal/metric"
	"github.com/AlirezaNezami96/note-reminder-service/internal/notify"
	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReminderService drives the delivery state machine on alarm fires and
// re-arms lost registrations after a restart.
type ReminderService interface {
	// HandleWake processes one fired alarm. Never returns an error: all
	// failures are handled locally so that nothing propagates into the
	// timer callback context.
	HandleWake(ctx context.Context, noteID int64)

	// RecoverPending re-arms every enabled pending reminder and returns
	// how many registrations were restored. Idempotent.
	RecoverPending(ctx context.Context) (int, error)
}

type reminderService struct {
	store     domain.NoteStore
	scheduler alarm.Scheduler
	center    *notify.Center
	metrics   *metric.Metrics
	logger    *zap.Logger
	sf        singleflight.Group

	// recoveryHorizon bounds the ListDueBefore scan in RecoverPending.
	recoveryHorizon time.Duration
	now             func() time.Time
}

// NewReminderService creates the delivery handler / boot recovery service.
func NewReminderService(
	store domain.NoteStore,
	scheduler alarm.Scheduler,
	center *notify.Center,
	metrics *metric.Metrics,
	lg *zap.Logger,
	recoveryHorizon time.Duration,
) ReminderService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if metrics == nil {
		metrics = metric.New(nil)
	}
	if recoveryHorizon <= 0 {
		recoveryHorizon = 10 * 365 * 24 * time.Hour
	}
	return &reminderService{
		store:           store,
		scheduler:       scheduler,
		center:          center,
		metrics:         metrics,
		logger:          lg,
		recoveryHorizon: recoveryHorizon,
		now:             time.Now,
	}
}

// HandleWake re-derives everything from the note id: the id is the only
// payload an alarm carries, and no state is assumed to survive from
// schedule time to fire time.
func (s *reminderService) HandleWake(ctx context.Context, noteID int64) {
	// Concurrent fires for the same id (replace races, reconcile overlap)
	// collapse into a single delivery.
	key := strconv.FormatInt(noteID, 10)
	_, _, _ = s.sf.Do(key, func() (interface{}, error) {
		s.handleWake(ctx, noteID)
		return nil, nil
	})
}

func (s *reminderService) handleWake(ctx context.Context, noteID int64) {
	note, err := s.store.GetByID(ctx, noteID)
	if err != nil {
		// Store unavailable: log and drop the event. Alarms are not
		// requeued; the reconcile sweep is the retry path.
		s.logger.Error("wake aborted, store read failed",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err))
		return
	}
	if note == nil {
		// Note deleted between schedule and fire. Terminate silently.
		s.metrics.StaleFires.Inc()
		s.logger.Debug("stale fire for deleted note", zap.Int64(logger.FieldNoteID, noteID))
		return
	}
	if note.Reminder == nil || !note.Reminder.IsEnabled {
		// Reminder cleared or disabled after the alarm was armed.
		s.metrics.StaleFires.Inc()
		s.logger.Debug("stale fire, reminder no longer active", zap.Int64(logger.FieldNoteID, noteID))
		return
	}

	if s.center != nil {
		s.center.Notify(ctx, note)
		s.metrics.NotificationsSent.Inc()
	}

	reminder := note.Reminder
	if !reminder.RepeatInterval.IsRepeating() {
		if err := s.store.ClearReminder(ctx, noteID); err != nil {
			s.logger.Error("failed to clear one-shot reminder",
				zap.Int64(logger.FieldNoteID, noteID),
				zap.Error(err))
		}
		return
	}

	next := recurrence.Next(reminder.Time, reminder.RepeatInterval)

	// The store write and the re-arm are two separate steps; a crash
	// between them drops at most one recurrence. The reconcile sweep
	// re-arms from the persisted time, so the persisted value leads.
	if err := s.store.SetReminderTime(ctx, noteID, next); err != nil {
		s.logger.Error("failed to persist next occurrence",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Time(logger.FieldNextFireAt, next),
			zap.Error(err))
		return
	}

	updated, err := s.store.GetByID(ctx, noteID)
	if err != nil {
		s.logger.Error("re-read after reschedule failed",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err))
		return
	}
	if updated == nil || updated.Reminder == nil {
		// Deleted or cleared while we were rescheduling; nothing to arm.
		return
	}

	s.scheduler.Schedule(noteID, updated.Reminder.Time)

	s.logger.Info("recurring reminder advanced",
		zap.Int64(logger.FieldNoteID, noteID),
		zap.String(logger.FieldInterval, reminder.RepeatInterval.String()),
		zap.Time(logger.FieldNextFireAt, next))
}

// RecoverPending rebuilds alarm registrations from the store. Safe to
// run repeatedly: Schedule is an upsert, so a second pass converges to
// the same set of armed alarms.
func (s *reminderService) RecoverPending(ctx context.Context) (int, error) {
	horizon := s.now().Add(s.recoveryHorizon)

	notes, err := s.store.ListDueBefore(ctx, horizon)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, note := range notes {
		if note.Reminder == nil || !note.Reminder.IsEnabled {
			continue
		}
		s.scheduler.Schedule(note.ID, note.Reminder.Time)
		recovered++
	}

	if recovered > 0 {
		s.metrics.RecoveredAlarms.Add(float64(recovered))
	}
	s.logger.Info("pending reminders recovered", zap.Int(logger.FieldCount, recovered))
	return recovered, nil
}
