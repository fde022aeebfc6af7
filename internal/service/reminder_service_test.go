package service

import (
	"context"
	"testing"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/alarm"
	"github.com/AlirezaNezami96/note-reminder-service/internal/dao"
	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/internal/metric"
	"github.com/AlirezaNezami96/note-reminder-service/internal/model"
	"github.com/AlirezaNezami96/note-reminder-service/internal/notify"
	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	dao     *dao.Dao
	alarms  *alarm.Manager
	center  *notify.Center
	metrics *metric.Metrics
	rem     ReminderService
	notes   NoteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	d := dao.New(db, nil)
	metrics := metric.New(prometheus.NewRegistry())
	center := notify.NewCenter(nil, notify.NewLogSink(nil))

	// Wake dispatch is irrelevant for these tests; the handler is called
	// directly. Far-future instants keep timers from firing mid-test.
	alarms := alarm.NewManager(alarm.Config{ExactAlarmsEnabled: true}, nil, metrics, func(int64) {})
	t.Cleanup(alarms.Close)

	f := &fixture{
		dao:     d,
		alarms:  alarms,
		center:  center,
		metrics: metrics,
	}
	f.rem = NewReminderService(d, alarms, center, metrics, nil, 0)
	f.notes = NewNoteService(d, alarms, center, nil)
	return f
}

func (f *fixture) createNote(t *testing.T, title string, reminder *domain.Reminder) int64 {
	t.Helper()
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	id, err := f.dao.Create(context.Background(), &domain.Note{
		Title:     title,
		Content:   "body",
		CreatedAt: now,
		UpdatedAt: now,
		Reminder:  reminder,
	})
	require.NoError(t, err)
	return id
}

func TestHandleWake_OneShotClearsReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	id := f.createNote(t, "dentist", &domain.Reminder{
		Time: at, IsEnabled: true, RepeatInterval: recurrence.None,
	})
	f.alarms.Schedule(id, time.Now().Add(time.Hour))

	f.rem.HandleWake(ctx, id)

	note, err := f.dao.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Nil(t, note.Reminder, "one-shot reminder is cleared after firing")

	// The fired registration was already consumed in production; here the
	// armed helper timer remains, but delivery must not have re-armed.
	f.alarms.Cancel(id)
	assert.False(t, f.alarms.IsScheduled(id))

	_, active := f.center.Active(id)
	assert.True(t, active, "notification was emitted before clearing")
}

func TestHandleWake_DailyAdvancesOneDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Far-future date keeps the re-armed registration pending while the
	// test inspects it.
	at := time.Date(2999, 1, 15, 10, 30, 0, 0, time.UTC)
	id := f.createNote(t, "standup", &domain.Reminder{
		Time: at, IsEnabled: true, RepeatInterval: recurrence.Daily,
	})

	f.rem.HandleWake(ctx, id)

	note, err := f.dao.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, note.Reminder)

	want := time.Date(2999, 1, 16, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, want.UnixMilli(), note.Reminder.Time.UnixMilli())
	assert.Equal(t, recurrence.Daily, note.Reminder.RepeatInterval, "interval survives the advance")

	armedAt, ok := f.alarms.ScheduledAt(id)
	require.True(t, ok, "recurring reminder re-arms the alarm")
	assert.Equal(t, want.UnixMilli(), armedAt.UnixMilli())
}

func TestHandleWake_WeekdaysFridayToMonday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	friday := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
	id := f.createNote(t, "inbox zero", &domain.Reminder{
		Time: friday, IsEnabled: true, RepeatInterval: recurrence.Weekdays,
	})

	f.rem.HandleWake(ctx, id)

	note, err := f.dao.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, note.Reminder)

	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, monday.UnixMilli(), note.Reminder.Time.UnixMilli())
}

func TestHandleWake_DeletedNoteIsSilentNoOp(t *testing.T) {
	f := newFixture(t)

	assert.NotPanics(t, func() {
		f.rem.HandleWake(context.Background(), 404)
	})

	assert.Equal(t, 0, f.center.ActiveCount(), "no notification for a vanished note")
	assert.False(t, f.alarms.IsScheduled(404))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.StaleFires))
}

func TestHandleWake_ClearedReminderIsStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.createNote(t, "plain", nil)
	f.rem.HandleWake(ctx, id)

	assert.Equal(t, 0, f.center.ActiveCount())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.StaleFires))
}

func TestHandleWake_DisabledReminderIsStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.createNote(t, "paused", &domain.Reminder{
		Time: time.Now().Add(time.Hour), IsEnabled: false, RepeatInterval: recurrence.Daily,
	})
	f.rem.HandleWake(ctx, id)

	assert.Equal(t, 0, f.center.ActiveCount())
	note, err := f.dao.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, note.Reminder)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.StaleFires))
}

func TestRecoverPending_RearmsEnabledReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Device-reboot scenario: a pending reminder one hour out must come
	// back with the same fire instant.
	at := time.Now().Add(time.Hour).Truncate(time.Millisecond)
	pending := f.createNote(t, "pending", &domain.Reminder{
		Time: at, IsEnabled: true, RepeatInterval: recurrence.Weekly,
	})
	f.createNote(t, "disabled", &domain.Reminder{
		Time: at, IsEnabled: false, RepeatInterval: recurrence.Daily,
	})
	f.createNote(t, "no reminder", nil)

	n, err := f.rem.RecoverPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.True(t, f.alarms.IsScheduled(pending))
	armedAt, _ := f.alarms.ScheduledAt(pending)
	assert.Equal(t, at.UnixMilli(), armedAt.UnixMilli())
}

func TestRecoverPending_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	at := time.Now().Add(2 * time.Hour).Truncate(time.Millisecond)
	id := f.createNote(t, "repeat run", &domain.Reminder{
		Time: at, IsEnabled: true, RepeatInterval: recurrence.Monthly,
	})

	_, err := f.rem.RecoverPending(ctx)
	require.NoError(t, err)
	firstAt, _ := f.alarms.ScheduledAt(id)
	firstCount := f.alarms.PendingCount()

	_, err = f.rem.RecoverPending(ctx)
	require.NoError(t, err)

	assert.Equal(t, firstCount, f.alarms.PendingCount(), "second run arms the same set")
	secondAt, _ := f.alarms.ScheduledAt(id)
	assert.Equal(t, firstAt, secondAt)
}
