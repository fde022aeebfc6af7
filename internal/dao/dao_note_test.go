package dao

import (
	"context"
	"testing"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/internal/model"
	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	return New(db, nil)
}

func testNote(title string, reminder *domain.Reminder) *domain.Note {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	return &domain.Note{
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: now,
		UpdatedAt: now,
		Labels:    []string{"test"},
		Reminder:  reminder,
	}
}

func TestDao_CreateAndGetByID(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	reminder := &domain.Reminder{
		Time:           time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		IsEnabled:      true,
		RepeatInterval: recurrence.Daily,
	}

	id, err := d.Create(ctx, testNote("with reminder", reminder))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := d.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "with reminder", got.Title)
	require.NotNil(t, got.Reminder)
	assert.True(t, got.Reminder.IsEnabled)
	assert.Equal(t, recurrence.Daily, got.Reminder.RepeatInterval)
	assert.Equal(t, reminder.Time.UnixMilli(), got.Reminder.Time.UnixMilli())
}

func TestDao_GetByID_Missing(t *testing.T) {
	d := newTestDao(t)

	got, err := d.GetByID(context.Background(), 999)
	require.NoError(t, err, "missing note is not an error")
	assert.Nil(t, got)
}

func TestDao_ListDueBefore(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	mk := func(title string, at time.Time, enabled bool) int64 {
		id, err := d.Create(ctx, testNote(title, &domain.Reminder{
			Time:           at,
			IsEnabled:      enabled,
			RepeatInterval: recurrence.Weekly,
		}))
		require.NoError(t, err)
		return id
	}

	late := mk("late", base.Add(48*time.Hour), true)
	early := mk("early", base.Add(1*time.Hour), true)
	mk("disabled", base.Add(2*time.Hour), false)
	_, err := d.Create(ctx, testNote("no reminder", nil))
	require.NoError(t, err)

	due, err := d.ListDueBefore(ctx, base.Add(72*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 2, "disabled and reminder-less notes are excluded")
	assert.Equal(t, early, due[0].ID, "ascending by reminder time")
	assert.Equal(t, late, due[1].ID)

	due, err = d.ListDueBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, early, due[0].ID)
}

func TestDao_SetReminderTime(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	id, err := d.Create(ctx, testNote("movable", &domain.Reminder{
		Time: at, IsEnabled: true, RepeatInterval: recurrence.Daily,
	}))
	require.NoError(t, err)

	next := at.AddDate(0, 0, 1)
	require.NoError(t, d.SetReminderTime(ctx, id, next))

	got, err := d.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Reminder)
	assert.Equal(t, next.UnixMilli(), got.Reminder.Time.UnixMilli())
	assert.Equal(t, recurrence.Daily, got.Reminder.RepeatInterval, "interval untouched")
}

func TestDao_ClearReminder(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	id, err := d.Create(ctx, testNote("clearable", &domain.Reminder{
		Time:           time.Now().Add(time.Hour),
		IsEnabled:      true,
		RepeatInterval: recurrence.None,
	}))
	require.NoError(t, err)

	require.NoError(t, d.ClearReminder(ctx, id))

	got, err := d.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Reminder, "cleared reminder reads back as absent")
}

func TestDao_UpdateAndDelete(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	id, err := d.Create(ctx, testNote("original", nil))
	require.NoError(t, err)

	got, err := d.GetByID(ctx, id)
	require.NoError(t, err)
	got.Title = "renamed"
	got.UpdatedAt = got.UpdatedAt.Add(time.Minute)
	require.NoError(t, d.Update(ctx, got))

	got, err = d.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	require.NoError(t, d.Delete(ctx, id))
	got, err = d.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDao_Search(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	_, err := d.Create(ctx, testNote("groceries", nil))
	require.NoError(t, err)
	_, err = d.Create(ctx, testNote("meeting notes", nil))
	require.NoError(t, err)

	found, err := d.Search(ctx, "grocer")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "groceries", found[0].Title)

	// Content matches too.
	found, err = d.Search(ctx, "content of meeting")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestDao_List_Pagination(t *testing.T) {
	d := newTestDao(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		n := testNote("note", nil)
		n.UpdatedAt = n.UpdatedAt.Add(time.Duration(i) * time.Minute)
		_, err := d.Create(ctx, n)
		require.NoError(t, err)
	}

	page, total, err := d.List(ctx, 0, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 3)
	assert.True(t, page[0].UpdatedAt.After(page[2].UpdatedAt), "newest first")

	rest, _, err := d.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}
