package dao

import (
	"context"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/internal/model"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetByID returns the note or (nil, nil) when the id does not exist.
// Deleted-mid-flight notes must surface as "not found", not as errors.
func (d *Dao) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "note get by id failed")
	}
	return m.ToDomain(), nil
}

// ListDueBefore returns notes with an enabled reminder before the bound,
// ascending by reminder time.
func (d *Dao) ListDueBefore(ctx context.Context, before time.Time) ([]*domain.Note, error) {
	var rows []*model.Note
	err := d.db.WithContext(ctx).
		Where("is_reminder_set = ? AND reminder_time IS NOT NULL AND reminder_time < ?", true, before.UnixMilli()).
		Order("reminder_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list due reminders failed")
	}

	notes := make([]*domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.ToDomain())
	}
	return notes, nil
}

// SetReminderTime moves the reminder of a note to a new instant.
// Single-column update; relies on the store's per-row atomicity.
func (d *Dao) SetReminderTime(ctx context.Context, id int64, at time.Time) error {
	err := d.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", id).
		Update("reminder_time", at.UnixMilli()).Error
	return pkgerrors.Wrap(err, "set reminder time failed")
}

// ClearReminder removes the reminder columns of a note.
func (d *Dao) ClearReminder(ctx context.Context, id int64) error {
	err := d.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_reminder_set": false,
			"reminder_time":   nil,
			"repeat_interval": nil,
		}).Error
	return pkgerrors.Wrap(err, "clear reminder failed")
}

// Create inserts a note and returns the generated id.
func (d *Dao) Create(ctx context.Context, note *domain.Note) (int64, error) {
	m := model.FromDomain(note)
	m.ID = 0
	if err := d.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "note create failed")
	}
	return m.ID, nil
}

// Update overwrites a note row with the given domain state.
func (d *Dao) Update(ctx context.Context, note *domain.Note) error {
	m := model.FromDomain(note)
	err := d.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"title":           m.Title,
			"content":         m.Content,
			"updated_at":      m.UpdatedAt,
			"reminder_time":   m.ReminderTime,
			"is_reminder_set": m.IsReminderSet,
			"repeat_interval": m.RepeatInterval,
			"labels":          m.Labels,
		}).Error
	return pkgerrors.Wrap(err, "note update failed")
}

// Delete removes a note row.
func (d *Dao) Delete(ctx context.Context, id int64) error {
	err := d.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{}).Error
	return pkgerrors.Wrap(err, "note delete failed")
}

// List returns a page of notes ordered by updated time, newest first,
// together with the total row count.
func (d *Dao) List(ctx context.Context, offset, limit int) ([]*domain.Note, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&model.Note{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "note count failed")
	}

	var rows []*model.Note
	err := d.db.WithContext(ctx).
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "note list failed")
	}

	notes := make([]*domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.ToDomain())
	}
	return notes, total, nil
}

// Search matches the query against title and content.
func (d *Dao) Search(ctx context.Context, query string) ([]*domain.Note, error) {
	like := "%" + query + "%"
	var rows []*model.Note
	err := d.db.WithContext(ctx).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "note search failed")
	}

	notes := make([]*domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.ToDomain())
	}
	return notes, nil
}
