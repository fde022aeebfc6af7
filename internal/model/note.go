package model

import (
	"strings"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"
)

// Note is the persisted note row. Times are stored as epoch
// milliseconds; the reminder columns are nullable so that "no reminder"
// is representable without a join.
type Note struct {
	ID             int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title          string  `gorm:"column:title" json:"title"`
	Content        string  `gorm:"column:content" json:"content"`
	CreatedAt      int64   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      int64   `gorm:"column:updated_at" json:"updatedAt"`
	ReminderTime   *int64  `gorm:"column:reminder_time;index" json:"reminderTime"`
	IsReminderSet  bool    `gorm:"column:is_reminder_set" json:"isReminderSet"`
	RepeatInterval *string `gorm:"column:repeat_interval" json:"repeatInterval"`
	Labels         *string `gorm:"column:labels" json:"labels"`
}

// TableName maps the model to the notes table.
func (Note) TableName() string {
	return "notes"
}

// ToDomain converts a stored row into the domain note. Unknown interval
// names degrade to NONE rather than failing the read.
func (m *Note) ToDomain() *domain.Note {
	n := &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: time.UnixMilli(m.CreatedAt),
		UpdatedAt: time.UnixMilli(m.UpdatedAt),
	}

	if m.Labels != nil && *m.Labels != "" {
		parts := strings.Split(*m.Labels, ",")
		n.Labels = make([]string, 0, len(parts))
		for _, p := range parts {
			n.Labels = append(n.Labels, strings.TrimSpace(p))
		}
	}

	if m.ReminderTime != nil {
		interval := recurrence.None
		if m.RepeatInterval != nil {
			if iv, err := recurrence.Parse(*m.RepeatInterval); err == nil {
				interval = iv
			}
		}
		n.Reminder = &domain.Reminder{
			Time:           time.UnixMilli(*m.ReminderTime),
			IsEnabled:      m.IsReminderSet,
			RepeatInterval: interval,
		}
	}

	return n
}

// FromDomain converts a domain note into its stored row.
func FromDomain(n *domain.Note) *Note {
	m := &Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UnixMilli(),
		UpdatedAt: n.UpdatedAt.UnixMilli(),
	}

	if len(n.Labels) > 0 {
		joined := strings.Join(n.Labels, ",")
		m.Labels = &joined
	}

	if n.Reminder != nil {
		ms := n.Reminder.Time.UnixMilli()
		name := n.Reminder.RepeatInterval.String()
		m.ReminderTime = &ms
		m.IsReminderSet = n.Reminder.IsEnabled
		m.RepeatInterval = &name
	}

	return m
}
