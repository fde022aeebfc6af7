// Package domain holds the note domain model and the repository
// contracts implemented by the dao layer.
package domain

import (
	"context"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"
)

// Note is the domain note. ID 0 means "not yet persisted".
// A nil Reminder is the "no reminder" branch; callers switch on it
// instead of inspecting scattered nullable fields.
type Note struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Labels    []string
	Reminder  *Reminder
}

// Reminder is the value embedded in a note. Time is a wall-clock local
// date-time; it is only combined with a zone when handed to the alarm
// scheduler. A NONE interval means the reminder is removed after it
// fires once.
type Reminder struct {
	Time           time.Time
	IsEnabled      bool
	RepeatInterval recurrence.Interval
}

// NoteStore is the narrow adapter the reminder engine needs from the
// note store. None of the operations retry internally; the caller owns
// retry policy.
type NoteStore interface {
	// GetByID returns (nil, nil) when the note does not exist. Callers
	// must treat a vanished note as a silent no-op, never a failure.
	GetByID(ctx context.Context, id int64) (*Note, error)

	// ListDueBefore returns notes with an enabled reminder scheduled
	// before the bound, ascending by reminder time.
	ListDueBefore(ctx context.Context, before time.Time) ([]*Note, error)

	// SetReminderTime moves the reminder of the given note.
	SetReminderTime(ctx context.Context, id int64, at time.Time) error

	// ClearReminder removes the reminder of the given note.
	ClearReminder(ctx context.Context, id int64) error
}

// NoteRepository is the full store surface used by the note CRUD service.
type NoteRepository interface {
	NoteStore

	Create(ctx context.Context, note *Note) (int64, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*Note, int64, error)
	Search(ctx context.Context, query string) ([]*Note, error)
}
