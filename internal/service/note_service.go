// Package service implements the business logic layer.
package service

import (
	"context"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/alarm"
	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/internal/dto"
	"github.com/AlirezaNezami96/note-reminder-service/internal/notify"
	"github.com/AlirezaNezami96/note-reminder-service/internal/recurrence"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/logger"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/timex"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoteNotFound reported when an operation targets a missing note.
var ErrNoteNotFound = pkgerrors.New("note not found")

// NoteService is the note CRUD and reminder management surface.
type NoteService interface {
	// Create inserts a new note.
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*NoteDTO, error)

	// Update rewrites title/content/labels of an existing note.
	Update(ctx context.Context, id int64, params *dto.NoteUpdateRequest) (*NoteDTO, error)

	// Get returns a single note, or ErrNoteNotFound.
	Get(ctx context.Context, id int64) (*NoteDTO, error)

	// Delete removes a note, cancelling any armed alarm first.
	Delete(ctx context.Context, id int64) error

	// List returns a page of notes, newest update first.
	List(ctx context.Context, page, pageSize int) ([]*NoteDTO, int, error)

	// Search matches the query against note titles and contents.
	Search(ctx context.Context, query string) ([]*NoteDTO, error)

	// SetReminder attaches or reconfigures the reminder and (re)arms the
	// alarm when enabled.
	SetReminder(ctx context.Context, id int64, at time.Time, interval recurrence.Interval, enabled bool) (*NoteDTO, error)

	// ClearReminder cancels the alarm and removes the reminder.
	ClearReminder(ctx context.Context, id int64) error
}

// NoteDTO note data transfer object
type NoteDTO struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	CreatedAt timex.Time   `json:"createdAt"`
	UpdatedAt timex.Time   `json:"updatedAt"`
	Labels    []string     `json:"labels"`
	Reminder  *ReminderDTO `json:"reminder,omitempty"`
}

// ReminderDTO reminder data transfer object
type ReminderDTO struct {
	Time           timex.Time `json:"time"`
	IsEnabled      bool       `json:"isEnabled"`
	RepeatInterval string     `json:"repeatInterval"`
}

func toNoteDTO(n *domain.Note) *NoteDTO {
	d := &NoteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
		Labels:    n.Labels,
	}
	if n.Reminder != nil {
		d.Reminder = &ReminderDTO{
			Time:           timex.Time(n.Reminder.Time),
			IsEnabled:      n.Reminder.IsEnabled,
			RepeatInterval: n.Reminder.RepeatInterval.String(),
		}
	}
	return d
}

type noteService struct {
	repo      domain.NoteRepository
	scheduler alarm.Scheduler
	center    *notify.Center
	logger    *zap.Logger
	now       func() time.Time
}

// NewNoteService creates the note service.
func NewNoteService(repo domain.NoteRepository, scheduler alarm.Scheduler, center *notify.Center, lg *zap.Logger) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteService{
		repo:      repo,
		scheduler: scheduler,
		center:    center,
		logger:    lg,
		now:       time.Now,
	}
}

func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*NoteDTO, error) {
	now := s.now()
	note := &domain.Note{
		Title:     params.Title,
		Content:   params.Content,
		Labels:    params.Labels,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, err
	}
	note.ID = id

	s.logger.Info("note created", zap.Int64(logger.FieldNoteID, id))
	return toNoteDTO(note), nil
}

func (s *noteService) Update(ctx context.Context, id int64, params *dto.NoteUpdateRequest) (*NoteDTO, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.Title = params.Title
	note.Content = params.Content
	note.Labels = params.Labels
	note.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return toNoteDTO(note), nil
}

func (s *noteService) Get(ctx context.Context, id int64) (*NoteDTO, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return toNoteDTO(note), nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	// Cancel before the store mutation so a concurrent fire sees either
	// a live note or no registration; the handler's missing-note path
	// backstops the race where the fire wins.
	s.scheduler.Cancel(id)
	if s.center != nil {
		s.center.Dismiss(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("note deleted", zap.Int64(logger.FieldNoteID, id))
	return nil
}

func (s *noteService) List(ctx context.Context, page, pageSize int) ([]*NoteDTO, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	notes, total, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*NoteDTO, 0, len(notes))
	for _, n := range notes {
		dtos = append(dtos, toNoteDTO(n))
	}
	return dtos, int(total), nil
}

func (s *noteService) Search(ctx context.Context, query string) ([]*NoteDTO, error) {
	notes, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	dtos := make([]*NoteDTO, 0, len(notes))
	for _, n := range notes {
		dtos = append(dtos, toNoteDTO(n))
	}
	return dtos, nil
}

func (s *noteService) SetReminder(ctx context.Context, id int64, at time.Time, interval recurrence.Interval, enabled bool) (*NoteDTO, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.Reminder = &domain.Reminder{
		Time:           at,
		IsEnabled:      enabled,
		RepeatInterval: interval,
	}
	note.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if enabled {
		s.scheduler.Schedule(id, at)
	} else {
		s.scheduler.Cancel(id)
	}

	s.logger.Info("reminder set",
		zap.Int64(logger.FieldNoteID, id),
		zap.Time(logger.FieldFireAt, at),
		zap.String(logger.FieldInterval, interval.String()),
		zap.Bool("enabled", enabled))

	return toNoteDTO(note), nil
}

func (s *noteService) ClearReminder(ctx context.Context, id int64) error {
	// Same ordering as Delete: drop the registration first.
	s.scheduler.Cancel(id)
	if s.center != nil {
		s.center.Dismiss(id)
	}

	if err := s.repo.ClearReminder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("reminder cleared", zap.Int64(logger.FieldNoteID, id))
	return nil
}
