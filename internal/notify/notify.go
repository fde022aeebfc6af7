// Package notify emits user-visible reminder notifications. The center
// tracks the active notification per note id so a repeated fire for the
// same note replaces the previous one instead of stacking.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/logger"

	"go.uber.org/zap"
)

// Notification is what a sink delivers to the user.
type Notification struct {
	NoteID   int64
	Title    string
	Body     string
	FiredAt  time.Time
	Replaces bool
}

// Sink delivers one notification over a concrete channel (log, mail...).
// Sinks must not panic; a failing sink only affects its own channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Center fans a notification out to all configured sinks, keyed by note
// id with replace semantics.
type Center struct {
	logger *zap.Logger
	sinks  []Sink

	mu     sync.Mutex
	active map[int64]Notification
}

func NewCenter(lg *zap.Logger, sinks ...Sink) *Center {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Center{
		logger: lg,
		sinks:  sinks,
		active: make(map[int64]Notification),
	}
}

// Notify emits a notification for the note. A previous active
// notification for the same id is replaced.
func (c *Center) Notify(ctx context.Context, note *domain.Note) {
	c.mu.Lock()
	_, replaces := c.active[note.ID]
	n := Notification{
		NoteID:   note.ID,
		Title:    note.Title,
		Body:     note.Content,
		FiredAt:  time.Now(),
		Replaces: replaces,
	}
	c.active[note.ID] = n
	c.mu.Unlock()

	for _, sink := range c.sinks {
		if err := sink.Send(ctx, n); err != nil {
			c.logger.Error("notification sink failed",
				zap.String("sink", sink.Name()),
				zap.Int64(logger.FieldNoteID, note.ID),
				zap.Error(err))
		}
	}
}

// Dismiss drops the active notification for a note id, if any.
func (c *Center) Dismiss(noteID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, noteID)
}

// Active returns the currently displayed notification for a note id.
func (c *Center) Active(noteID int64) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.active[noteID]
	return n, ok
}

// ActiveCount returns the number of distinct displayed notifications.
func (c *Center) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}

// LogSink writes notifications to the application log. Always enabled;
// it is the delivery channel of record when no external sink is set up.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(lg *zap.Logger) *LogSink {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &LogSink{logger: lg}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Send(_ context.Context, n Notification) error {
	s.logger.Info("reminder notification",
		zap.Int64(logger.FieldNoteID, n.NoteID),
		zap.String("title", n.Title),
		zap.Bool("replaces", n.Replaces))
	return nil
}
