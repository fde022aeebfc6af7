package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/AlirezaNezami96/note-reminder-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	sent []Notification
	err  error
}

func (s *captureSink) Name() string { return "capture" }

func (s *captureSink) Send(_ context.Context, n Notification) error {
	s.sent = append(s.sent, n)
	return s.err
}

func TestCenter_NotifyReplacesPerNoteID(t *testing.T) {
	sink := &captureSink{}
	c := NewCenter(nil, sink)

	note := &domain.Note{ID: 9, Title: "water plants", Content: "balcony"}

	c.Notify(context.Background(), note)
	c.Notify(context.Background(), note)

	assert.Equal(t, 1, c.ActiveCount(), "same note id replaces, never stacks")
	require.Len(t, sink.sent, 2)
	assert.False(t, sink.sent[0].Replaces)
	assert.True(t, sink.sent[1].Replaces)

	active, ok := c.Active(9)
	require.True(t, ok)
	assert.Equal(t, "water plants", active.Title)
}

func TestCenter_DistinctNotesStack(t *testing.T) {
	c := NewCenter(nil, &captureSink{})

	c.Notify(context.Background(), &domain.Note{ID: 1, Title: "a"})
	c.Notify(context.Background(), &domain.Note{ID: 2, Title: "b"})

	assert.Equal(t, 2, c.ActiveCount())
}

func TestCenter_Dismiss(t *testing.T) {
	c := NewCenter(nil, &captureSink{})

	c.Notify(context.Background(), &domain.Note{ID: 3, Title: "x"})
	c.Dismiss(3)

	_, ok := c.Active(3)
	assert.False(t, ok)
}

func TestCenter_SinkFailureIsIsolated(t *testing.T) {
	failing := &captureSink{err: errors.New("smtp down")}
	healthy := &captureSink{}
	c := NewCenter(nil, failing, healthy)

	c.Notify(context.Background(), &domain.Note{ID: 4, Title: "y"})

	assert.Len(t, healthy.sent, 1, "a failing sink must not block the others")
	assert.Equal(t, 1, c.ActiveCount())
}
