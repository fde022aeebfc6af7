package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTask struct {
	name       string
	interval   time.Duration
	startupRun bool
	runs       atomic.Int64
}

func (t *countingTask) Name() string                { return t.name }
func (t *countingTask) LoopInterval() time.Duration { return t.interval }
func (t *countingTask) IsStartupRun() bool          { return t.startupRun }

func (t *countingTask) Run(context.Context) error {
	t.runs.Add(1)
	return nil
}

func TestScheduler_StartupRunExecutesOnce(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(nil, sc)

	task := &countingTask{name: "once", startupRun: true}
	s.AddTask(task)
	s.Start()

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())

	assert.Equal(t, int64(1), task.runs.Load())
}

func TestScheduler_LoopTaskStopsOnCloseSignal(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(nil, sc)

	task := &countingTask{name: "loop", interval: 10 * time.Millisecond}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool {
		return task.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestNewReconcileTask_EmptySpecDisables(t *testing.T) {
	task, err := NewReconcileTask(nil, "", nil)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestNewReconcileTask_InvalidSpec(t *testing.T) {
	_, err := NewReconcileTask(nil, "not a cron expr", nil)
	assert.Error(t, err)
}

func TestNewReconcileTask_ValidSpec(t *testing.T) {
	task, err := NewReconcileTask(nil, "*/15 * * * *", nil)
	require.NoError(t, err)
	require.NotNil(t, task)

	at := time.Date(2024, 1, 15, 10, 3, 0, 0, time.UTC)
	next := task.Schedule().Next(at)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 15, 0, 0, time.UTC), next)
}
