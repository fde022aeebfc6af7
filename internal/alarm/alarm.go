// Package alarm wraps the process-level exact-alarm facility: one-shot
// wall-clock timers keyed by note id. Registrations are ephemeral by
// contract; they do not survive a process restart and are rebuilt by
// boot recovery, never treated as the source of truth.
package alarm

import (
	"sync"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/metric"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/logger"

	"go.uber.org/zap"
)

// Scheduler is the alarm surface the delivery handler and boot recovery
// depend on. Schedule is an idempotent upsert keyed by note id.
type Scheduler interface {
	Schedule(noteID int64, fireAt time.Time)
	Cancel(noteID int64)
	IsScheduled(noteID int64) bool
}

// WakeFunc receives the fired note id. It runs on the timer goroutine
// and must hand off quickly; the id is the only context delivered, and
// everything else is re-read from the store by the handler.
type WakeFunc func(noteID int64)

// Config alarm manager configuration
type Config struct {
	// ExactAlarmsEnabled simulates the platform exact-alarm permission.
	// When false, Schedule degrades per InexactFallback.
	ExactAlarmsEnabled bool
	// InexactFallback arms a coarse best-effort timer on denial.
	InexactFallback bool
	// InexactGranularity rounding step for fallback timers, default 15m.
	InexactGranularity time.Duration
}

type registration struct {
	fireAt time.Time
	timer  *time.Timer
	exact  bool
}

// Manager owns all alarm registrations. It is constructed once at
// process start and passed by handle to its consumers.
type Manager struct {
	config  Config
	logger  *zap.Logger
	metrics *metric.Metrics
	onWake  WakeFunc

	mu     sync.Mutex
	timers map[int64]*registration
	closed bool
}

// NewManager creates the alarm manager. onWake is required; it is
// invoked with the note id whenever a registration fires.
func NewManager(cfg Config, lg *zap.Logger, metrics *metric.Metrics, onWake WakeFunc) *Manager {
	if lg == nil {
		lg = zap.NewNop()
	}
	if metrics == nil {
		metrics = metric.New(nil)
	}
	if cfg.InexactGranularity <= 0 {
		cfg.InexactGranularity = 15 * time.Minute
	}

	return &Manager{
		config:  cfg,
		logger:  lg,
		metrics: metrics,
		onWake:  onWake,
		timers:  make(map[int64]*registration),
	}
}

// Schedule arms a wake-up for the note at fireAt, replacing any prior
// registration for the same id. Permission denial is a silent degraded
// mode: it is logged and counted, never returned as an error.
func (m *Manager) Schedule(noteID int64, fireAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	if prev, ok := m.timers[noteID]; ok {
		prev.timer.Stop()
		delete(m.timers, noteID)
	}

	exact := true
	if !m.config.ExactAlarmsEnabled {
		m.metrics.AlarmsDenied.Inc()
		if !m.config.InexactFallback {
			m.logger.Warn("exact alarm permission denied, scheduling skipped",
				zap.Int64(logger.FieldNoteID, noteID),
				zap.Time(logger.FieldFireAt, fireAt))
			return
		}
		m.logger.Warn("exact alarm permission denied, falling back to inexact timer",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Time(logger.FieldFireAt, fireAt),
			zap.Duration("granularity", m.config.InexactGranularity))
		fireAt = fireAt.Truncate(m.config.InexactGranularity).Add(m.config.InexactGranularity)
		exact = false
	}

	reg := &registration{fireAt: fireAt, exact: exact}

	delay := time.Until(fireAt)
	if delay < 0 {
		// Overdue registrations (boot recovery after downtime) fire
		// immediately instead of being dropped.
		delay = 0
	}

	reg.timer = time.AfterFunc(delay, func() {
		m.fire(noteID, reg)
	})
	m.timers[noteID] = reg
	m.metrics.AlarmsScheduled.Inc()

	m.logger.Debug("alarm scheduled",
		zap.Int64(logger.FieldNoteID, noteID),
		zap.Time(logger.FieldFireAt, fireAt),
		zap.Bool("exact", exact))
}

// fire runs on the timer goroutine. The registration identity check
// drops timers that lost the race against a concurrent replace/cancel.
func (m *Manager) fire(noteID int64, reg *registration) {
	m.mu.Lock()
	current, ok := m.timers[noteID]
	if !ok || current != reg {
		m.mu.Unlock()
		return
	}
	delete(m.timers, noteID)
	closed := m.closed
	m.mu.Unlock()

	if closed {
		return
	}

	m.metrics.AlarmsFired.Inc()
	m.onWake(noteID)
}

// Cancel removes the registration for noteID; no-op when none exists.
func (m *Manager) Cancel(noteID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reg, ok := m.timers[noteID]; ok {
		reg.timer.Stop()
		delete(m.timers, noteID)
		m.metrics.AlarmsCancelled.Inc()
		m.logger.Debug("alarm cancelled", zap.Int64(logger.FieldNoteID, noteID))
	}
}

// IsScheduled reports whether a registration currently exists for noteID.
func (m *Manager) IsScheduled(noteID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[noteID]
	return ok
}

// ScheduledAt returns the armed fire instant for noteID, if any.
func (m *Manager) ScheduledAt(noteID int64) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reg, ok := m.timers[noteID]; ok {
		return reg.fireAt, true
	}
	return time.Time{}, false
}

// PendingCount returns the number of armed registrations.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Close stops all timers. Subsequent Schedule calls are ignored.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	for id, reg := range m.timers {
		reg.timer.Stop()
		delete(m.timers, id)
	}
}
