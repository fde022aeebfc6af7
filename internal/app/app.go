package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/alarm"
	"github.com/AlirezaNezami96/note-reminder-service/internal/dao"
	"github.com/AlirezaNezami96/note-reminder-service/internal/metric"
	"github.com/AlirezaNezami96/note-reminder-service/internal/notify"
	"github.com/AlirezaNezami96/note-reminder-service/internal/service"
	pkgapp "github.com/AlirezaNezami96/note-reminder-service/pkg/app"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/logger"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/workerpool"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the application container. It owns every dependency and
// service; nothing in the process reaches for package-level state.
type App struct {
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	workerPool *workerpool.Pool
	registry   *prometheus.Registry
	Metrics    *metric.Metrics

	Alarms *alarm.Manager
	Notify *notify.Center

	NoteService     service.NoteService
	ReminderService service.ReminderService
}

// NewApp creates the application container and performs all wiring.
// cfg, lg and db are required.
func NewApp(cfg *AppConfig, lg *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if lg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: lg,
		DB:     db,
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, lg)

	a.registry = prometheus.NewRegistry()
	a.Metrics = metric.New(a.registry)

	a.Dao = dao.New(db, lg)

	sinks := []notify.Sink{notify.NewLogSink(lg)}
	if cfg.Notify.MailEnabled {
		sinks = append(sinks, notify.NewMailSink(cfg.GetMailConfig()))
	}
	a.Notify = notify.NewCenter(lg, sinks...)

	// Fires are handed off from the timer goroutine to the worker pool;
	// the delivery handler re-reads everything from the store by id.
	a.Alarms = alarm.NewManager(cfg.GetAlarmConfig(), lg, a.Metrics, a.dispatchWake)

	a.NoteService = service.NewNoteService(a.Dao, a.Alarms, a.Notify, lg)
	a.ReminderService = service.NewReminderService(
		a.Dao, a.Alarms, a.Notify, a.Metrics, lg, cfg.GetRecoveryHorizon())

	lg.Info("app container initialized",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Bool("exactAlarmsEnabled", cfg.Reminder.ExactAlarmsEnabled))

	return a, nil
}

// dispatchWake moves a fired alarm off the timer goroutine. A full pool
// drops the fire; the reconcile sweep re-arms it from the store.
func (a *App) dispatchWake(noteID int64) {
	err := a.workerPool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		a.ReminderService.HandleWake(ctx, noteID)
		return nil
	})
	if err != nil {
		a.logger.Error("wake dispatch rejected",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err))
	}
}

// Config returns the application configuration.
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Registry returns the prometheus registry for the /metrics endpoint.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Version returns build version information.
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout bounds Shutdown when no deadline is given.
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown releases resources in dependency order: alarms first so no
// new wakes are produced, then the worker pool, then the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("app container shutting down")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	var errs []error

	if a.Alarms != nil {
		a.Alarms.Close()
	}

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			errs = append(errs, fmt.Errorf("get sql.DB: %w", err))
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("app container shutdown completed")
	return nil
}
