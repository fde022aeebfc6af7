// Package app provides the application container that owns every
// dependency and service of the process.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/alarm"
	"github.com/AlirezaNezami96/note-reminder-service/internal/dao"
	"github.com/AlirezaNezami96/note-reminder-service/internal/notify"
	"github.com/AlirezaNezami96/note-reminder-service/pkg/workerpool"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig application configuration
type AppConfig struct {
	File     string         `yaml:"-"` // config file path, not serialized
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Reminder ReminderConfig `yaml:"reminder"`
	Notify   NotifyConfig   `yaml:"notify"`
	App      AppSettings    `yaml:"app"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	// RunMode run mode: debug / release
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP listen address
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout read timeout in seconds
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout write timeout in seconds
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// LogConfig logging configuration
type LogConfig struct {
	// Level log level, see zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File log file path, empty logs to stderr only
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production enables JSON output
	Production bool `yaml:"production" default:"false"`
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	// Type database type: sqlite / mysql
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite database file path
	Path string `yaml:"path" default:"storage/database/notes.sqlite3"`
	// UserName user name (mysql)
	UserName string `yaml:"username"`
	// Password password (mysql)
	Password string `yaml:"password"`
	// Host host (mysql)
	Host string `yaml:"host"`
	// Name database name (mysql)
	Name string `yaml:"name"`
	// TablePrefix table name prefix
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate run schema migration on startup
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// MaxIdleConns maximum idle connections, default 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns maximum open connections, default 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime maximum connection lifetime, e.g. 30m / 1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
}

// ReminderConfig reminder engine configuration
type ReminderConfig struct {
	// ExactAlarmsEnabled simulates the platform exact-alarm permission.
	// When false, scheduling degrades per InexactFallback.
	ExactAlarmsEnabled bool `yaml:"exact-alarms-enabled" default:"true"`
	// InexactFallback arms a coarse best-effort timer when exact alarms
	// are denied. When false, denied schedules are skipped entirely.
	InexactFallback bool `yaml:"inexact-fallback" default:"true"`
	// InexactGranularity rounding step for fallback timers
	InexactGranularity string `yaml:"inexact-granularity" default:"15m"`
	// RecoveryHorizon bounds the pending-reminder scan on boot recovery
	RecoveryHorizon string `yaml:"recovery-horizon" default:"87600h"`
	// ReconcileCron five-field cron expression for the reconcile sweep;
	// empty disables the sweep
	ReconcileCron string `yaml:"reconcile-cron" default:"*/15 * * * *"`
}

// NotifyConfig notification sink configuration
type NotifyConfig struct {
	// MailEnabled adds the SMTP sink alongside the log sink
	MailEnabled  bool   `yaml:"mail-enabled" default:"false"`
	MailHost     string `yaml:"mail-host"`
	MailPort     int    `yaml:"mail-port" default:"587"`
	MailUsername string `yaml:"mail-username"`
	MailPassword string `yaml:"mail-password"`
	MailFrom     string `yaml:"mail-from"`
	MailTo       string `yaml:"mail-to"`
}

// AppSettings application settings
type AppSettings struct {
	// DefaultPageSize default page size
	DefaultPageSize int `yaml:"default-page-size" default:"10"`
	// MaxPageSize maximum page size
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout request context timeout in seconds
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// Worker pool settings
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"32"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"256"`
}

// LoadConfig loads the configuration from file.
// Returns the config instance and the absolute path of the file.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// Defaults are applied before unmarshal only: yaml.Unmarshal leaves
	// absent keys untouched, and a second defaults pass afterwards would
	// clobber an explicit `false` on default-true toggles such as
	// reminder.exact-alarms-enabled.
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetWorkerPoolConfig builds the worker pool configuration.
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}

	return cfg
}

// GetDatabaseConfig builds the dao configuration.
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: parseDuration(c.Database.ConnMaxLifetime, 30*time.Minute),
		RunMode:         c.Server.RunMode,
	}
}

// GetAlarmConfig builds the alarm manager configuration.
func (c *AppConfig) GetAlarmConfig() alarm.Config {
	return alarm.Config{
		ExactAlarmsEnabled: c.Reminder.ExactAlarmsEnabled,
		InexactFallback:    c.Reminder.InexactFallback,
		InexactGranularity: parseDuration(c.Reminder.InexactGranularity, 15*time.Minute),
	}
}

// GetMailConfig builds the SMTP sink configuration.
func (c *AppConfig) GetMailConfig() notify.MailConfig {
	return notify.MailConfig{
		Host:     c.Notify.MailHost,
		Port:     c.Notify.MailPort,
		Username: c.Notify.MailUsername,
		Password: c.Notify.MailPassword,
		From:     c.Notify.MailFrom,
		To:       c.Notify.MailTo,
	}
}

// GetRecoveryHorizon returns the boot recovery scan horizon.
func (c *AppConfig) GetRecoveryHorizon() time.Duration {
	return parseDuration(c.Reminder.RecoveryHorizon, 10*365*24*time.Hour)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
