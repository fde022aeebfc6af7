// Package dao implements the note repository over gorm.
package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlirezaNezami96/note-reminder-service/internal/model"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig database connection configuration
type DatabaseConfig struct {
	// Type database type: sqlite / mysql
	Type string
	// Path SQLite database file path
	Path string
	// UserName user name (mysql)
	UserName string
	// Password password (mysql)
	Password string
	// Host host (mysql)
	Host string
	// Name database name (mysql)
	Name string
	// TablePrefix table name prefix
	TablePrefix string
	// AutoMigrate run schema migration on startup
	AutoMigrate bool
	// MaxIdleConns maximum idle connections, default 10
	MaxIdleConns int
	// MaxOpenConns maximum open connections, default 100
	MaxOpenConns int
	// ConnMaxLifetime maximum connection lifetime
	ConnMaxLifetime time.Duration
	// RunMode enables query logging in debug mode
	RunMode string
}

type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a Dao over an established gorm connection.
func New(db *gorm.DB, lg *zap.Logger) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{db: db, logger: lg}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// NewDBEngine opens the database connection described by c and applies
// pool settings and migrations.
func NewDBEngine(c DatabaseConfig) (*gorm.DB, error) {
	dialector := buildDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type %q", c.Type)
	}

	logMode := logger.Silent
	if c.RunMode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open database failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, pkgerrors.Wrap(err, "auto migrate failed")
		}
	}

	return db, nil
}

func buildDialector(c DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
		))
	case "sqlite":
		if dir := filepath.Dir(c.Path); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
