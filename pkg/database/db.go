// Package database owns the GORM handle and the connection pool.
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ucqdev/cuahquick/config"
)

var DB *gorm.DB

// UniqueViolation reports a unique-constraint conflict without leaking
// driver-specific error codes to callers.
type UniqueViolation struct {
	Entity string
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("database: duplicate %s", e.Entity)
}

// AsUniqueViolation converts a write error into a typed *UniqueViolation.
// TranslateError is enabled on the gorm.Config, so every supported driver
// surfaces duplicates as gorm.ErrDuplicatedKey.
func AsUniqueViolation(err error, entity string) (error, bool) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &UniqueViolation{Entity: entity}, true
	}
	return err, false
}

// Connect opens the database and configures the connection pool.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect() error {
	driver := config.DatabaseDriver()
	dsn := config.DatabaseDSN()

	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return fmt.Errorf("database: build dialector: %w", err)
	}

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent), // use pkg/logger, not GORM's own
		TranslateError: true,
	}

	DB, err = gorm.Open(dialector, gormCfg)
	if err != nil {
		return fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxConns())
	sqlDB.SetMaxIdleConns(config.MaxConns() / 2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	return nil
}

// Close drains the pool; called during graceful shutdown.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql)", driver)
	}
}
