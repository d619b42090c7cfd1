package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	memoryDSN = ":memory:"
)

type GormConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Silent       bool
}

func getLogger(silent bool) logger.Interface {
	if silent {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

// sqliteDSN appends the connection pragmas every pooled connection needs.
func sqliteDSN(path string) string {
	if path == memoryDSN {
		return path
	}
	pragmas := "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas
}

func configureConnectionPool(db *gorm.DB, cfg GormConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// An in-memory database lives as long as its single connection.
	if cfg.Driver == DriverSQLite && cfg.DSN == memoryDSN {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return nil
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

func NewGormDB(cfg GormConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		cfg.Driver = DriverSQLite
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: getLogger(cfg.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, cfg); err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// NewInMemory opens a private SQLite database, mostly for tests and throwaway tooling.
func NewInMemory() (*gorm.DB, error) {
	return NewGormDB(GormConfig{Driver: DriverSQLite, DSN: memoryDSN, Silent: true})
}
