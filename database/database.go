// Package database opens the gorm connection used by the development API
// server and manages its schema migrations.
package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds database connection configuration.
type Config struct {
	Driver string

	// Path is the sqlite file, or ":memory:".
	Path string

	Host     string
	Port     int
	User     string
	Password string
	Database string

	MaxOpenConns int
	MaxIdleConns int

	// LogQueries enables gorm's SQL logging.
	LogQueries bool
}

// DSN returns the driver-specific data source name for cfg.
func (c Config) DSN() (string, error) {
	switch strings.ToLower(c.Driver) {
	case DriverSQLite, "":
		if c.Path == "" {
			return "", fmt.Errorf("sqlite path is required")
		}
		return c.Path, nil
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Database), nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
}

// Connect opens a gorm connection for cfg.
func Connect(cfg Config) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.LogQueries {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName(cfg.Driver), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if driverName(cfg.Driver) == DriverSQLite && (maxOpen == 0 || cfg.Path == ":memory:") {
		// Every connection to ":memory:" is its own database.
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	return db, nil
}

func driverName(driver string) string {
	if driver == "" {
		return DriverSQLite
	}
	return strings.ToLower(driver)
}
