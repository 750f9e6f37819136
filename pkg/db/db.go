package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/velumpress/cms/pkg/config"
)

// Config holds database connection configuration
type Config struct {
	// URL is the postgres connection URL
	URL string
	// LogLevel follows config.CMSConfig.LogLevel
	LogLevel string
	// MaxOpenConns caps the pool; zero leaves the driver default
	MaxOpenConns int
}

// FromCMSConfig takes the connection settings out of the server configuration
func FromCMSConfig(cfg *config.CMSConfig) Config {
	return Config{URL: cfg.DatabaseURL, LogLevel: cfg.LogLevel}
}

// Connect opens the postgres database backing users and pending changes
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database_url is not configured (set DATABASE_URL)")
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logMode(cfg.LogLevel)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to configure connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	return db, nil
}

// logMode keeps gorm quiet unless debug logging was asked for
func logMode(level string) logger.LogLevel {
	if level == config.LogLevelDebug {
		return logger.Info
	}
	return logger.Silent
}
