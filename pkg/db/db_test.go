package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"

	"github.com/velumpress/cms/pkg/config"
)

func TestConnect_RequiresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://ignored")

	_, err := Connect(Config{})
	assert.EqualError(t, err, "database_url is not configured (set DATABASE_URL)")
}

func TestFromCMSConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseURL = "postgres://cms@db/cms"
	cfg.LogLevel = config.LogLevelDebug

	assert.Equal(t, Config{URL: "postgres://cms@db/cms", LogLevel: "debug"}, FromCMSConfig(cfg))
}

func TestLogMode(t *testing.T) {
	assert.Equal(t, logger.Info, logMode(config.LogLevelDebug))
	assert.Equal(t, logger.Silent, logMode(config.LogLevelInfo))
	assert.Equal(t, logger.Silent, logMode(""))
}
