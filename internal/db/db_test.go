package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/Ferxas/chris-hotel-web-app/config"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
)

func TestInit_SQLiteMigratesAllCollections(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	}

	gormDB, err := Init(cfg)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	for _, table := range []string{
		model.CollectionRooms,
		model.CollectionProblemReports,
		model.CollectionCleaningLogs,
		model.CollectionMaintenanceLogs,
		model.CollectionDevices,
	} {
		assert.True(t, gormDB.Migrator().HasTable(table), "table %s should exist", table)
	}
}

func TestDialectorFor_Errors(t *testing.T) {
	_, err := dialectorFor(&config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err, "empty DSN must be rejected")

	_, err = dialectorFor(&config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("INFO"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
