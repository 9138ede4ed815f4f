package infra

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agentsville/internal/models/db_models"
)

// InitPostgresql opens dsn, enables pgvector and migrates the run table.
func InitPostgresql(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := connectionPool.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("error enabling pgvector: %w", err)
	}
	if err := connectionPool.AutoMigrate(&db_models.ItineraryRun{}); err != nil {
		return nil, fmt.Errorf("error migrating itinerary runs: %w", err)
	}

	logger.Info("PostgreSQL connected")
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("Error closing database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}
