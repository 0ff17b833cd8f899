package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"erp-console/internal/models"
)

const maxAttempts = 10

var retryDelay = 2 * time.Second

// Open connects to the console database, retrying while postgres starts up,
// and migrates the audit table.
func Open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		log.Info().Int("attempt", i).Int("of", maxAttempts).Msg("connecting to console database")

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			break
		}

		log.Warn().Err(err).Msg("console database not reachable yet")
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to console database after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Msg("console database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
