package database

import (
	"fmt"

	"github.com/lshigami/examhub/config"
	"github.com/lshigami/examhub/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	gormLogLevel := logger.Warn
	if cfg.Server.GinMode == "debug" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("Database connection established")
	return db, nil
}

// AutoMigrate creates or updates every table of the application.
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.ClassStudent{},
		&model.Exam{},
		&model.ClassExam{},
		&model.Question{},
		&model.StudentAnswer{},
		&model.Grade{},
		&model.Message{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
