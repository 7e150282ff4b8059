package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the PostgreSQL pool described by s.
func ConnectDB(s *Settings, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(s.DBURL), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(s.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(s.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(s.DBConnMaxLifetime)

	log.WithFields(logrus.Fields{
		"max_idle": s.DBMaxIdleConns,
		"max_open": s.DBMaxOpenConns,
	}).Info("database connected")
	return db, nil
}
