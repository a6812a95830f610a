package main

import (
	"fmt"
	"time"

	"github.com/fadilmartias/connect-matching/internal/config"
	applogger "github.com/fadilmartias/connect-matching/internal/logger"
	"github.com/fadilmartias/connect-matching/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(zl *zap.Logger) (*gorm.DB, error) {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		Logger: applogger.NewGorm(zl, appConfig.LogDebug),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{"uuid-ossp", "vector"} {
		if err := db.Exec(fmt.Sprintf(`CREATE EXTENSION IF NOT EXISTS "%s"`, ext)).Error; err != nil {
			return nil, fmt.Errorf("create extension %s: %w", ext, err)
		}
	}

	err = db.AutoMigrate(
		&model.Candidate{},
		&model.CandidateSkill{},
		&model.CandidateExperience{},
		&model.CandidateEducation{},
		&model.CandidateCertification{},
		&model.CandidateBadge{},
		&model.CandidateTestResult{},
		&model.JobOffer{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	zl.Info("database ready", zap.String("host", dbConfig.Host), zap.String("name", dbConfig.Name))
	return db, nil
}
