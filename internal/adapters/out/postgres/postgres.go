package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/easyconsult/consult-service/internal/config"
	"github.com/easyconsult/consult-service/internal/core/ports/out"
)

func Connect(cfg *config.Config, logger out.LoggerPort) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.IsLocal() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
	if err != nil {
		logger.Error("postgres.connect.failed", out.LogFields{
			"host":  cfg.Postgres.Host,
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("postgres.connected", out.LogFields{
		"host":     cfg.Postgres.Host,
		"database": cfg.Postgres.Database,
	})
	return db, nil
}

func Migrate(db *gorm.DB, logger out.LoggerPort) error {
	if err := db.AutoMigrate(&PatientEntity{}, &ProfessionalEntity{}, &ConsultEntity{}); err != nil {
		logger.Error("postgres.migrate.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
