package database

import (
	"time"

	"github.com/anjiri1684/workhub/models"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the relational store that holds the report ledger.
func ConnectDB(dsn string, logger *log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:              false,
		SkipDefaultTransaction:   true,
		DisableNestedTransaction: true,
		TranslateError:           true,
		Logger:                   newGormLogger(logger),
	})
	if err != nil {
		return nil, errors.Wrap(err, "database.ConnectDB")
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Report{},
		&models.ReportReceiver{},
	)
	if err != nil {
		return errors.Wrap(err, "database.Migrate")
	}
	return nil
}

func newGormLogger(logger *log.Logger) gormlogger.Interface {
	if logger == nil {
		return gormlogger.Discard
	}
	std := logger.With("component", "gorm").StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel})
	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
