package postgres

import (
	"fmt"

	"fleetdispatch/internal/adapters/out/postgres/auditrepo"
	"fleetdispatch/internal/adapters/out/postgres/parcelrepo"
	"fleetdispatch/internal/adapters/out/postgres/routerepo"
	"fleetdispatch/internal/adapters/out/postgres/truckrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. TranslateError is enabled so duplicate keys
// surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the dispatch store needs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&routerepo.RouteDTO{},
		&truckrepo.TruckDTO{},
		&parcelrepo.ParcelDTO{},
		&auditrepo.AlertDTO{},
		&auditrepo.WorkflowDTO{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
