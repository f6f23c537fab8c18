/*
 * Database Adapter
 *
 * This package is responsible for establishing and configuring the connection
 * to the PostgreSQL database using GORM. It includes connection pooling settings
 * for performance and resilience and handles schema auto-migration.
 */
package db

import (
	"fmt"
	"log"
	"time"

	"github.com/arborly/matchkeep/internal/core/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options is the subset of config the adapter needs to open a connection,
// kept separate from internal/infra/config so this package never imports
// cobra/viper.
type Options struct {
	DSN     string
	Verbose bool
}

// InitializeDatabase configures and returns a GORM DB instance.
func InitializeDatabase(opts Options) (*gorm.DB, error) {
	logLevel := logger.Silent
	if opts.Verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(opts.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure Connection Pool for performance and stability
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)           // Max number of connections in the idle connection pool
	sqlDB.SetMaxOpenConns(100)          // Max number of open connections to the database
	sqlDB.SetConnMaxLifetime(time.Hour) // Max amount of time a connection may be reused

	// AutoMigrate the schema. In a real-world production environment, a more robust
	// migration tool like GORM's migrator or an external tool (e.g., migrate, goose) is recommended.
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Game{},
		&domain.GamePlayer{},
		&domain.Tournament{},
		&domain.TournamentPlayer{},
	); err != nil {
		return nil, fmt.Errorf("database schema migration failed: %w", err)
	}
	log.Println("INFO: Database schema migration completed successfully.")

	return db, nil
}
