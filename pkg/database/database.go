// Path: pkg/database/database.go
package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Transaction is one settled money movement in the ledger table.
type Transaction struct {
	ID            string    `gorm:"primaryKey"`
	FromAccountID *int      `gorm:"index"`
	ToAccountID   *int      `gorm:"index"`
	Amount        string    `gorm:"type:text;not null"`
	Type          string    `gorm:"not null"`
	Status        string    `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
}

// InitDB opens the database for driver and creates tables if they don't exist.
func InitDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// Every new connection to ":memory:" is a fresh, empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// createTables creates the necessary tables in the database.
func createTables(db *gorm.DB) error {
	err := db.AutoMigrate(&Transaction{})
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	return nil
}
