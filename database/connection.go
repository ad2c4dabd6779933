// Package database provides persistence for the GTM portfolio service.
//
// All application reads and writes go through GORM against PostgreSQL. A
// separate database/sql connection (lib/pq) exists solely for the seeder,
// which bulk-loads metric history with COPY.
//
// Data models live in the models_pkg package; this package re-exports them as
// type aliases so callers can write database.Brand, database.Metric, etc.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver for the raw COPY path
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "gtm-portfolio/database/models_pkg"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance. It is the central connection point for all
// repository operations.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes the database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenRaw opens a plain database/sql connection via lib/pq. The seeder uses
// it for pq.CopyIn bulk inserts, which GORM has no equivalent for.
func OpenRaw(host string, port int, dbname, user, password string) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// ============================================================================
// Type Aliases
// ============================================================================

// Core data models - type aliases so callers don't import models_pkg directly.
type Brand = models.Brand
type Metric = models.Metric
type Visionary = models.Visionary
type Priority = models.Priority
type Contact = models.Contact
type Decision = models.Decision
type Alert = models.Alert
type Milestone = models.Milestone
type Budget = models.Budget
type Note = models.Note
type User = models.User
