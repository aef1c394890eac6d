package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	config "github.com/cramerservices/plans-api/api/config"
)

var db *sql.DB

// Initialize connects to Postgres and verifies the connection
func Initialize() error {
	var err error
	dsn := poolerSafeDSN(config.AppConfig.DatabaseURL)
	db, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	// Verify connection
	err = db.Ping()
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// The hosted pooler runs in transaction mode; keep the pool tiny so
	// server-side prepared statements never straddle pooled connections.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return nil
}

// poolerSafeDSN appends disable_prepared_statements=true and binary_parameters=yes
// to the DSN if not present. lib/pq server-side prepared statements break behind
// transaction-pooling proxies (PgBouncer / Supavisor).
func poolerSafeDSN(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "disable_prepared_statements=") || strings.Contains(lower, "prefer_simple_protocol=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	extras := []string{"disable_prepared_statements=true"}
	if !strings.Contains(lower, "binary_parameters=") {
		extras = append(extras, "binary_parameters=yes")
	}
	return dsn + sep + strings.Join(extras, "&")
}

// GetDB returns the database connection
func GetDB() *sql.DB {
	return db
}

// SetDB allows tests to inject a stub connection (e.g., sqlmock).
func SetDB(d *sql.DB) {
	db = d
}
