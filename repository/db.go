// repository/db.go
package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

var db *sql.DB

// schema holds the bill store tables. These run on startup so tables
// exist before the first request. Parent tables come first because of
// the foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    bill_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    date TEXT,
    time TEXT,
    category TEXT,
    tax_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    service_charge_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    subtotal_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    tax_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    service_charge_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    rounding_adj DOUBLE PRECISION NOT NULL DEFAULT 0,
    nett_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    paid_by TEXT,
    split_method TEXT NOT NULL DEFAULT 'not_set',
    notes TEXT
);

CREATE TABLE IF NOT EXISTS bill_items (
    bill_id TEXT NOT NULL REFERENCES bills(bill_id) ON DELETE CASCADE,
    item_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    tax_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    nett_price DOUBLE PRECISION NOT NULL DEFAULT 0,
    quantity INTEGER NOT NULL,
    rounding_adj DOUBLE PRECISION NOT NULL DEFAULT 0,
    error_diff DOUBLE PRECISION NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    PRIMARY KEY (bill_id, item_id)
);

CREATE TABLE IF NOT EXISTS bill_participants (
    bill_id TEXT NOT NULL REFERENCES bills(bill_id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    total_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    PRIMARY KEY (bill_id, email)
);

CREATE TABLE IF NOT EXISTS participant_shares (
    bill_id TEXT NOT NULL,
    email TEXT NOT NULL,
    item_id INTEGER NOT NULL,
    value DOUBLE PRECISION NOT NULL,
    percentage DOUBLE PRECISION NOT NULL,
    split_type TEXT NOT NULL,
    original_price DOUBLE PRECISION NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (bill_id, email) REFERENCES bill_participants(bill_id, email) ON DELETE CASCADE
);
`

// InitDB initializes the database connection
func InitDB() error {
	// Get database connection details from environment variables
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbname := getEnvOrDefault("DB_NAME", "billsplit")

	// Create connection string
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// Connect to database
	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	// Test the connection
	err = db.Ping()
	if err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	// Ensure tables exist
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %v", err)
	}

	log.Println("Successfully connected to the database")
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if db != nil {
		db.Close()
	}
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	return db
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
