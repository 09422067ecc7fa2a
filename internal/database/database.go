package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("🔌 Connecting to Postgres...")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('owner', 'staff')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create trucks table
		`CREATE TABLE IF NOT EXISTS trucks (
			id TEXT PRIMARY KEY,
			number TEXT NOT NULL,
			model TEXT,
			capacity DOUBLE PRECISION,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create drivers table
		`CREATE TABLE IF NOT EXISTS drivers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			license TEXT,
			photo TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create customers table
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT,
			is_temporary BOOLEAN NOT NULL DEFAULT FALSE,
			village TEXT,
			company_name TEXT,
			is_starred BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create trips table. driver_wages and total_diesel_cost are
		// overrides: NULL means "fall back to summing the trip's loads",
		// zero is a valid explicit value.
		`CREATE TABLE IF NOT EXISTS trips (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			driver_id TEXT NOT NULL DEFAULT '',
			truck_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK(status IN ('Planned', 'In Progress', 'Completed', 'Cancelled')),
			start_location TEXT NOT NULL DEFAULT '',
			end_location TEXT NOT NULL DEFAULT '',
			stops JSONB NOT NULL DEFAULT '[]',
			total_diesel_litres DOUBLE PRECISION,
			total_diesel_cost DOUBLE PRECISION,
			driver_wages DOUBLE PRECISION,
			driver_advance DOUBLE PRECISION,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create loads table. Reference columns hold '' for "unassigned";
		// trip_id NULL marks a standalone load. Payment trails, expense
		// lines, cargo parts and photos live in JSONB columns.
		`CREATE TABLE IF NOT EXISTS loads (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL DEFAULT '',
			driver_id TEXT NOT NULL DEFAULT '',
			truck_id TEXT NOT NULL DEFAULT '',
			trip_id TEXT REFERENCES trips(id),
			pickup_location TEXT NOT NULL DEFAULT '',
			delivery_location TEXT NOT NULL DEFAULT '',
			pickup_datetime BIGINT NOT NULL,
			delivery_datetime BIGINT,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			customer_advance DOUBLE PRECISION NOT NULL DEFAULT 0,
			customer_advance_payment_method TEXT,
			customer_payments JSONB NOT NULL DEFAULT '[]',
			driver_wages DOUBLE PRECISION NOT NULL DEFAULT 0,
			diesel_price DOUBLE PRECISION,
			driver_advance DOUBLE PRECISION,
			driver_advance_payment_method TEXT,
			fastag_charges DOUBLE PRECISION,
			other_expenses JSONB NOT NULL DEFAULT '[]',
			driver_payments JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL CHECK(status IN ('Active', 'Completed', 'Cancelled')),
			parts JSONB NOT NULL DEFAULT '[]',
			notes TEXT,
			photos JSONB NOT NULL DEFAULT '[]',
			tag TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create material trading tables
		`CREATE TABLE IF NOT EXISTS material_entries (
			id TEXT PRIMARY KEY,
			material_name TEXT NOT NULL,
			date BIGINT NOT NULL,
			units DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			supplier TEXT,
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		`CREATE TABLE IF NOT EXISTS material_sales (
			id TEXT PRIMARY KEY,
			material_entry_id TEXT NOT NULL REFERENCES material_entries(id),
			customer_id TEXT NOT NULL DEFAULT '',
			date BIGINT NOT NULL,
			units_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
			sale_price_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_sale_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			amount_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
			payments JSONB NOT NULL DEFAULT '[]',
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_customer_id ON loads(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_driver_id ON loads(driver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_trip_id ON loads(trip_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_status ON loads(status)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_pickup_datetime ON loads(pickup_datetime)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_driver_id ON trips(driver_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trips_truck_id ON trips(truck_id)`,
		`CREATE INDEX IF NOT EXISTS idx_material_sales_entry_id ON material_sales(material_entry_id)`,
		`CREATE INDEX IF NOT EXISTS idx_material_sales_customer_id ON material_sales(customer_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("✓ Database migrations completed")
	return nil
}
