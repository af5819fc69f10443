package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	createEnum("user_role", "admin", "manager", "driver"),
	createEnum("trip_status", "pending", "completed", "cancelled"),
	createEnum("payout_status", "pending", "approved", "rejected", "paid"),
	createEnum("vehicle_status", "active", "maintenance", "inactive"),
	createEnum("fuel_record_type", "refuel", "distribution", "transfer"),
	createEnum("maintenance_status", "scheduled", "in_progress", "completed", "cancelled"),
	createEnum("checklist_status", "pending", "completed", "failed"),
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE,
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		profile_image_url TEXT,
		role user_role NOT NULL DEFAULT 'driver',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL UNIQUE REFERENCES users(id),
		employee_id VARCHAR(64) NOT NULL UNIQUE,
		phone_number VARCHAR(32),
		address TEXT,
		license_number VARCHAR(64) UNIQUE,
		license_expiry_date TIMESTAMPTZ,
		date_of_birth TIMESTAMPTZ,
		emergency_contact VARCHAR(255),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		registration_number VARCHAR(32) NOT NULL UNIQUE,
		make VARCHAR(128) NOT NULL,
		model VARCHAR(128) NOT NULL,
		year INTEGER,
		capacity INTEGER,
		fuel_type VARCHAR(32),
		insurance_number VARCHAR(64),
		insurance_expiry_date TIMESTAMPTZ,
		permit_number VARCHAR(64),
		permit_expiry_date TIMESTAMPTZ,
		status vehicle_status NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		unassigned_at TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_driver_id ON assignments (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_vehicle_id ON assignments (vehicle_id);`,
	// Backs the one-active-assignment-per-driver rule.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_assignments_active_driver ON assignments (driver_id) WHERE is_active;`,
	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		pickup_location TEXT NOT NULL,
		drop_location TEXT NOT NULL,
		distance NUMERIC(10,2),
		revenue NUMERIC(10,2) NOT NULL,
		start_time TIMESTAMPTZ,
		end_time TIMESTAMPTZ,
		status trip_status NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_driver_id ON trips (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips (created_at);`,
	`CREATE TABLE IF NOT EXISTS payouts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		trip_id UUID NOT NULL UNIQUE REFERENCES trips(id),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		revenue NUMERIC(10,2) NOT NULL,
		calculated_amount NUMERIC(10,2) NOT NULL,
		approved_amount NUMERIC(10,2),
		status payout_status NOT NULL DEFAULT 'pending',
		approved_by UUID REFERENCES users(id),
		approved_at TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payouts_driver_id ON payouts (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_payouts_status ON payouts (status);`,
	`CREATE TABLE IF NOT EXISTS incidents (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		trip_id UUID REFERENCES trips(id),
		driver_id UUID REFERENCES drivers(id),
		vehicle_id UUID REFERENCES vehicles(id),
		incident_type VARCHAR(64) NOT NULL,
		description TEXT NOT NULL,
		damage_amount NUMERIC(10,2),
		reported_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMPTZ,
		is_resolved BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		entity_id UUID NOT NULL,
		entity_type VARCHAR(32) NOT NULL,
		document_type VARCHAR(64) NOT NULL,
		file_name VARCHAR(255) NOT NULL,
		file_path TEXT NOT NULL,
		file_size BIGINT,
		content_type VARCHAR(128),
		uploaded_by UUID REFERENCES users(id),
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expiry_date TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_entity ON documents (entity_type, entity_id);`,
	`CREATE TABLE IF NOT EXISTS fuel_stations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		location TEXT NOT NULL,
		contact_person VARCHAR(255),
		phone VARCHAR(32),
		contract_details TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS fuel_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		fuel_station_id UUID REFERENCES fuel_stations(id),
		record_type fuel_record_type NOT NULL,
		fuel_type VARCHAR(32) NOT NULL,
		quantity NUMERIC(10,2) NOT NULL,
		price_per_liter NUMERIC(10,2) NOT NULL,
		total_cost NUMERIC(10,2) NOT NULL,
		odometer_reading INTEGER,
		receipt_number VARCHAR(64),
		notes TEXT,
		refuel_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_records_vehicle_id ON fuel_records (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_records_driver_id ON fuel_records (driver_id);`,
	`CREATE TABLE IF NOT EXISTS driver_checklists (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		driver_id UUID NOT NULL REFERENCES drivers(id),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		checklist_type VARCHAR(32) NOT NULL,
		status checklist_status NOT NULL DEFAULT 'pending',
		completed_at TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS checklist_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		checklist_id UUID NOT NULL REFERENCES driver_checklists(id),
		item_name VARCHAR(255) NOT NULL,
		item_category VARCHAR(32) NOT NULL,
		is_checked BOOLEAN NOT NULL DEFAULT FALSE,
		condition VARCHAR(32),
		quantity INTEGER,
		notes TEXT,
		image_url TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist_id ON checklist_items (checklist_id);`,
	`CREATE TABLE IF NOT EXISTS maintenance_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		maintenance_type VARCHAR(32) NOT NULL,
		description TEXT NOT NULL,
		status maintenance_status NOT NULL DEFAULT 'scheduled',
		scheduled_date TIMESTAMPTZ,
		completed_date TIMESTAMPTZ,
		cost NUMERIC(10,2),
		service_provider VARCHAR(255),
		odometer_reading INTEGER,
		next_service_due TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS maintenance_tasks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		maintenance_record_id UUID NOT NULL REFERENCES maintenance_records(id),
		task_name VARCHAR(255) NOT NULL,
		description TEXT,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		assigned_to VARCHAR(255),
		completed_by VARCHAR(255),
		estimated_duration INTEGER,
		actual_duration INTEGER,
		parts_used TEXT,
		cost NUMERIC(10,2)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_tasks_record_id ON maintenance_tasks (maintenance_record_id);`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		item_name VARCHAR(255) NOT NULL,
		item_code VARCHAR(64) UNIQUE,
		category VARCHAR(32) NOT NULL,
		current_stock INTEGER NOT NULL DEFAULT 0,
		minimum_stock INTEGER NOT NULL DEFAULT 0,
		max_stock INTEGER,
		unit_price NUMERIC(10,2),
		location VARCHAR(255),
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	updatedAtTrigger("users"),
	updatedAtTrigger("drivers"),
	updatedAtTrigger("vehicles"),
	updatedAtTrigger("trips"),
	updatedAtTrigger("payouts"),
	updatedAtTrigger("fuel_stations"),
	updatedAtTrigger("maintenance_records"),
	updatedAtTrigger("inventory_items"),
}

func createEnum(name string, values ...string) string {
	quoted := ""
	for i, v := range values {
		if i > 0 {
			quoted += ", "
		}
		quoted += "'" + v + "'"
	}
	return fmt.Sprintf(`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = '%s') THEN
			CREATE TYPE %s AS ENUM (%s);
		END IF;
	END
	$$;`, name, name, quoted)
}

func updatedAtTrigger(table string) string {
	return fmt.Sprintf(`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_%s_updated_at') THEN
			CREATE TRIGGER trg_%s_updated_at
				BEFORE UPDATE ON %s
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`, table, table, table)
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
