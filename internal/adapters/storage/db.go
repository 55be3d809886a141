package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		club_id TEXT,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS zone (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		secretary_name TEXT NOT NULL DEFAULT '',
		secretary_email TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS club (
		id TEXT PRIMARY KEY,
		zone_id TEXT NOT NULL,
		name TEXT NOT NULL,
		contact_email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (zone_id) REFERENCES zone(id)
	);

	CREATE TABLE IF NOT EXISTS event_type (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		club_id TEXT,
		zone_id TEXT,
		name TEXT NOT NULL,
		event_type TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		coordinator_name TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT,
		source TEXT NOT NULL,
		import_batch_id TEXT,
		created_by TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_event_start_date ON event(start_date);
	CREATE INDEX IF NOT EXISTS idx_event_import_batch ON event(import_batch_id);

	CREATE TABLE IF NOT EXISTS event_request (
		id TEXT PRIMARY KEY,
		club_id TEXT NOT NULL,
		name TEXT NOT NULL,
		event_type TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		coordinator_name TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT,
		status TEXT NOT NULL,
		reject_reason TEXT NOT NULL DEFAULT '',
		submitted_by TEXT,
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS import_batch (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		file_size INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		events TEXT NOT NULL,
		imported_event_ids TEXT NOT NULL DEFAULT '[]',
		total_events INTEGER NOT NULL DEFAULT 0,
		matched_clubs INTEGER NOT NULL DEFAULT 0,
		unmatched_clubs INTEGER NOT NULL DEFAULT 0,
		multi_day_events INTEGER NOT NULL DEFAULT 0,
		validation_errors INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		created_by TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS email (
		id TEXT PRIMARY KEY,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		sender_id TEXT NOT NULL,
		template_id TEXT,
		status TEXT NOT NULL,
		queued_at TEXT,
		sent_at TEXT,
		created_at TEXT NOT NULL,
		provider_message_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS email_recipient (
		email_id TEXT NOT NULL,
		club_id TEXT NOT NULL,
		club_name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,
		PRIMARY KEY (email_id, club_id),
		FOREIGN KEY (email_id) REFERENCES email(id)
	);

	CREATE TABLE IF NOT EXISTS email_template (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		created_by TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS booking (
		id TEXT PRIMARY KEY,
		equipment_id TEXT NOT NULL,
		club_id TEXT NOT NULL,
		event_id TEXT,
		contact_name TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (equipment_id) REFERENCES equipment(id),
		FOREIGN KEY (club_id) REFERENCES club(id)
	);
	CREATE INDEX IF NOT EXISTS idx_booking_equipment_start ON booking(equipment_id, start_date);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
