package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after InitDB.
var expectedTables = []string{
	"account",
	"booking",
	"club",
	"email",
	"email_recipient",
	"email_template",
	"equipment",
	"event",
	"event_request",
	"event_type",
	"import_batch",
	"outbox",
	"zone",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if i >= len(tables) {
			t.Errorf("missing table: %s", want)
			continue
		}
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables after second run, want %d", len(tables), len(expectedTables))
	}
}

// TestInitDB_DataSurvival verifies that existing data survives a re-run.
func TestInitDB_DataSurvival(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO zone (id, name, created_at) VALUES ('z1', 'Northern Zone', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test zone: %v", err)
	}
	_, err = db.Exec(`INSERT INTO club (id, zone_id, name, status, created_at) VALUES ('c1', 'z1', 'Springfield Pony Club', 'active', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test club: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT name FROM club WHERE id = 'c1'").Scan(&name); err != nil {
		t.Fatalf("club data lost after re-run: %v", err)
	}
	if name != "Springfield Pony Club" {
		t.Errorf("club name = %q, want %q", name, "Springfield Pony Club")
	}
}

// TestInitDB_ForeignKeys verifies foreign key enforcement is on.
func TestInitDB_ForeignKeys(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("failed to read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	// Inserting a club with an unknown zone must fail.
	_, err := db.Exec(`INSERT INTO club (id, zone_id, name, status, created_at) VALUES ('c1', 'missing', 'Orphan Club', 'active', '2026-01-01T00:00:00Z')`)
	if err == nil {
		t.Error("expected foreign key violation inserting club with unknown zone, got nil")
	}
}
