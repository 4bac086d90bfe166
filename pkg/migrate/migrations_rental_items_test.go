package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRentalItemsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_rental_items_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no rental items migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE item_category AS ENUM",
		"CREATE TYPE price_unit AS ENUM",
		"CREATE TYPE item_availability AS ENUM",
		"CREATE TYPE item_condition AS ENUM",
		"CREATE TABLE IF NOT EXISTS rental_items",
		"version bigint NOT NULL DEFAULT 0",
		"CHECK (price_amount_cents > 0)",
		"CREATE INDEX IF NOT EXISTS idx_rental_items_category_availability",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// availability and the embedded rental columns must move together
	if !strings.Contains(content, "availability = 'unavailable' AND current_customer_id IS NOT NULL") {
		t.Error("missing availability consistency check")
	}
}

func TestBehaviorMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_customer_behaviors.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no customer behaviors migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE customer_standing AS ENUM",
		"CREATE TYPE strike_reason AS ENUM",
		"CREATE TYPE strike_severity AS ENUM",
		"CREATE TABLE IF NOT EXISTS customer_behaviors",
		"CREATE TABLE IF NOT EXISTS strikes",
		"FOREIGN KEY (customer_id) REFERENCES customer_behaviors(customer_id) ON DELETE CASCADE",
		"CHECK (total_strikes >= 0)",
		"idx_strikes_unresolved_severe",
		"DROP TABLE IF EXISTS strikes",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
