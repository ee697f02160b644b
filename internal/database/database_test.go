package database

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateAndHealthCheck(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	for _, table := range []string{"daily_records", "meal_log_entries", "scan_history", "user_targets", "menus", "menu_meals"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table %q after migration", table)
		}
	}

	if err := HealthCheck(context.Background(), db); err != nil {
		t.Errorf("health check failed: %v", err)
	}
}
