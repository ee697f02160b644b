package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/model"
	"github.com/nutritrack/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.DailyRecord{},
		&models.MealLogEntry{},
		&models.ScanHistory{},
		&models.UserTargets{},
		&models.Menu{},
		&models.MenuMeal{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

func seedTargets(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	row := models.UserTargets{
		UserID:             userID,
		Calories:           2000,
		ProteinG:           100,
		CarbsG:             250,
		FatG:               70,
		SodiumMg:           2300,
		SugarG:             50,
		Allergens:          "milk",
		DietaryPreferences: "vegan",
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to seed targets: %v", err)
	}
}

func seedDailyRecord(t *testing.T, db *gorm.DB, userID uint, daysAgo int, calories float64) {
	t.Helper()
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -daysAgo)
	row := models.DailyRecord{
		UserID:   userID,
		Date:     day,
		Calories: calories,
		ProteinG: 80,
		CarbsG:   200,
		FatsG:    60,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("Failed to seed daily record: %v", err)
	}
}

// fakeLookup implements ProductLookup without the network.
type fakeLookup struct {
	product model.ScannedProduct
	err     error
	calls   int
}

func (f *fakeLookup) LookupBarcode(ctx context.Context, barcode string) (model.ScannedProduct, error) {
	f.calls++
	if f.err != nil {
		return model.ScannedProduct{}, f.err
	}
	p := f.product
	p.Barcode = barcode
	return p, nil
}

func (f *fakeLookup) SearchByName(ctx context.Context, query string) (model.ScannedProduct, error) {
	f.calls++
	return f.product, f.err
}

// fakeDetector implements LabelDetector.
type fakeDetector struct {
	label string
	err   error
}

func (f *fakeDetector) DetectProductLabel(ctx context.Context, image []byte) (string, error) {
	return f.label, f.err
}

// fakeGenerator implements MenuGenerator.
type fakeGenerator struct {
	plan       *GeneratedPlan
	err        error
	lastPrompt string
}

func (f *fakeGenerator) GenerateMenuPlan(ctx context.Context, prompt string) (*GeneratedPlan, error) {
	f.lastPrompt = prompt
	return f.plan, f.err
}
