package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/config"
	"github.com/nutritrack/backend/internal/database"
	"github.com/nutritrack/backend/internal/models"
)

// Seeds one demo user with targets, two weeks of daily records and matching
// meal log entries, so the statistics screen has something to show in a fresh
// development environment.
func main() {
	userID := flag.Uint("user", 1, "User id to seed")
	days := flag.Int("days", 14, "Days of history to generate")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	targets := models.UserTargets{
		UserID:             uint(*userID),
		Calories:           2000,
		ProteinG:           100,
		CarbsG:             250,
		FatG:               70,
		FiberG:             30,
		SodiumMg:           2300,
		SugarG:             50,
		FluidsML:           2500,
		Allergens:          "peanuts",
		DietaryPreferences: "vegetarian",
	}
	if err := db.Where("user_id = ?", *userID).FirstOrCreate(&targets).Error; err != nil {
		log.Fatalf("Failed to seed targets: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()
	timings := []models.MealTiming{models.TimingBreakfast, models.TimingLunch, models.TimingDinner}

	for daysAgo := 0; daysAgo < *days; daysAgo++ {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -daysAgo)

		record := models.DailyRecord{
			UserID:   uint(*userID),
			Date:     day,
			Calories: 1700 + rng.Float64()*600,
			ProteinG: 70 + rng.Float64()*50,
			CarbsG:   180 + rng.Float64()*100,
			FatsG:    50 + rng.Float64()*30,
			FiberG:   20 + rng.Float64()*15,
			SodiumMg: 1500 + rng.Float64()*1200,
			SugarG:   30 + rng.Float64()*30,
			FluidsML: 1500 + rng.Float64()*1200,
		}
		if err := db.Where("user_id = ? AND date = ?", *userID, day).FirstOrCreate(&record).Error; err != nil {
			log.Fatalf("Failed to seed daily record: %v", err)
		}

		for i, timing := range timings {
			entry := models.MealLogEntry{
				UserID:        uint(*userID),
				AteAt:         day.Add(time.Duration(8+4*i) * time.Hour),
				Timing:        timing,
				ProductName:   "Demo meal",
				QuantityGrams: 300,
				Calories:      record.Calories / 3,
				ProteinG:      record.ProteinG / 3,
				CarbsG:        record.CarbsG / 3,
				FatsG:         record.FatsG / 3,
			}
			if err := db.Create(&entry).Error; err != nil {
				log.Fatalf("Failed to seed meal log entry: %v", err)
			}
		}
	}

	log.Printf("Seeded user %d with %d days of demo data", *userID, *days)
}
