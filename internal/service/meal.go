package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/types"
)

// MealService logs consumed products and maintains the per-day rollup the
// statistics screen reads.
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance.
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// AddToMealLog writes the log entry and folds the scaled amounts into the
// day's DailyRecord in one transaction.
func (s *MealService) AddToMealLog(ctx context.Context, userID uint, req types.AddToMealLogRequest) (*models.MealLogEntry, error) {
	timing := models.MealTiming(req.MealTiming)
	if !models.ValidTiming(timing) {
		return nil, fmt.Errorf("unknown meal timing %q", req.MealTiming)
	}
	if req.QuantityGrams <= 0 {
		return nil, fmt.Errorf("quantity_grams must be positive")
	}

	factor := req.QuantityGrams / 100.0
	entry := models.MealLogEntry{
		UserID:        userID,
		AteAt:         time.Now(),
		Timing:        timing,
		Barcode:       req.Barcode,
		ProductName:   req.ProductName,
		Brand:         req.Brand,
		QuantityGrams: req.QuantityGrams,
		Calories:      req.Nutrition.Calories * factor,
		ProteinG:      req.Nutrition.Protein * factor,
		CarbsG:        req.Nutrition.Carbs * factor,
		FatsG:         req.Nutrition.Fat * factor,
		FiberG:        req.Nutrition.Fiber * factor,
		SodiumMg:      req.Nutrition.Sodium * factor,
		SugarG:        req.Nutrition.Sugar * factor,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create meal log entry: %w", err)
		}
		return rollupDay(tx, userID, entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// rollupDay adds the entry's amounts into the user's record for that day,
// creating the row on first log.
func rollupDay(tx *gorm.DB, userID uint, entry models.MealLogEntry) error {
	day := time.Date(entry.AteAt.Year(), entry.AteAt.Month(), entry.AteAt.Day(), 0, 0, 0, 0, entry.AteAt.Location())

	record := models.DailyRecord{UserID: userID, Date: day}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return fmt.Errorf("ensure daily record: %w", err)
	}

	updates := map[string]any{
		"calories":  gorm.Expr("calories + ?", entry.Calories),
		"protein_g": gorm.Expr("protein_g + ?", entry.ProteinG),
		"carbs_g":   gorm.Expr("carbs_g + ?", entry.CarbsG),
		"fats_g":    gorm.Expr("fats_g + ?", entry.FatsG),
		"fiber_g":   gorm.Expr("fiber_g + ?", entry.FiberG),
		"sodium_mg": gorm.Expr("sodium_mg + ?", entry.SodiumMg),
		"sugar_g":   gorm.Expr("sugar_g + ?", entry.SugarG),
	}
	if err := tx.Model(&models.DailyRecord{}).
		Where("user_id = ? AND date = ?", userID, day).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("update daily rollup: %w", err)
	}
	return nil
}
