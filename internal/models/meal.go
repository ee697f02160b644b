package models

import (
	"time"

	"gorm.io/gorm"
)

// MealTiming is the slot a logged item belongs to.
type MealTiming string

const (
	TimingBreakfast MealTiming = "BREAKFAST"
	TimingLunch     MealTiming = "LUNCH"
	TimingDinner    MealTiming = "DINNER"
	TimingSnack     MealTiming = "SNACK"
)

// ValidTiming reports whether t is one of the four meal slots.
func ValidTiming(t MealTiming) bool {
	switch t {
	case TimingBreakfast, TimingLunch, TimingDinner, TimingSnack:
		return true
	}
	return false
}

// MealLogEntry stores one logged product with its nutrition snapshot for the
// consumed quantity. Snapshots are immutable once written; the day's
// DailyRecord is updated in the same transaction.
type MealLogEntry struct {
	gorm.Model
	UserID uint       `gorm:"index;not null" json:"user_id"`
	AteAt  time.Time  `gorm:"index;not null" json:"ate_at"`
	Timing MealTiming `gorm:"size:16;not null" json:"meal_timing"`

	Barcode       string  `gorm:"size:32" json:"barcode,omitempty"`
	ProductName   string  `gorm:"size:255;not null" json:"product_name"`
	Brand         string  `gorm:"size:255" json:"brand,omitempty"`
	QuantityGrams float64 `json:"quantity_grams"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
}

func (MealLogEntry) TableName() string {
	return "meal_log_entries"
}
