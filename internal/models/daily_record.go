package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/model"
)

// DailyRecord is the per-user, per-day nutrition rollup. Rows are maintained
// by the meal log: every logged item folds its amounts into the matching day.
type DailyRecord struct {
	gorm.Model
	UserID uint      `gorm:"index:idx_daily_user_date,unique;not null" json:"user_id"`
	Date   time.Time `gorm:"index:idx_daily_user_date,unique;not null" json:"date"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
	FluidsML float64 `json:"fluids_ml"`
}

func (DailyRecord) TableName() string {
	return "daily_records"
}

// ToValue converts the row into the immutable value the computation core
// consumes.
func (r DailyRecord) ToValue() model.DailyRecord {
	return model.DailyRecord{
		Date:     r.Date,
		Calories: r.Calories,
		ProteinG: r.ProteinG,
		CarbsG:   r.CarbsG,
		FatsG:    r.FatsG,
		FiberG:   r.FiberG,
		SodiumMg: r.SodiumMg,
		SugarG:   r.SugarG,
		FluidsML: r.FluidsML,
	}
}
