package models

import (
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/model"
)

// UserTargets holds a user's daily nutrition targets and restrictions.
// Zero-valued targets are treated as "unset" by contribution math.
type UserTargets struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
	FluidsML float64 `json:"fluids_ml"`

	// Comma-separated lists, normalized lowercase on write.
	Allergens          string `gorm:"type:text" json:"allergens"`
	DietaryPreferences string `gorm:"type:text" json:"dietary_preferences"`
}

func (UserTargets) TableName() string {
	return "user_targets"
}

// ToTargets converts the row into the value type the computation core uses.
func (t UserTargets) ToTargets() model.DailyTargets {
	return model.DailyTargets{
		Calories: t.Calories,
		ProteinG: t.ProteinG,
		CarbsG:   t.CarbsG,
		FatG:     t.FatG,
		FiberG:   t.FiberG,
		SodiumMg: t.SodiumMg,
		SugarG:   t.SugarG,
		FluidsML: t.FluidsML,
	}
}

// ToProfile extracts the restriction lists.
func (t UserTargets) ToProfile() model.UserProfile {
	return model.UserProfile{
		Allergens:          splitList(t.Allergens),
		DietaryPreferences: splitList(t.DietaryPreferences),
	}
}
