package model

import "time"

// DailyRecord is one calendar day of logged nutrition. Fields are zero when
// nothing was logged for that day; a zero field still participates in
// averaging.
type DailyRecord struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatsG    float64   `json:"fats_g"`
	FiberG   float64   `json:"fiber_g"`
	SodiumMg float64   `json:"sodium_mg"`
	SugarG   float64   `json:"sugar_g"`
	FluidsML float64   `json:"fluids_ml"`
}

// DailyTargets holds a user's daily nutrition targets. A zero target means
// "unset" and contribution math reports 0% for that nutrient.
type DailyTargets struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
	FluidsML float64 `json:"fluids_ml"`
}

// Achievement is a progress entry surfaced on the statistics screen.
// Progress never exceeds MaxProgress at the source; display clamping of the
// ratio is the aggregation layer's concern.
type Achievement struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
	MaxProgress float64 `json:"max_progress"`
}
