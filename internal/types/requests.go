package types

import (
	"fmt"
	"strings"

	"github.com/nutritrack/backend/internal/model"
)

// Allowed enums for menu generation.
const (
	MealsThreeMain          = "3_main"
	MealsThreePlusTwoSnacks = "3_plus_2_snacks"
	MealsTwoPlusOneMid      = "2_plus_1_intermediate"
)

// GenerateMenuRequest is the configuration for one menu generation call.
// It is sent once per request and never persisted as-is.
type GenerateMenuRequest struct {
	Days                int      `json:"days" binding:"required"`
	MealsPerDay         string   `json:"mealsPerDay" binding:"required"`
	MealChangeFrequency string   `json:"mealChangeFrequency"`
	IncludeLeftovers    bool     `json:"includeLeftovers"`
	SameMealTimes       bool     `json:"sameMealTimes"`
	TargetCalories      float64  `json:"targetCalories,omitempty"`
	DietaryPreferences  []string `json:"dietaryPreferences,omitempty"`
	ExcludedIngredients []string `json:"excludedIngredients,omitempty"`
	Budget              float64  `json:"budget,omitempty"`
}

// Validate checks the enum and range constraints at the module boundary.
func (r GenerateMenuRequest) Validate() error {
	switch r.Days {
	case 3, 7, 14:
	default:
		return fmt.Errorf("days must be 3, 7 or 14, got %d", r.Days)
	}
	switch r.MealsPerDay {
	case MealsThreeMain, MealsThreePlusTwoSnacks, MealsTwoPlusOneMid:
	default:
		return fmt.Errorf("unknown mealsPerDay %q", r.MealsPerDay)
	}
	if r.TargetCalories < 0 {
		return fmt.Errorf("targetCalories must not be negative")
	}
	if r.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	return nil
}

// Slots returns the meal slot names implied by MealsPerDay.
func (r GenerateMenuRequest) Slots() []string {
	switch r.MealsPerDay {
	case MealsThreePlusTwoSnacks:
		return []string{"breakfast", "morning_snack", "lunch", "afternoon_snack", "dinner"}
	case MealsTwoPlusOneMid:
		return []string{"breakfast", "intermediate", "dinner"}
	default:
		return []string{"breakfast", "lunch", "dinner"}
	}
}

// GenerateCustomMenuRequest extends generation with a free-text request.
type GenerateCustomMenuRequest struct {
	GenerateMenuRequest
	CustomRequest string `json:"customRequest" binding:"required"`
}

// Validate checks the base constraints plus the custom text.
func (r GenerateCustomMenuRequest) Validate() error {
	if err := r.GenerateMenuRequest.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.CustomRequest) == "" {
		return fmt.Errorf("customRequest must not be empty")
	}
	return nil
}

// ScanBarcodeRequest is the body for barcode scans.
type ScanBarcodeRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// ScanImageRequest is the body for image scans.
type ScanImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// AddToMealLogRequest logs a quantity of a scanned product into a meal slot.
// Nutrition is the product's per-100g panel; the service scales it by the
// consumed quantity.
type AddToMealLogRequest struct {
	ProductName   string                 `json:"product_name" binding:"required"`
	Barcode       string                 `json:"barcode"`
	Brand         string                 `json:"brand"`
	QuantityGrams float64                `json:"quantity_grams" binding:"required"`
	MealTiming    string                 `json:"meal_timing" binding:"required"`
	Nutrition     model.NutritionPer100G `json:"nutrition_per_100g"`
}

// UpdateTargetsRequest replaces the user's daily targets and restrictions.
type UpdateTargetsRequest struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMg float64 `json:"sodium_mg"`
	SugarG   float64 `json:"sugar_g"`
	FluidsML float64 `json:"fluids_ml"`

	Allergens          []string `json:"allergens"`
	DietaryPreferences []string `json:"dietary_preferences"`
}
