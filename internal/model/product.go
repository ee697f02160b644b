package model

// NutritionPer100G is the normalized nutrition facts panel of a product,
// per 100 grams. All amounts are non-negative.
type NutritionPer100G struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
	Sugar    float64 `json:"sugar,omitempty"`
	Sodium   float64 `json:"sodium,omitempty"`
}

// ScannedProduct is an immutable snapshot of a product resolved from a
// barcode or image scan.
type ScannedProduct struct {
	Barcode     string           `json:"barcode,omitempty"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand,omitempty"`
	Category    string           `json:"category"`
	Nutrition   NutritionPer100G `json:"nutrition_per_100g"`
	Ingredients []string         `json:"ingredients"`
	Allergens   []string         `json:"allergens"`
	HealthScore *int             `json:"health_score,omitempty"`
}

// UserProfile carries the restriction side of a user's settings, used when
// scoring a product against the user.
type UserProfile struct {
	Allergens          []string `json:"allergens"`
	DietaryPreferences []string `json:"dietary_preferences"`
}
