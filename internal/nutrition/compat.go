package nutrition

import (
	"fmt"
	"strings"

	"github.com/nutritrack/backend/internal/model"
)

// Nutrient keys used by the contribution and threshold tables.
type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientProtein  Nutrient = "protein"
	NutrientCarbs    Nutrient = "carbs"
	NutrientFat      Nutrient = "fat"
	NutrientFiber    Nutrient = "fiber"
	NutrientSugar    Nutrient = "sugar"
	NutrientSodium   Nutrient = "sodium"
)

// AnalysisConfig tunes the compatibility scoring. Thresholds are percentages
// of the daily target above which a nutrient raises an alert; penalties are
// score decrements per finding.
type AnalysisConfig struct {
	ContributionThresholds map[Nutrient]float64
	AlertPenalty           int
	AllergenPenalty        int
	PreferencePenalty      int
}

// DefaultAnalysisConfig mirrors the thresholds the scanner screen shipped
// with: a single portion flagging above 30% of daily calories, 50% of daily
// sodium, and so on.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		ContributionThresholds: map[Nutrient]float64{
			NutrientCalories: 30,
			NutrientSodium:   50,
			NutrientSugar:    40,
			NutrientFat:      50,
		},
		AlertPenalty:      15,
		AllergenPenalty:   30,
		PreferencePenalty: 20,
	}
}

// DailyContribution holds unclamped percentages of the user's daily targets
// consumed by the analyzed portion. Values may exceed 100; DisplayPercent
// clamps for bar rendering while alerting keeps the true value.
type DailyContribution struct {
	CaloriesPercent float64 `json:"calories_percent"`
	ProteinPercent  float64 `json:"protein_percent"`
	CarbsPercent    float64 `json:"carbs_percent"`
	FatPercent      float64 `json:"fat_percent"`
	FiberPercent    float64 `json:"fiber_percent"`
	SugarPercent    float64 `json:"sugar_percent"`
	SodiumPercent   float64 `json:"sodium_percent"`
}

// CompatibilityAnalysis is the scored verdict for a product against one user.
type CompatibilityAnalysis struct {
	CompatibilityScore int               `json:"compatibility_score"`
	DailyContribution  DailyContribution `json:"daily_contribution"`
	Alerts             []string          `json:"alerts"`
	Recommendations    []string          `json:"recommendations"`
	HealthAssessment   string            `json:"health_assessment"`
}

// DisplayPercent clamps an internal contribution percentage to the [0,100]
// bar range.
func DisplayPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// preferenceConflicts maps a dietary preference to ingredient keywords that
// violate it. Matching is substring-based over the lowercased ingredient list.
var preferenceConflicts = map[string][]string{
	"vegan":       {"milk", "cheese", "butter", "cream", "egg", "honey", "gelatin", "meat", "chicken", "beef", "pork", "fish", "whey", "casein"},
	"vegetarian":  {"meat", "chicken", "beef", "pork", "fish", "gelatin", "lard", "anchovy"},
	"gluten_free": {"wheat", "barley", "rye", "malt", "semolina", "spelt"},
	"dairy_free":  {"milk", "cheese", "butter", "cream", "whey", "casein", "lactose"},
	"kosher":      {"pork", "shellfish", "shrimp", "crab", "lobster"},
	"halal":       {"pork", "lard", "alcohol", "wine"},
}

// Analyze scores a portion of a scanned product against the user's daily
// targets and restrictions. It is a pure function: the same inputs always
// produce the same analysis, and a zero target yields a 0% contribution
// rather than a division error.
func Analyze(product model.ScannedProduct, quantityGrams float64, targets model.DailyTargets, profile model.UserProfile, cfg AnalysisConfig) CompatibilityAnalysis {
	per100 := product.Nutrition
	factor := quantityGrams / 100.0

	contrib := DailyContribution{
		CaloriesPercent: contribution(per100.Calories*factor, targets.Calories),
		ProteinPercent:  contribution(per100.Protein*factor, targets.ProteinG),
		CarbsPercent:    contribution(per100.Carbs*factor, targets.CarbsG),
		FatPercent:      contribution(per100.Fat*factor, targets.FatG),
		FiberPercent:    contribution(per100.Fiber*factor, targets.FiberG),
		SugarPercent:    contribution(per100.Sugar*factor, targets.SugarG),
		SodiumPercent:   contribution(per100.Sodium*factor, targets.SodiumMg),
	}

	alerts := []string{}
	appendAlert := func(n Nutrient, pct float64, label string) {
		limit, ok := cfg.ContributionThresholds[n]
		if !ok || limit <= 0 {
			return
		}
		// Threshold comparison uses the unclamped percentage on purpose:
		// a 150% portion must alert even though its bar caps at 100%.
		if pct > limit {
			alerts = append(alerts, fmt.Sprintf("High %s: this portion provides %.0f%% of your daily %s.", label, pct, label))
		}
	}
	appendAlert(NutrientCalories, contrib.CaloriesPercent, "calories")
	appendAlert(NutrientProtein, contrib.ProteinPercent, "protein")
	appendAlert(NutrientCarbs, contrib.CarbsPercent, "carbs")
	appendAlert(NutrientFat, contrib.FatPercent, "fat")
	appendAlert(NutrientFiber, contrib.FiberPercent, "fiber")
	appendAlert(NutrientSugar, contrib.SugarPercent, "sugar")
	appendAlert(NutrientSodium, contrib.SodiumPercent, "sodium")

	score := 100
	score -= cfg.AlertPenalty * len(alerts)

	for _, allergen := range matchedAllergens(product, profile.Allergens) {
		alerts = append(alerts, fmt.Sprintf("Contains %s, which is on your allergen list.", allergen))
		score -= cfg.AllergenPenalty
	}
	for _, pref := range conflictingPreferences(product, profile.DietaryPreferences) {
		alerts = append(alerts, fmt.Sprintf("Ingredients conflict with your %s preference.", prettyPreference(pref)))
		score -= cfg.PreferencePenalty
	}
	if score < 0 {
		score = 0
	}

	recs := recommendations(product, contrib)

	return CompatibilityAnalysis{
		CompatibilityScore: score,
		DailyContribution:  contrib,
		Alerts:             alerts,
		Recommendations:    recs,
		HealthAssessment:   healthAssessment(product.Name, score),
	}
}

// contribution returns the unclamped percentage of a daily target covered by
// amount. A zero or negative target reports 0 rather than dividing.
func contribution(amount, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return round2(amount / target * 100)
}

func matchedAllergens(product model.ScannedProduct, userAllergens []string) []string {
	out := []string{}
	for _, ua := range userAllergens {
		needle := strings.ToLower(strings.TrimSpace(ua))
		if needle == "" {
			continue
		}
		for _, pa := range product.Allergens {
			if strings.Contains(strings.ToLower(pa), needle) {
				out = append(out, ua)
				break
			}
		}
	}
	return out
}

func conflictingPreferences(product model.ScannedProduct, prefs []string) []string {
	joined := strings.ToLower(strings.Join(product.Ingredients, " "))
	out := []string{}
	for _, p := range prefs {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(p), "-", "_"))
		for _, kw := range preferenceConflicts[key] {
			if strings.Contains(joined, kw) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func recommendations(product model.ScannedProduct, contrib DailyContribution) []string {
	recs := []string{}
	n := product.Nutrition
	if n.Fiber >= 6 {
		recs = append(recs, "Good fiber density, supports a healthy dietary pattern.")
	}
	if n.Protein >= 15 && contrib.ProteinPercent > 0 {
		recs = append(recs, "Solid protein source for this portion size.")
	}
	if contrib.CaloriesPercent > 30 {
		recs = append(recs, "Consider a smaller portion or pairing with lower-calorie sides.")
	}
	if n.Sodium >= 400 {
		recs = append(recs, "Look for a lower-sodium alternative in the same category.")
	}
	if n.Sugar >= 10 {
		recs = append(recs, "High in sugars, better as an occasional treat than a staple.")
	}
	return recs
}

func healthAssessment(name string, score int) string {
	switch TierFor(score) {
	case TierGood:
		return fmt.Sprintf("%s fits your nutrition plan well.", name)
	case TierCaution:
		return fmt.Sprintf("%s is a reasonable fit, watch the flagged amounts.", name)
	case TierWarning:
		return fmt.Sprintf("%s only fits your plan in small portions.", name)
	default:
		return fmt.Sprintf("%s conflicts with your nutrition plan.", name)
	}
}

func prettyPreference(p string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), "_", "-")
}
