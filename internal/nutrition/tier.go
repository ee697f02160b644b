package nutrition

// Tier is the severity classification of a compatibility score.
type Tier string

const (
	TierGood     Tier = "good"
	TierCaution  Tier = "caution"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

// TierFor classifies a 0-100 score. Boundaries are inclusive on the upper
// side: 80 is good, 79 is caution. Color and icon selection both go through
// this one function so the two can never disagree.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierGood
	case score >= 60:
		return TierCaution
	case score >= 40:
		return TierWarning
	default:
		return TierCritical
	}
}

// CompatibilityColor maps a score to the hex color the scanner screen shows.
func CompatibilityColor(score int) string {
	switch TierFor(score) {
	case TierGood:
		return "#4CAF50"
	case TierCaution:
		return "#FFC107"
	case TierWarning:
		return "#FF9800"
	default:
		return "#F44336"
	}
}

// CompatibilityIcon maps a score to the icon name the scanner screen shows.
func CompatibilityIcon(score int) string {
	switch TierFor(score) {
	case TierGood:
		return "checkmark-circle"
	case TierCaution:
		return "alert-circle"
	case TierWarning:
		return "warning"
	default:
		return "close-circle"
	}
}
