package api

import (
	"encoding/json"
	"time"

	"github.com/nutritrack/backend/internal/models"
)

// TargetsResponse is the user targets row with the restriction lists split
// back out of their stored form.
type TargetsResponse struct {
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

func toTargetsResponse(row *models.UserTargets) TargetsResponse {
	profile := row.ToProfile()
	return TargetsResponse{
		Calories: row.Calories,
		ProteinG: row.ProteinG,
		CarbsG:   row.CarbsG,
		FatG:     row.FatG,
		FiberG:   row.FiberG,
		SodiumMg: row.SodiumMg,
		SugarG:   row.SugarG,
		FluidsML: row.FluidsML,

		Allergens:          profile.Allergens,
		DietaryPreferences: profile.DietaryPreferences,
	}
}

// ScanHistoryEntry is one past scan with its stored product and analysis
// snapshots inlined.
type ScanHistoryEntry struct {
	ID                 string          `json:"id"`
	ScannedAt          time.Time       `json:"scanned_at"`
	Method             string          `json:"method"`
	Barcode            string          `json:"barcode,omitempty"`
	ProductName        string          `json:"product_name"`
	Brand              string          `json:"brand,omitempty"`
	Category           string          `json:"category,omitempty"`
	CompatibilityScore int             `json:"compatibility_score"`
	Product            json.RawMessage `json:"product,omitempty"`
	Analysis           json.RawMessage `json:"analysis,omitempty"`
}

func toScanHistoryEntry(row models.ScanHistory) ScanHistoryEntry {
	return ScanHistoryEntry{
		ID:                 row.ID.String(),
		ScannedAt:          row.ScannedAt,
		Method:             row.Method,
		Barcode:            row.Barcode,
		ProductName:        row.ProductName,
		Brand:              row.Brand,
		Category:           row.Category,
		CompatibilityScore: row.CompatibilityScore,
		Product:            json.RawMessage(row.ProductJSON),
		Analysis:           json.RawMessage(row.AnalysisJSON),
	}
}
