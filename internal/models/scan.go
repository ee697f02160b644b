package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanHistory records one resolved scan together with the analysis shown to
// the user at scan time.
type ScanHistory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	ScannedAt time.Time      `gorm:"index;not null" json:"scanned_at"`
	Method    string         `gorm:"size:16;not null" json:"method"` // barcode|image
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Barcode     string `gorm:"size:32" json:"barcode,omitempty"`
	ProductName string `gorm:"size:255;not null" json:"product_name"`
	Brand       string `gorm:"size:255" json:"brand,omitempty"`
	Category    string `gorm:"size:100" json:"category"`

	CompatibilityScore int `json:"compatibility_score"`

	// Snapshots of the product and analysis as JSON, kept verbatim so the
	// history screen can re-render old scans after scoring rules change.
	ProductJSON  string `gorm:"type:text" json:"-"`
	AnalysisJSON string `gorm:"type:text" json:"-"`
}

func (ScanHistory) TableName() string {
	return "scan_history"
}

func (s *ScanHistory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
