package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu is a generated multi-day meal plan.
type Menu struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Days      int            `gorm:"not null" json:"days"`
	StartedAt *time.Time     `json:"started_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Meals []MenuMeal `gorm:"foreignKey:MenuID" json:"meals"`
}

func (Menu) TableName() string {
	return "menus"
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MenuMeal is one meal inside a generated menu.
type MenuMeal struct {
	gorm.Model
	MenuID uuid.UUID `gorm:"type:uuid;index;not null" json:"menu_id"`

	DayIndex int    `gorm:"not null" json:"day_index"` // 0-based day within the plan
	Slot     string `gorm:"size:32;not null" json:"slot"`
	Name     string `gorm:"size:255;not null" json:"name"`

	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`

	// Ingredients as a comma-separated list; generation output is flat text.
	Ingredients string `gorm:"type:text" json:"ingredients"`
	Leftover    bool   `json:"leftover"`
}

func (MenuMeal) TableName() string {
	return "menu_meals"
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList normalizes a string list into the comma-separated storage form.
func JoinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(strings.ToLower(it)); it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, ",")
}
