package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/types"
)

// TargetsService reads and writes the user's daily targets and restrictions.
type TargetsService struct {
	db *gorm.DB
}

// NewTargetsService creates a new TargetsService instance.
func NewTargetsService(db *gorm.DB) *TargetsService {
	return &TargetsService{db: db}
}

// Get returns the user's targets row, or a fresh zero row when none is set.
func (s *TargetsService) Get(ctx context.Context, userID uint) (*models.UserTargets, error) {
	var row models.UserTargets
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserTargets{UserID: userID}, nil
		}
		return nil, fmt.Errorf("fetch targets: %w", err)
	}
	return &row, nil
}

// Update upserts the user's targets.
func (s *TargetsService) Update(ctx context.Context, userID uint, req types.UpdateTargetsRequest) (*models.UserTargets, error) {
	row, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	row.Calories = req.Calories
	row.ProteinG = req.ProteinG
	row.CarbsG = req.CarbsG
	row.FatG = req.FatG
	row.FiberG = req.FiberG
	row.SodiumMg = req.SodiumMg
	row.SugarG = req.SugarG
	row.FluidsML = req.FluidsML
	row.Allergens = models.JoinList(req.Allergens)
	row.DietaryPreferences = models.JoinList(req.DietaryPreferences)

	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, fmt.Errorf("save targets: %w", err)
	}
	return row, nil
}
