package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/types"
)

// ErrMenuNotFound is returned when a menu id does not exist for the user.
var ErrMenuNotFound = errors.New("menu not found")

// ErrPlanGeneration marks failures of the generation backend, as opposed to
// an invalid request.
var ErrPlanGeneration = errors.New("menu plan generation failed")

// MenuService generates and manages recommended menus.
type MenuService struct {
	db        *gorm.DB
	generator MenuGenerator
}

// NewMenuService creates a new MenuService instance.
func NewMenuService(db *gorm.DB, generator MenuGenerator) *MenuService {
	return &MenuService{db: db, generator: generator}
}

// Generate validates the request, asks the generator for a plan and persists
// it for the user.
func (s *MenuService) Generate(ctx context.Context, userID uint, req types.GenerateMenuRequest) (*models.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, userID, req, "")
}

// GenerateCustom is Generate with an extra free-text instruction.
func (s *MenuService) GenerateCustom(ctx context.Context, userID uint, req types.GenerateCustomMenuRequest) (*models.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, userID, req.GenerateMenuRequest, req.CustomRequest)
}

// StartToday marks the menu as started now.
func (s *MenuService) StartToday(ctx context.Context, userID uint, menuID uuid.UUID) error {
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&models.Menu{}).
		Where("id = ? AND user_id = ?", menuID, userID).
		Update("started_at", &now)
	if res.Error != nil {
		return fmt.Errorf("start menu: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMenuNotFound
	}
	return nil
}

// Get loads one menu with its meals.
func (s *MenuService) Get(ctx context.Context, userID uint, menuID uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	if err := s.db.WithContext(ctx).
		Preload("Meals").
		Where("id = ? AND user_id = ?", menuID, userID).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	return &menu, nil
}

func (s *MenuService) generate(ctx context.Context, userID uint, req types.GenerateMenuRequest, custom string) (*models.Menu, error) {
	plan, err := s.generator.GenerateMenuPlan(ctx, buildMenuPrompt(req, custom))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanGeneration, err)
	}

	title := strings.TrimSpace(plan.Title)
	if title == "" {
		title = fmt.Sprintf("%d-day menu", req.Days)
	}
	menu := models.Menu{
		UserID: userID,
		Title:  title,
		Days:   req.Days,
	}
	for _, meal := range plan.Meals {
		if meal.DayIndex < 0 || meal.DayIndex >= req.Days {
			continue // out-of-plan days from the generator are dropped
		}
		menu.Meals = append(menu.Meals, models.MenuMeal{
			DayIndex:    meal.DayIndex,
			Slot:        meal.Slot,
			Name:        meal.Name,
			Calories:    meal.Calories,
			ProteinG:    meal.ProteinG,
			CarbsG:      meal.CarbsG,
			FatsG:       meal.FatsG,
			Ingredients: strings.Join(meal.Ingredients, ", "),
			Leftover:    meal.Leftover,
		})
	}
	if len(menu.Meals) == 0 {
		return nil, fmt.Errorf("%w: plan had no usable meals", ErrPlanGeneration)
	}

	if err := s.db.WithContext(ctx).Create(&menu).Error; err != nil {
		return nil, fmt.Errorf("save menu: %w", err)
	}
	return &menu, nil
}

func buildMenuPrompt(req types.GenerateMenuRequest, custom string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan %d days of meals with slots: %s.\n", req.Days, strings.Join(req.Slots(), ", "))
	if req.TargetCalories > 0 {
		fmt.Fprintf(&sb, "Target roughly %.0f kcal per day.\n", req.TargetCalories)
	}
	if len(req.DietaryPreferences) > 0 {
		fmt.Fprintf(&sb, "Dietary preferences: %s.\n", strings.Join(req.DietaryPreferences, ", "))
	}
	if len(req.ExcludedIngredients) > 0 {
		fmt.Fprintf(&sb, "Never use these ingredients: %s.\n", strings.Join(req.ExcludedIngredients, ", "))
	}
	if req.Budget > 0 {
		fmt.Fprintf(&sb, "Keep the grocery budget under %.2f.\n", req.Budget)
	}
	if req.IncludeLeftovers {
		sb.WriteString("Reuse cooked meals as leftovers on following days where sensible; mark those with leftover=true.\n")
	}
	if req.SameMealTimes {
		sb.WriteString("Keep meal slots consistent across days.\n")
	}
	if req.MealChangeFrequency != "" {
		fmt.Fprintf(&sb, "Meal variety: %s.\n", req.MealChangeFrequency)
	}
	if custom != "" {
		fmt.Fprintf(&sb, "Additional request: %s\n", custom)
	}
	return sb.String()
}
