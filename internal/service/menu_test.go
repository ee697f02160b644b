package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nutritrack/backend/internal/types"
)

func testPlan() *GeneratedPlan {
	return &GeneratedPlan{
		Title: "High-protein week",
		Meals: []GeneratedMeal{
			{DayIndex: 0, Slot: "breakfast", Name: "Shakshuka", Calories: 420, ProteinG: 22},
			{DayIndex: 0, Slot: "lunch", Name: "Lentil Bowl", Calories: 610, ProteinG: 28},
			{DayIndex: 1, Slot: "breakfast", Name: "Oatmeal", Calories: 380, ProteinG: 14},
			{DayIndex: 9, Slot: "lunch", Name: "Out Of Range", Calories: 500},
		},
	}
}

func TestGenerateMenuPersistsPlan(t *testing.T) {
	db := setupTestDB(t)
	gen := &fakeGenerator{plan: testPlan()}
	svc := NewMenuService(db, gen)

	menu, err := svc.Generate(context.Background(), 1, types.GenerateMenuRequest{
		Days:                3,
		MealsPerDay:         types.MealsThreeMain,
		TargetCalories:      2000,
		ExcludedIngredients: []string{"cilantro"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "High-protein week", menu.Title)
	assert.Equal(t, 3, menu.Days)
	// The day-9 meal does not fit a 3-day plan and is dropped.
	assert.Len(t, menu.Meals, 3)

	assert.Contains(t, gen.lastPrompt, "Plan 3 days")
	assert.Contains(t, gen.lastPrompt, "cilantro")

	loaded, err := svc.Get(context.Background(), 1, menu.ID)
	assert.NoError(t, err)
	assert.Len(t, loaded.Meals, 3)
	assert.Equal(t, "Shakshuka", loaded.Meals[0].Name)
}

func TestGenerateMenuDefaultTitle(t *testing.T) {
	db := setupTestDB(t)
	plan := testPlan()
	plan.Title = "  "
	svc := NewMenuService(db, &fakeGenerator{plan: plan})

	menu, err := svc.Generate(context.Background(), 1, types.GenerateMenuRequest{Days: 7, MealsPerDay: types.MealsThreeMain})
	assert.NoError(t, err)
	assert.Equal(t, "7-day menu", menu.Title)
}

func TestGenerateMenuValidation(t *testing.T) {
	db := setupTestDB(t)
	gen := &fakeGenerator{plan: testPlan()}
	svc := NewMenuService(db, gen)

	_, err := svc.Generate(context.Background(), 1, types.GenerateMenuRequest{Days: 5, MealsPerDay: types.MealsThreeMain})
	assert.Error(t, err)

	_, err = svc.Generate(context.Background(), 1, types.GenerateMenuRequest{Days: 3, MealsPerDay: "9_meals"})
	assert.Error(t, err)

	// Invalid requests never reach the generator.
	assert.Empty(t, gen.lastPrompt)
}

func TestGenerateMenuGeneratorFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db, &fakeGenerator{err: errors.New("model unavailable")})

	_, err := svc.Generate(context.Background(), 1, types.GenerateMenuRequest{Days: 3, MealsPerDay: types.MealsThreeMain})
	assert.Error(t, err)
}

func TestGenerateMenuRejectsEmptyPlan(t *testing.T) {
	db := setupTestDB(t)
	// Every meal lands outside the plan's day range.
	plan := &GeneratedPlan{Meals: []GeneratedMeal{{DayIndex: 5, Slot: "lunch", Name: "Stray"}}}
	svc := NewMenuService(db, &fakeGenerator{plan: plan})

	_, err := svc.Generate(context.Background(), 1, types.GenerateMenuRequest{Days: 3, MealsPerDay: types.MealsThreeMain})
	assert.Error(t, err)
}

func TestGenerateCustomMenuForwardsRequest(t *testing.T) {
	db := setupTestDB(t)
	gen := &fakeGenerator{plan: testPlan()}
	svc := NewMenuService(db, gen)

	_, err := svc.GenerateCustom(context.Background(), 1, types.GenerateCustomMenuRequest{
		GenerateMenuRequest: types.GenerateMenuRequest{Days: 3, MealsPerDay: types.MealsThreeMain},
		CustomRequest:       "Mediterranean style, no fried food",
	})
	assert.NoError(t, err)
	assert.True(t, strings.Contains(gen.lastPrompt, "Mediterranean style"))
}

func TestStartToday(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db, &fakeGenerator{plan: testPlan()})

	menu, err := svc.Generate(context.Background(), 1, types.GenerateMenuRequest{Days: 3, MealsPerDay: types.MealsThreeMain})
	assert.NoError(t, err)
	assert.Nil(t, menu.StartedAt)

	assert.NoError(t, svc.StartToday(context.Background(), 1, menu.ID))

	loaded, err := svc.Get(context.Background(), 1, menu.ID)
	assert.NoError(t, err)
	assert.NotNil(t, loaded.StartedAt)

	// Another user cannot start it, and unknown ids are not found.
	assert.ErrorIs(t, svc.StartToday(context.Background(), 2, menu.ID), ErrMenuNotFound)
	assert.ErrorIs(t, svc.StartToday(context.Background(), 1, uuid.New()), ErrMenuNotFound)
}

func TestGetMenuNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db, &fakeGenerator{plan: testPlan()})

	_, err := svc.Get(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
