package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/middleware"
	"github.com/nutritrack/backend/internal/model"
	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/service"
)

type stubLookup struct {
	product model.ScannedProduct
	err     error
}

func (s *stubLookup) LookupBarcode(ctx context.Context, barcode string) (model.ScannedProduct, error) {
	if s.err != nil {
		return model.ScannedProduct{}, s.err
	}
	p := s.product
	p.Barcode = barcode
	return p, nil
}

func (s *stubLookup) SearchByName(ctx context.Context, query string) (model.ScannedProduct, error) {
	return s.product, s.err
}

type stubGenerator struct {
	plan *service.GeneratedPlan
	err  error
}

func (s *stubGenerator) GenerateMenuPlan(ctx context.Context, prompt string) (*service.GeneratedPlan, error) {
	return s.plan, s.err
}

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	lookup *stubLookup
	gen    *stubGenerator
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.DailyRecord{},
		&models.MealLogEntry{},
		&models.ScanHistory{},
		&models.UserTargets{},
		&models.Menu{},
		&models.MenuMeal{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	lookup := &stubLookup{product: model.ScannedProduct{
		Name:      "Oat Drink",
		Brand:     "Fields",
		Nutrition: model.NutritionPer100G{Calories: 46, Protein: 1, Carbs: 6.6, Fat: 1.5, Sugar: 4},
	}}
	gen := &stubGenerator{plan: &service.GeneratedPlan{
		Title: "Plan",
		Meals: []service.GeneratedMeal{{DayIndex: 0, Slot: "lunch", Name: "Soup", Calories: 400}},
	}}

	engine := gin.New()
	v1 := engine.Group("/api/v1", middleware.Identity())
	NewStatisticsHandler(service.NewStatisticsService(db, true)).RegisterRoutes(v1)
	NewScanHandler(service.NewScanService(db, nil, lookup, nil), service.NewMealService(db)).RegisterRoutes(v1)
	NewMenuHandler(service.NewMenuService(db, gen)).RegisterRoutes(v1)
	NewUserHandler(service.NewTargetsService(db)).RegisterRoutes(v1)

	return &testEnv{engine: engine, db: db, lookup: lookup, gen: gen}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, asUser string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set(middleware.UserIDHeader, asUser)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireIdentity(t *testing.T) {
	env := setupAPI(t)

	for _, path := range []string{"/api/v1/statistics", "/api/v1/scan/history", "/api/v1/user/targets"} {
		w := env.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestGetStatisticsEndpoint(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodGet, "/api/v1/statistics?range=week", nil, "1")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp service.Statistics
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.DailyBreakdown)
	assert.Len(t, resp.Achievements, 3)

	w = env.do(t, http.MethodGet, "/api/v1/statistics?range=decade", nil, "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanBarcodeEndpoint(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/api/v1/scan/barcode", gin.H{"barcode": "7394376616037"}, "1")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp service.ScanResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Oat Drink", resp.Product.Name)
	assert.Equal(t, "7394376616037", resp.Product.Barcode)
	assert.Equal(t, 100, resp.UserAnalysis.CompatibilityScore)

	// Missing barcode fails binding.
	w = env.do(t, http.MethodPost, "/api/v1/scan/barcode", gin.H{}, "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.lookup.err = errors.New("provider down")
	w = env.do(t, http.MethodPost, "/api/v1/scan/barcode", gin.H{"barcode": "123"}, "1")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestScanImageEndpointUnconfigured(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/api/v1/scan/image", gin.H{"image_base64": "aGVsbG8="}, "1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMealLogEndpoint(t *testing.T) {
	env := setupAPI(t)

	body := gin.H{
		"product_name":   "Oat Drink",
		"quantity_grams": 250,
		"meal_timing":    "BREAKFAST",
		"nutrition_per_100g": gin.H{
			"calories": 46, "protein": 1, "carbs": 6.6, "fat": 1.5,
		},
	}
	w := env.do(t, http.MethodPost, "/api/v1/scan/log", body, "1")
	assert.Equal(t, http.StatusCreated, w.Code)

	var entry models.MealLogEntry
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, 115.0, entry.Calories)

	body["meal_timing"] = "ELEVENSES"
	w = env.do(t, http.MethodPost, "/api/v1/scan/log", body, "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanHistoryEndpoint(t *testing.T) {
	env := setupAPI(t)

	env.do(t, http.MethodPost, "/api/v1/scan/barcode", gin.H{"barcode": "111"}, "1")
	env.do(t, http.MethodPost, "/api/v1/scan/barcode", gin.H{"barcode": "222"}, "2")

	w := env.do(t, http.MethodGet, "/api/v1/scan/history", nil, "1")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []ScanHistoryEntry `json:"history"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.History, 1)
	assert.Equal(t, "111", resp.History[0].Barcode)
	assert.Equal(t, "barcode", resp.History[0].Method)
	assert.NotEmpty(t, resp.History[0].Product)
}

func TestTargetsEndpoints(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodGet, "/api/v1/user/targets", nil, "1")
	assert.Equal(t, http.StatusOK, w.Code)

	var targets TargetsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &targets))
	assert.Zero(t, targets.Calories)

	update := gin.H{
		"calories":  2100,
		"protein_g": 110,
		"allergens": []string{"Soy"},
	}
	w = env.do(t, http.MethodPut, "/api/v1/user/targets", update, "1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &targets))
	assert.Equal(t, 2100.0, targets.Calories)
	assert.Equal(t, []string{"soy"}, targets.Allergens)

	w = env.do(t, http.MethodGet, "/api/v1/user/targets", nil, "1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &targets))
	assert.Equal(t, 2100.0, targets.Calories)
}

func TestMenuEndpoints(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/api/v1/recommended-menus/generate", gin.H{
		"days": 3, "mealsPerDay": "3_main",
	}, "1")
	assert.Equal(t, http.StatusCreated, w.Code)

	var menu models.Menu
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Equal(t, "Plan", menu.Title)
	assert.NotEmpty(t, menu.Meals)

	w = env.do(t, http.MethodGet, "/api/v1/recommended-menus/"+menu.ID.String(), nil, "1")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/recommended-menus/"+menu.ID.String()+"/start-today", nil, "1")
	assert.Equal(t, http.StatusOK, w.Code)

	// Another user never sees it.
	w = env.do(t, http.MethodGet, "/api/v1/recommended-menus/"+menu.ID.String(), nil, "2")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/recommended-menus/not-a-uuid/start-today", nil, "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Enum violations are a bad request.
	w = env.do(t, http.MethodPost, "/api/v1/recommended-menus/generate", gin.H{
		"days": 5, "mealsPerDay": "3_main",
	}, "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Backend failure is a bad gateway.
	env.gen.plan = nil
	env.gen.err = errors.New("model unavailable")
	w = env.do(t, http.MethodPost, "/api/v1/recommended-menus/generate", gin.H{
		"days": 3, "mealsPerDay": "3_main",
	}, "1")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateCustomMenuEndpoint(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/api/v1/recommended-menus/generate-custom", gin.H{
		"days": 7, "mealsPerDay": "3_plus_2_snacks", "customRequest": "low sodium",
	}, "1")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/recommended-menus/generate-custom", gin.H{
		"days": 7, "mealsPerDay": "3_plus_2_snacks", "customRequest": "   ",
	}, "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
