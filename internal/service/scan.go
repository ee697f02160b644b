package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/model"
	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
)

const productCacheTTL = 24 * time.Hour

// ScanService resolves scans into products, scores them against the user and
// keeps the scan history.
type ScanService struct {
	db       *gorm.DB
	cache    *redis.Client
	lookup   ProductLookup
	detector LabelDetector
	cfg      nutrition.AnalysisConfig
}

// NewScanService creates a new ScanService instance. cache and detector may
// be nil; lookups then skip the cache and image scans are rejected.
func NewScanService(db *gorm.DB, cache *redis.Client, lookup ProductLookup, detector LabelDetector) *ScanService {
	return &ScanService{
		db:       db,
		cache:    cache,
		lookup:   lookup,
		detector: detector,
		cfg:      nutrition.DefaultAnalysisConfig(),
	}
}

// ScanResult pairs the resolved product with its per-user analysis.
type ScanResult struct {
	Product      model.ScannedProduct            `json:"product"`
	UserAnalysis nutrition.CompatibilityAnalysis `json:"user_analysis"`
}

// ScanBarcode resolves a barcode (through the cache when possible), analyzes
// the product for the user at a default 100g portion, and records history.
func (s *ScanService) ScanBarcode(ctx context.Context, userID uint, barcode string) (*ScanResult, error) {
	product, err := s.cachedLookup(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return s.finishScan(ctx, userID, product, "barcode")
}

// ScanImage stores nothing client-side: the base64 capture is decoded, run
// through label detection and resolved by name.
func (s *ScanService) ScanImage(ctx context.Context, userID uint, imageBase64 string) (*ScanResult, error) {
	if s.detector == nil {
		return nil, errors.New("image scanning is not configured")
	}
	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	label, err := s.detector.DetectProductLabel(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detect product label: %w", err)
	}
	product, err := s.lookup.SearchByName(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("resolve detected label %q: %w", label, err)
	}
	return s.finishScan(ctx, userID, product, "image")
}

// Analyze scores a product for the user at the given quantity without
// touching history; the scanner screen calls this when the user adjusts the
// portion slider.
func (s *ScanService) Analyze(ctx context.Context, userID uint, product model.ScannedProduct, quantityGrams float64) (nutrition.CompatibilityAnalysis, error) {
	targets, profile, err := s.userTargetsAndProfile(ctx, userID)
	if err != nil {
		return nutrition.CompatibilityAnalysis{}, err
	}
	return nutrition.Analyze(product, quantityGrams, targets, profile, s.cfg), nil
}

// History returns the user's scans, most recent first.
func (s *ScanService) History(ctx context.Context, userID uint, limit int) ([]models.ScanHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ScanHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch scan history: %w", err)
	}
	return rows, nil
}

func (s *ScanService) finishScan(ctx context.Context, userID uint, product model.ScannedProduct, method string) (*ScanResult, error) {
	analysis, err := s.Analyze(ctx, userID, product, 100)
	if err != nil {
		return nil, err
	}

	productJSON, _ := json.Marshal(product)
	analysisJSON, _ := json.Marshal(analysis)
	entry := models.ScanHistory{
		UserID:             userID,
		ScannedAt:          time.Now(),
		Method:             method,
		Barcode:            product.Barcode,
		ProductName:        product.Name,
		Brand:              product.Brand,
		Category:           product.Category,
		CompatibilityScore: analysis.CompatibilityScore,
		ProductJSON:        string(productJSON),
		AnalysisJSON:       string(analysisJSON),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("record scan history: %w", err)
	}

	return &ScanResult{Product: product, UserAnalysis: analysis}, nil
}

// cachedLookup serves barcode lookups from Redis when possible. Cache
// failures degrade to a direct provider call.
func (s *ScanService) cachedLookup(ctx context.Context, barcode string) (model.ScannedProduct, error) {
	key := "product:barcode:" + barcode
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var product model.ScannedProduct
			if json.Unmarshal([]byte(raw), &product) == nil {
				return product, nil
			}
		}
	}

	product, err := s.lookup.LookupBarcode(ctx, barcode)
	if err != nil {
		return model.ScannedProduct{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(product); err == nil {
			if err := s.cache.Set(ctx, key, raw, productCacheTTL).Err(); err != nil {
				log.Printf("product cache write failed for %s: %v", barcode, err)
			}
		}
	}
	return product, nil
}

func (s *ScanService) userTargetsAndProfile(ctx context.Context, userID uint) (model.DailyTargets, model.UserProfile, error) {
	var row models.UserTargets
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DailyTargets{}, model.UserProfile{}, nil
		}
		return model.DailyTargets{}, model.UserProfile{}, fmt.Errorf("fetch targets: %w", err)
	}
	return row.ToTargets(), row.ToProfile(), nil
}
