package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nutritrack/backend/internal/model"
	"github.com/nutritrack/backend/internal/models"
	"github.com/nutritrack/backend/internal/nutrition"
)

// StatisticsService assembles the statistics screen payload: daily breakdown,
// averages, streak, achievements, insights and chart series. All number
// crunching is delegated to the pure nutrition package.
type StatisticsService struct {
	db            *gorm.DB
	clampProgress bool
}

// NewStatisticsService creates a new StatisticsService instance.
func NewStatisticsService(db *gorm.DB, clampProgress bool) *StatisticsService {
	return &StatisticsService{db: db, clampProgress: clampProgress}
}

// Statistics is the full statistics screen payload.
type Statistics struct {
	DailyBreakdown []model.DailyRecord         `json:"dailyBreakdown"`
	Summary        nutrition.StatisticsSummary `json:"summary"`
	ChartSeries    *nutrition.ChartSeries      `json:"chartSeries,omitempty"`
	MacroSlices    nutrition.MacroSlices       `json:"macroSlices"`
	Achievements   []AchievementView           `json:"achievements"`
}

// AchievementView pairs an achievement with its rendered progress percent.
type AchievementView struct {
	model.Achievement
	Percent float64 `json:"percent"`
}

// GetStatistics aggregates the user's records over the requested window.
// Missing data is a valid zero state: a user with no records gets an all-zero
// summary and a nil chart, never an error.
func (s *StatisticsService) GetStatistics(ctx context.Context, userID uint, rng, start, end string) (*Statistics, error) {
	w, err := nutrition.ResolveWindow(rng, start, end, time.Now())
	if err != nil {
		return nil, err
	}

	var rows []models.DailyRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, w.From, dayEnd(w.To)).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch daily records: %w", err)
	}

	records := make([]model.DailyRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.ToValue())
	}

	summary := nutrition.Summarize(records, w)

	totalMeals, err := s.countMeals(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	summary.TotalMeals = totalMeals

	streak, err := s.currentStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.CurrentStreak = streak

	targets, err := s.userTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.Insights = nutrition.Insights(summary, targets)

	achievements := s.buildAchievements(totalMeals, streak)
	summary.Achievements = achievements

	views := make([]AchievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, AchievementView{
			Achievement: a,
			Percent:     nutrition.AchievementPercent(a, s.clampProgress),
		})
	}

	return &Statistics{
		DailyBreakdown: records,
		Summary:        summary,
		ChartSeries:    nutrition.ProduceChartSeries(records),
		MacroSlices:    nutrition.MacroBreakdown(records),
		Achievements:   views,
	}, nil
}

func (s *StatisticsService) countMeals(ctx context.Context, userID uint, w nutrition.Window) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.MealLogEntry{}).
		Where("user_id = ? AND ate_at BETWEEN ? AND ?", userID, w.From, dayEnd(w.To)).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count meals: %w", err)
	}
	return int(count), nil
}

func (s *StatisticsService) currentStreak(ctx context.Context, userID uint) (int, error) {
	var entries []models.MealLogEntry
	// 90 days of history bounds the streak scan.
	since := time.Now().AddDate(0, 0, -90)
	if err := s.db.WithContext(ctx).
		Select("ate_at").
		Where("user_id = ? AND ate_at >= ?", userID, since).
		Find(&entries).Error; err != nil {
		return 0, fmt.Errorf("fetch streak days: %w", err)
	}
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		days = append(days, e.AteAt)
	}
	return nutrition.Streak(days, time.Now()), nil
}

func (s *StatisticsService) userTargets(ctx context.Context, userID uint) (model.DailyTargets, error) {
	var row models.UserTargets
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DailyTargets{}, nil
		}
		return model.DailyTargets{}, fmt.Errorf("fetch targets: %w", err)
	}
	return row.ToTargets(), nil
}

// buildAchievements derives progress entries from activity counts. Progress
// is capped at MaxProgress at the source; display clamping of the percent is
// a separate, configurable concern.
func (s *StatisticsService) buildAchievements(totalMeals, streak int) []model.Achievement {
	capped := func(v, max float64) float64 {
		if v > max {
			return max
		}
		return v
	}
	return []model.Achievement{
		{
			Title:       "Getting Started",
			Description: "Log your first 10 meals",
			Progress:    capped(float64(totalMeals), 10),
			MaxProgress: 10,
		},
		{
			Title:       "Consistency",
			Description: "Keep a 7-day logging streak",
			Progress:    capped(float64(streak), 7),
			MaxProgress: 7,
		},
		{
			Title:       "Habit Builder",
			Description: "Keep a 30-day logging streak",
			Progress:    capped(float64(streak), 30),
			MaxProgress: 30,
		},
	}
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
