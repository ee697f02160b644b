package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nutritrack/backend/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func TestSummarizeAverages(t *testing.T) {
	records := []model.DailyRecord{
		{Date: day(t, "2025-03-01"), Calories: 2000, ProteinG: 100, CarbsG: 250, FatsG: 70},
		{Date: day(t, "2025-03-02"), Calories: 1500, ProteinG: 80, CarbsG: 150, FatsG: 50},
	}
	w := Window{Range: "custom", From: records[0].Date, To: records[1].Date}

	sum := Summarize(records, w)
	assert.Equal(t, 1750.0, sum.AverageCalories)
	assert.Equal(t, 90.0, sum.AverageProteinG)
	assert.Equal(t, 200.0, sum.AverageCarbsG)
	assert.Equal(t, 60.0, sum.AverageFatsG)
	assert.Equal(t, "2025-03-01", sum.RangeFrom)
	assert.Equal(t, "2025-03-02", sum.RangeTo)
}

func TestSummarizeZeroFallbackKeepsDenominator(t *testing.T) {
	// The second day never logged protein. It still divides the average:
	// the screen has always shown 50, not 100, for this shape of data.
	records := []model.DailyRecord{
		{Date: day(t, "2025-03-01"), Calories: 2000, ProteinG: 100},
		{Date: day(t, "2025-03-02"), Calories: 1800},
	}
	sum := Summarize(records, Window{})
	assert.Equal(t, 50.0, sum.AverageProteinG)
	assert.Equal(t, 1900.0, sum.AverageCalories)
}

func TestSummarizeSingleDay(t *testing.T) {
	sum := Summarize([]model.DailyRecord{{Date: day(t, "2025-03-01"), Calories: 2000}}, Window{})
	assert.Equal(t, 2000.0, sum.AverageCalories)
}

func TestSummarizeEmptyIsZeroState(t *testing.T) {
	sum := Summarize(nil, Window{})
	assert.Zero(t, sum.AverageCalories)
	assert.Zero(t, sum.AverageProteinG)
	assert.Zero(t, sum.AverageSodiumMg)
	assert.Empty(t, sum.Achievements)
	assert.Empty(t, sum.Insights)
	assert.NotNil(t, sum.Achievements)
	assert.NotNil(t, sum.Insights)
}

func TestProduceChartSeriesNilOnEmpty(t *testing.T) {
	assert.Nil(t, ProduceChartSeries(nil))
	assert.Nil(t, ProduceChartSeries([]model.DailyRecord{}))
}

func TestProduceChartSeriesLastSeven(t *testing.T) {
	var records []model.DailyRecord
	start := day(t, "2025-03-01")
	for i := 0; i < 10; i++ {
		records = append(records, model.DailyRecord{
			Date:     start.AddDate(0, 0, i),
			Calories: float64(1000 + i),
		})
	}

	s := ProduceChartSeries(records)
	assert.NotNil(t, s)
	assert.Len(t, s.Labels, 7)
	assert.Len(t, s.Data, 7)
	// Chronological order preserved, oldest of the seven first.
	assert.Equal(t, 1003.0, s.Data[0])
	assert.Equal(t, 1009.0, s.Data[6])
	assert.Equal(t, records[3].Date.Format("Mon"), s.Labels[0])
}

func TestProduceChartSeriesFewerThanSeven(t *testing.T) {
	records := []model.DailyRecord{
		{Date: day(t, "2025-03-01"), Calories: 1200},
		{Date: day(t, "2025-03-02"), Calories: 1300},
	}
	s := ProduceChartSeries(records)
	assert.NotNil(t, s)
	assert.Len(t, s.Labels, 2)
	assert.Equal(t, []float64{1200, 1300}, s.Data)
}

func TestMacroBreakdownNonNegative(t *testing.T) {
	m := MacroBreakdown([]model.DailyRecord{
		{ProteinG: 100, CarbsG: 200, FatsG: 50},
		{ProteinG: 80, CarbsG: 150, FatsG: 60},
	})
	assert.Equal(t, MacroSlices{ProteinG: 180, CarbsG: 350, FatsG: 110}, m)

	zero := MacroBreakdown(nil)
	assert.GreaterOrEqual(t, zero.ProteinG, 0.0)
	assert.GreaterOrEqual(t, zero.CarbsG, 0.0)
	assert.GreaterOrEqual(t, zero.FatsG, 0.0)
}

func TestStreak(t *testing.T) {
	today := day(t, "2025-03-10")
	logged := []time.Time{
		day(t, "2025-03-10"),
		day(t, "2025-03-09"),
		day(t, "2025-03-08"),
		day(t, "2025-03-05"), // gap: not part of the streak
	}
	assert.Equal(t, 3, Streak(logged, today))
}

func TestStreakQuietTodayCountsThroughYesterday(t *testing.T) {
	today := day(t, "2025-03-10")
	logged := []time.Time{day(t, "2025-03-09"), day(t, "2025-03-08")}
	assert.Equal(t, 2, Streak(logged, today))
}

func TestStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, day(t, "2025-03-10")))
}

func TestAchievementPercentClampSwitch(t *testing.T) {
	over := model.Achievement{Title: "Log 7 days", Progress: 9, MaxProgress: 7}
	assert.Equal(t, 100.0, AchievementPercent(over, true))
	assert.InDelta(t, 128.57, AchievementPercent(over, false), 0.01)

	assert.Equal(t, 0.0, AchievementPercent(model.Achievement{Progress: 3}, true))
}

func TestInsightsSkipZeroTargets(t *testing.T) {
	sum := StatisticsSummary{AverageProteinG: 10, AverageSodiumMg: 5000}
	assert.Empty(t, Insights(sum, model.DailyTargets{}))

	withTargets := Insights(sum, model.DailyTargets{ProteinG: 100, SodiumMg: 2300})
	assert.Len(t, withTargets, 2)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

	w, err := ResolveWindow("week", "", "", now)
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-04", w.From.Format("2006-01-02"))
	assert.Equal(t, "2025-03-10", w.To.Format("2006-01-02"))

	w, err = ResolveWindow("custom", "2025-02-01", "2025-02-28", now)
	assert.NoError(t, err)
	assert.Equal(t, "custom", w.Range)

	_, err = ResolveWindow("custom", "2025-02-28", "2025-02-01", now)
	assert.Error(t, err)

	_, err = ResolveWindow("fortnight", "", "", now)
	assert.Error(t, err)
}
