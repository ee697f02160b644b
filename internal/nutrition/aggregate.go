package nutrition

import (
	"fmt"
	"math"
	"time"

	"github.com/nutritrack/backend/internal/model"
)

// StatisticsSummary is the display-ready aggregation of a window of daily
// records. It is recomputed on every fetch and never persisted.
type StatisticsSummary struct {
	RangeFrom string `json:"range_from"`
	RangeTo   string `json:"range_to"`

	AverageCalories float64 `json:"average_calories"`
	AverageProteinG float64 `json:"average_protein_g"`
	AverageCarbsG   float64 `json:"average_carbs_g"`
	AverageFatsG    float64 `json:"average_fats_g"`
	AverageFiberG   float64 `json:"average_fiber_g"`
	AverageSodiumMg float64 `json:"average_sodium_mg"`
	AverageSugarG   float64 `json:"average_sugar_g"`
	AverageFluidsML float64 `json:"average_fluids_ml"`

	TotalMeals    int `json:"totalMeals"`
	CurrentStreak int `json:"currentStreak"`

	Achievements []model.Achievement `json:"achievements"`
	Insights     []string            `json:"insights"`
}

// ChartSeries is a projection of the last seven daily records into one
// labeled numeric series. Labels and Data always have equal length.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// MacroSlices holds the three pie-chart populations. Slices are plain sums
// over the window, so they are never negative and add up to the macro total.
type MacroSlices struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// Summarize computes arithmetic means over records. A record with an unlogged
// field contributes 0 to the numerator but still counts in the denominator;
// this fallback is deliberate and relied upon by the statistics screen.
// Empty input yields an all-zero summary, never an error.
func Summarize(records []model.DailyRecord, w Window) StatisticsSummary {
	out := StatisticsSummary{
		RangeFrom:    w.From.Format("2006-01-02"),
		RangeTo:      w.To.Format("2006-01-02"),
		Achievements: []model.Achievement{},
		Insights:     []string{},
	}
	n := len(records)
	if n == 0 {
		return out
	}

	var cal, prot, carb, fat, fiber, sodium, sugar, fluids float64
	for _, r := range records {
		cal += r.Calories
		prot += r.ProteinG
		carb += r.CarbsG
		fat += r.FatsG
		fiber += r.FiberG
		sodium += r.SodiumMg
		sugar += r.SugarG
		fluids += r.FluidsML
	}

	out.AverageCalories = avg(cal, n)
	out.AverageProteinG = avg(prot, n)
	out.AverageCarbsG = avg(carb, n)
	out.AverageFatsG = avg(fat, n)
	out.AverageFiberG = avg(fiber, n)
	out.AverageSodiumMg = avg(sodium, n)
	out.AverageSugarG = avg(sugar, n)
	out.AverageFluidsML = avg(fluids, n)
	return out
}

// ProduceChartSeries projects the last seven records, in chronological order,
// into a calorie series with short weekday labels. Fewer than seven records
// are used as-is. Empty input returns nil: the explicit "no chart" signal,
// as opposed to an empty series.
func ProduceChartSeries(records []model.DailyRecord) *ChartSeries {
	if len(records) == 0 {
		return nil
	}
	if len(records) > 7 {
		records = records[len(records)-7:]
	}
	s := &ChartSeries{
		Labels: make([]string, 0, len(records)),
		Data:   make([]float64, 0, len(records)),
	}
	for _, r := range records {
		s.Labels = append(s.Labels, r.Date.Format("Mon"))
		s.Data = append(s.Data, r.Calories)
	}
	return s
}

// MacroBreakdown sums the three macros across the window for the pie chart.
func MacroBreakdown(records []model.DailyRecord) MacroSlices {
	var m MacroSlices
	for _, r := range records {
		m.ProteinG += r.ProteinG
		m.CarbsG += r.CarbsG
		m.FatsG += r.FatsG
	}
	return m
}

// Streak counts consecutive days with at least one logged meal, walking
// backwards from today. A gap of more than one day before the most recent
// logged day means the streak is over.
func Streak(loggedDays []time.Time, today time.Time) int {
	logged := make(map[string]bool, len(loggedDays))
	for _, d := range loggedDays {
		logged[d.Format("2006-01-02")] = true
	}
	streak := 0
	day := dayStart(today)
	// A quiet today does not break a streak that ran through yesterday.
	if !logged[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for logged[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AchievementPercent renders an achievement's progress ratio. When clamp is
// set, over-progress caps at 100; otherwise the raw ratio is kept, matching
// the historical display behavior.
func AchievementPercent(a model.Achievement, clamp bool) float64 {
	if a.MaxProgress <= 0 {
		return 0
	}
	pct := round2(a.Progress / a.MaxProgress * 100)
	if clamp && pct > 100 {
		return 100
	}
	return pct
}

// Insights derives short advisory strings from a summary against the user's
// targets. Zero targets are skipped rather than divided by.
func Insights(sum StatisticsSummary, targets model.DailyTargets) []string {
	out := []string{}
	if targets.ProteinG > 0 && sum.AverageProteinG < 0.8*targets.ProteinG {
		out = append(out, fmt.Sprintf("Protein is averaging %.0fg against a %.0fg target. Consider adding a protein source to one meal.", sum.AverageProteinG, targets.ProteinG))
	}
	if targets.SodiumMg > 0 && sum.AverageSodiumMg > targets.SodiumMg {
		out = append(out, fmt.Sprintf("Sodium is averaging %.0fmg, above your %.0fmg limit.", sum.AverageSodiumMg, targets.SodiumMg))
	}
	if targets.FluidsML > 0 && sum.AverageFluidsML < 0.8*targets.FluidsML {
		out = append(out, "Hydration is running below target. Keep a bottle nearby.")
	}
	if targets.FiberG > 0 && sum.AverageFiberG >= targets.FiberG {
		out = append(out, "Great fiber intake, you are meeting your daily fiber target.")
	}
	return out
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
