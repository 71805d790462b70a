package services

import (
	"math"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
	"github.com/Zalotleh/wellness-hub-sub004/utils"
)

// ScoreStore is the persisted (userID, date) → DailyScore map backing the
// cache. Upsert must be atomic on the (user, date) key so concurrent
// get-or-compute callers converge on a single stored row.
type ScoreStore interface {
	Get(userID uint, date time.Time) (*models.DailyScore, error) // nil, nil when absent
	Upsert(row *models.DailyScore) error
	Delete(userID uint, date time.Time) error
	Range(userID uint, from, to time.Time) ([]models.DailyScore, error)
}

// ConsumptionSource provides a single consistent read of one day's records.
type ConsumptionSource interface {
	RecordsForDay(userID uint, date time.Time) ([]models.ConsumptionRecord, error)
}

type ScoreCacheService struct {
	store  ScoreStore
	source ConsumptionSource
}

func NewScoreCacheService(store ScoreStore, source ConsumptionSource) *ScoreCacheService {
	return &ScoreCacheService{store: store, source: source}
}

// GetOrCompute returns the cached score for (user, date), computing and
// persisting it from that day's consumption records when absent. A day with
// zero consumption is a valid zero score, never an error.
func (s *ScoreCacheService) GetOrCompute(userID uint, date time.Time) (*models.DailyScore, error) {
	key := utils.DateKey(date)

	cached, err := s.store.Get(userID, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	records, err := s.source.RecordsForDay(userID, key)
	if err != nil {
		return nil, err
	}

	row := buildScoreRow(userID, key, CalculateScore(AggregateDay(records)))
	if err := s.store.Upsert(row); err != nil {
		return nil, err
	}
	return row, nil
}

// Invalidate drops the cached row for (user, date). Called synchronously by
// every consumption write or delete; a missing row is not an error.
func (s *ScoreCacheService) Invalidate(userID uint, date time.Time) error {
	return s.store.Delete(userID, utils.DateKey(date))
}

// Recompute invalidates and immediately rebuilds the row, returning the
// fresh score. Used after consumption writes so callers (and the realtime
// hub) see the post-write value.
func (s *ScoreCacheService) Recompute(userID uint, date time.Time) (*models.DailyScore, error) {
	if err := s.Invalidate(userID, date); err != nil {
		return nil, err
	}
	return s.GetOrCompute(userID, date)
}

func buildScoreRow(userID uint, key time.Time, result ScoreResult) *models.DailyScore {
	agg := result.Aggregate
	return &models.DailyScore{
		UserID:             userID,
		Date:               key,
		SystemScore:        result.SystemScore,
		FoodScore:          result.FoodScore,
		FrequencyScore:     result.FrequencyScore,
		OverallScore:       result.OverallScore,
		Level:              result.Level,
		AngiogenesisCount:  agg.SystemCount(models.Angiogenesis),
		RegenerationCount:  agg.SystemCount(models.Regeneration),
		MicrobiomeCount:    agg.SystemCount(models.Microbiome),
		DNAProtectionCount: agg.SystemCount(models.DNAProtection),
		ImmunityCount:      agg.SystemCount(models.Immunity),
		UniqueFoods:        agg.UniqueFoods,
		MealsLogged:        agg.RecordCount,
	}
}

// RangeSummary is the weekly/monthly rollup built from daily cache rows.
type RangeSummary struct {
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	AverageScore   int                 `json:"average_score"` // across days with data only
	DaysWithData   int                 `json:"days_with_data"`
	TotalDays      int                 `json:"total_days"`
	CompletionRate int                 `json:"completion_rate"` // percent
	TotalMeals     int                 `json:"total_meals"`
	Trend          string              `json:"trend"` // improving | declining | stable
	Days           []models.DailyScore `json:"days"`
}

// Rollup reports the date range [from, to], computing any missing days on
// demand. Days with zero consumption are excluded from the average rather
// than counted as zero.
func (s *ScoreCacheService) Rollup(userID uint, from, to time.Time) (*RangeSummary, error) {
	start := utils.DateKey(from)
	end := utils.DateKey(to)
	if end.Before(start) {
		return nil, NewValidationError("date", "range end is before range start")
	}

	summary := &RangeSummary{From: start, To: end}
	total := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		row, err := s.GetOrCompute(userID, day)
		if err != nil {
			return nil, err
		}
		summary.Days = append(summary.Days, *row)
		summary.TotalDays++
		summary.TotalMeals += row.MealsLogged
		if row.HasData() {
			summary.DaysWithData++
			total += row.OverallScore
		}
	}

	if summary.DaysWithData > 0 {
		summary.AverageScore = int(math.Round(float64(total) / float64(summary.DaysWithData)))
	}
	if summary.TotalDays > 0 {
		summary.CompletionRate = int(math.Round(float64(summary.DaysWithData) / float64(summary.TotalDays) * 100))
	}
	summary.Trend = rangeTrend(summary.Days)
	return summary, nil
}

// rangeTrend compares dataful-day averages of the two halves of the range.
func rangeTrend(days []models.DailyScore) string {
	if len(days) < 2 {
		return "stable"
	}
	mid := (len(days) + 1) / 2
	first := datafulAverage(days[:mid])
	second := datafulAverage(days[mid:])
	switch {
	case second > first+5:
		return "improving"
	case second < first-5:
		return "declining"
	default:
		return "stable"
	}
}

func datafulAverage(days []models.DailyScore) float64 {
	sum, n := 0, 0
	for _, d := range days {
		if d.HasData() {
			sum += d.OverallScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
