package services

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
	"github.com/Zalotleh/wellness-hub-sub004/utils"

	"gorm.io/gorm"
)

type ConsumptionService struct {
	db    *gorm.DB
	cache *ScoreCacheService
	hub   *ScoreHub
}

func NewConsumptionService(db *gorm.DB, cache *ScoreCacheService, hub *ScoreHub) *ConsumptionService {
	return &ConsumptionService{db: db, cache: cache, hub: hub}
}

type FoodBenefitRequest struct {
	System   string `json:"system"`
	Strength string `json:"strength"`
}

type FoodItemRequest struct {
	Name     string               `json:"name"`
	Quantity float64              `json:"quantity"`
	Unit     string               `json:"unit"`
	Benefits []FoodBenefitRequest `json:"benefits"`
}

// LogFood persists one consumption record and synchronously invalidates and
// rebuilds the day's cached score as part of the same logical operation.
func (s *ConsumptionService) LogFood(
	userID uint,
	date time.Time,
	slot string,
	source string,
	items []FoodItemRequest,
) (*models.ConsumptionRecord, error) {
	mealSlot, err := models.ParseMealSlot(slot)
	if err != nil {
		return nil, NewValidationError("meal_slot", err.Error())
	}
	if source == "" {
		source = string(models.SourceManual)
	}
	recSource, err := models.ParseConsumptionSource(source)
	if err != nil {
		return nil, NewValidationError("source", err.Error())
	}
	if len(items) == 0 {
		return nil, NewValidationError("items", "at least one food item is required")
	}

	record := &models.ConsumptionRecord{
		UserID:   userID,
		Date:     utils.DateKey(date),
		MealSlot: mealSlot,
		Source:   recSource,
	}
	for _, it := range items {
		if it.Name == "" {
			return nil, NewValidationError("items.name", "food name is required")
		}
		item := models.FoodItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		}
		for _, b := range it.Benefits {
			system, err := models.ParseDefenseSystem(b.System)
			if err != nil {
				return nil, NewValidationError("items.benefits.system", err.Error())
			}
			strength := models.StrengthMedium
			if b.Strength != "" {
				strength, err = models.ParseBenefitStrength(b.Strength)
				if err != nil {
					return nil, NewValidationError("items.benefits.strength", err.Error())
				}
			}
			item.Benefits = append(item.Benefits, models.FoodBenefit{
				System:   system,
				Strength: strength,
			})
		}
		record.Items = append(record.Items, item)
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}

	s.refreshScore(userID, record.Date)
	return record, nil
}

// DeleteRecord removes a record the caller owns and invalidates its date.
func (s *ConsumptionService) DeleteRecord(userID, recordID uint) error {
	var record models.ConsumptionRecord
	err := s.db.
		Where("id = ? AND user_id = ?", recordID, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// items and benefits go with their parent
	if err := s.db.Select("Items", "Items.Benefits").Delete(&record).Error; err != nil {
		return err
	}

	s.refreshScore(userID, record.Date)
	return nil
}

// refreshScore rebuilds the day's cached score and pushes it to any
// connected clients. A failed rebuild must not leave the stale pre-write row
// in place, so it falls back to a bare invalidation and logs; the next read
// then recomputes.
func (s *ConsumptionService) refreshScore(userID uint, date time.Time) {
	row, err := s.cache.Recompute(userID, date)
	if err != nil {
		log.Printf("score refresh failed for user %d on %s: %v", userID, date.Format("2006-01-02"), err)
		if err := s.cache.Invalidate(userID, date); err != nil {
			log.Printf("score invalidate failed for user %d on %s: %v", userID, date.Format("2006-01-02"), err)
		}
		return
	}
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(userID, map[string]any{
		"kind":  "score.updated",
		"score": row,
	})
}

// ListByDay returns the day's records with items and benefits preloaded.
func (s *ConsumptionService) ListByDay(userID uint, date time.Time) ([]models.ConsumptionRecord, error) {
	return NewGormConsumptionSource(s.db).RecordsForDay(userID, utils.DateKey(date))
}

// ListByDateRange returns records with dates in [from, to] inclusive.
func (s *ConsumptionService) ListByDateRange(userID uint, from, to time.Time) ([]models.ConsumptionRecord, error) {
	var records []models.ConsumptionRecord
	err := s.db.
		Preload("Items.Benefits").
		Preload("Items").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, utils.DateKey(from), utils.DateKey(to)).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

// FavoriteFood is a food name with how often it was logged in the window.
type FavoriteFood struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FavoriteFoods is plain frequency counting over the last windowDays days,
// most-logged first. Ties break alphabetically so output is deterministic.
func (s *ConsumptionService) FavoriteFoods(userID uint, windowDays, limit int) ([]FavoriteFood, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	if limit <= 0 {
		limit = 10
	}
	to := utils.DateKey(time.Now())
	from := to.AddDate(0, 0, -(windowDays - 1))

	records, err := s.ListByDateRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	counts := CountFoodUses(records)
	favorites := make([]FavoriteFood, 0, len(counts))
	for name, count := range counts {
		favorites = append(favorites, FavoriteFood{Name: name, Count: count})
	}
	sort.Slice(favorites, func(i, j int) bool {
		if favorites[i].Count != favorites[j].Count {
			return favorites[i].Count > favorites[j].Count
		}
		return favorites[i].Name < favorites[j].Name
	})
	if len(favorites) > limit {
		favorites = favorites[:limit]
	}
	return favorites, nil
}

// CountFoodUses tallies food-name occurrences across records.
func CountFoodUses(records []models.ConsumptionRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		for _, item := range rec.Items {
			counts[item.Name]++
		}
	}
	return counts
}
