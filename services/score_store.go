package services

import (
	"errors"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScoreStore backs ScoreStore with the daily_scores table. The
// uniqueIndex on (user_id, date) plus ON CONFLICT upsert makes concurrent
// writers for the same day converge instead of racing read-then-write.
type GormScoreStore struct{ db *gorm.DB }

func NewGormScoreStore(db *gorm.DB) *GormScoreStore { return &GormScoreStore{db: db} }

func (s *GormScoreStore) Get(userID uint, date time.Time) (*models.DailyScore, error) {
	var row models.DailyScore
	err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormScoreStore) Upsert(row *models.DailyScore) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"system_score", "food_score", "frequency_score", "overall_score",
			"level", "angiogenesis_count", "regeneration_count",
			"microbiome_count", "dna_protection_count", "immunity_count",
			"unique_foods", "meals_logged", "updated_at",
		}),
	}).Create(row).Error
}

func (s *GormScoreStore) Delete(userID uint, date time.Time) error {
	// hard delete: a soft-deleted row would keep holding the (user_id, date)
	// unique key, and the upsert's ON CONFLICT path never clears deleted_at,
	// leaving the day invisible to Get forever
	return s.db.Unscoped().
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.DailyScore{}).Error
}

func (s *GormScoreStore) Range(userID uint, from, to time.Time) ([]models.DailyScore, error) {
	var rows []models.DailyScore
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// GormConsumptionSource reads one day's records with items and benefits in a
// single query, so a score is never computed from a torn read.
type GormConsumptionSource struct{ db *gorm.DB }

func NewGormConsumptionSource(db *gorm.DB) *GormConsumptionSource {
	return &GormConsumptionSource{db: db}
}

func (s *GormConsumptionSource) RecordsForDay(userID uint, date time.Time) ([]models.ConsumptionRecord, error) {
	var records []models.ConsumptionRecord
	err := s.db.
		Preload("Items.Benefits").
		Preload("Items").
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
