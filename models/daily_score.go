package models

import (
	"time"

	"gorm.io/gorm"
)

// Score levels by overall percentage.
const (
	LevelMaster       = "MASTER"       // >= 90
	LevelAdvanced     = "ADVANCED"     // >= 70
	LevelIntermediate = "INTERMEDIATE" // >= 50
	LevelBeginner     = "BEGINNER"
)

// DailyScore is the cached 5x5x5 score for one (user, day). Rows are
// replaced wholesale via upsert, never partially updated, and deleted
// whenever the day's consumption changes.
type DailyScore struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_daily_scores_user_date;not null" json:"user_id"`
	Date   time.Time `gorm:"uniqueIndex:idx_daily_scores_user_date;not null" json:"date"`

	SystemScore    int    `json:"system_score"`    // systems with >=1 food, 0-5
	FoodScore      int    `json:"food_score"`      // distinct foods, uncapped
	FrequencyScore int    `json:"frequency_score"` // distinct meal slots, 0-5
	OverallScore   int    `json:"overall_score"`   // 0-100
	Level          string `gorm:"size:16" json:"level"`

	AngiogenesisCount  int `json:"angiogenesis_count"`
	RegenerationCount  int `json:"regeneration_count"`
	MicrobiomeCount    int `json:"microbiome_count"`
	DNAProtectionCount int `json:"dna_protection_count"`
	ImmunityCount      int `json:"immunity_count"`

	UniqueFoods int `json:"unique_foods"`
	MealsLogged int `json:"meals_logged"` // consumption records that day; 0 means no data
}

// SystemCount returns the cached distinct-food count for one system.
func (d *DailyScore) SystemCount(system DefenseSystem) int {
	switch system {
	case Angiogenesis:
		return d.AngiogenesisCount
	case Regeneration:
		return d.RegenerationCount
	case Microbiome:
		return d.MicrobiomeCount
	case DNAProtection:
		return d.DNAProtectionCount
	case Immunity:
		return d.ImmunityCount
	}
	return 0
}

// HasData reports whether any consumption existed when the row was computed.
func (d *DailyScore) HasData() bool {
	return d.MealsLogged > 0
}
