package models

import (
	"time"

	"gorm.io/gorm"
)

// One logged eating event (breakfast/lunch/…) with its foods.
type ConsumptionRecord struct {
	gorm.Model
	UserID   uint              `gorm:"index;not null" json:"user_id"`
	Date     time.Time         `gorm:"index;not null" json:"date"` // normalized day key (noon UTC)
	MealSlot MealSlot          `gorm:"type:varchar(32);not null" json:"meal_slot"`
	Source   ConsumptionSource `gorm:"type:varchar(16);not null;default:'MANUAL'" json:"source"`
	Items    []FoodItem        `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// Each FoodItem stores the food name plus its defense-system benefits.
type FoodItem struct {
	gorm.Model
	ConsumptionRecordID uint          `gorm:"index;not null" json:"consumption_record_id"`
	Name                string        `gorm:"not null" json:"name"`
	Quantity            float64       `json:"quantity"`
	Unit                string        `gorm:"size:32" json:"unit"`
	Benefits            []FoodBenefit `gorm:"constraint:OnDelete:CASCADE" json:"benefits"`
}

// FoodBenefit ties a food item to one of the five defense systems.
// A single food may carry benefits for several systems at once.
type FoodBenefit struct {
	gorm.Model
	FoodItemID uint            `gorm:"index;not null" json:"food_item_id"`
	System     DefenseSystem   `gorm:"type:varchar(32);not null" json:"system"`
	Strength   BenefitStrength `gorm:"type:varchar(8);not null;default:'MEDIUM'" json:"strength"`
}
