package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type RecommendationType string

const (
	RecTypeRecipe         RecommendationType = "RECIPE"
	RecTypeMealPlan       RecommendationType = "MEAL_PLAN"
	RecTypeFoodSuggestion RecommendationType = "FOOD_SUGGESTION"
	RecTypeWorkflowStep   RecommendationType = "WORKFLOW_STEP"
)

var AllRecommendationTypes = []RecommendationType{
	RecTypeRecipe,
	RecTypeMealPlan,
	RecTypeFoodSuggestion,
	RecTypeWorkflowStep,
}

func ParseRecommendationType(s string) (RecommendationType, error) {
	for _, t := range AllRecommendationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown recommendation type: %q", s)
}

type RecommendationPriority string

const (
	PriorityCritical RecommendationPriority = "CRITICAL"
	PriorityHigh     RecommendationPriority = "HIGH"
	PriorityMedium   RecommendationPriority = "MEDIUM"
	PriorityLow      RecommendationPriority = "LOW"
)

var AllRecommendationPriorities = []RecommendationPriority{
	PriorityCritical,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// Rank orders priorities for sorting: CRITICAL=0 … LOW=3.
func (p RecommendationPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

type RecommendationStatus string

const (
	StatusPending   RecommendationStatus = "PENDING"
	StatusAccepted  RecommendationStatus = "ACCEPTED"
	StatusDismissed RecommendationStatus = "DISMISSED"
	StatusActedOn   RecommendationStatus = "ACTED_ON"
	StatusShopped   RecommendationStatus = "SHOPPED"
	StatusCompleted RecommendationStatus = "COMPLETED"
	StatusExpired   RecommendationStatus = "EXPIRED"
)

func ParseRecommendationStatus(s string) (RecommendationStatus, error) {
	switch RecommendationStatus(s) {
	case StatusPending, StatusAccepted, StatusDismissed, StatusActedOn,
		StatusShopped, StatusCompleted, StatusExpired:
		return RecommendationStatus(s), nil
	}
	return "", fmt.Errorf("unknown recommendation status: %q", s)
}

// Terminal reports whether no further transition is legal from the status.
func (s RecommendationStatus) Terminal() bool {
	switch s {
	case StatusAccepted, StatusDismissed, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Recommendation is one proposed next action. Rows are never deleted, only
// transitioned; each transition stamps its own timestamp field.
type Recommendation struct {
	gorm.Model
	UserID uint `gorm:"index;not null" json:"user_id"`

	Type     RecommendationType     `gorm:"type:varchar(24);not null" json:"type"`
	Priority RecommendationPriority `gorm:"type:varchar(12);not null" json:"priority"`
	Status   RecommendationStatus   `gorm:"type:varchar(12);not null;default:'PENDING';index" json:"status"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`

	ActionLabel string `gorm:"size:64" json:"action_label"`
	ActionURL   string `gorm:"size:128" json:"action_url"`
	ActionData  string `gorm:"type:text" json:"action_data"` // opaque JSON parameter bag

	TargetSystem   DefenseSystem `gorm:"type:varchar(32)" json:"target_system,omitempty"`
	TargetMealSlot MealSlot      `gorm:"type:varchar(32)" json:"target_meal_slot,omitempty"`

	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`

	ViewCount     int    `gorm:"default:0" json:"view_count"`
	DismissCount  int    `gorm:"default:0" json:"dismiss_count"`
	DismissReason string `json:"dismiss_reason,omitempty"`

	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`
	ActedAt     *time.Time `json:"acted_at,omitempty"`
	ShoppedAt   *time.Time `json:"shopped_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`

	LinkedRecipeID       string `gorm:"size:64" json:"linked_recipe_id,omitempty"`
	LinkedShoppingListID string `gorm:"size:64" json:"linked_shopping_list_id,omitempty"`
	LinkedMealLogID      string `gorm:"size:64" json:"linked_meal_log_id,omitempty"`
}

// ExpiredBy reports whether the recommendation's expiry has passed at now.
func (r *Recommendation) ExpiredBy(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
