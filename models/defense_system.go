package models

import "fmt"

// DefenseSystem is one of the five physiological categories foods are
// scored against. The set is closed; no sixth system may appear.
type DefenseSystem string

const (
	Angiogenesis  DefenseSystem = "ANGIOGENESIS"
	Regeneration  DefenseSystem = "REGENERATION"
	Microbiome    DefenseSystem = "MICROBIOME"
	DNAProtection DefenseSystem = "DNA_PROTECTION"
	Immunity      DefenseSystem = "IMMUNITY"
)

// AllDefenseSystems is the fixed iteration order used everywhere counts or
// recommendations are produced per system.
var AllDefenseSystems = []DefenseSystem{
	Angiogenesis,
	Regeneration,
	Microbiome,
	DNAProtection,
	Immunity,
}

func ParseDefenseSystem(s string) (DefenseSystem, error) {
	for _, ds := range AllDefenseSystems {
		if string(ds) == s {
			return ds, nil
		}
	}
	return "", fmt.Errorf("unknown defense system: %q", s)
}

// BenefitStrength is the tier of a food's benefit for a system.
type BenefitStrength string

const (
	StrengthHigh   BenefitStrength = "HIGH"
	StrengthMedium BenefitStrength = "MEDIUM"
	StrengthLow    BenefitStrength = "LOW"
)

func ParseBenefitStrength(s string) (BenefitStrength, error) {
	switch BenefitStrength(s) {
	case StrengthHigh, StrengthMedium, StrengthLow:
		return BenefitStrength(s), nil
	}
	return "", fmt.Errorf("unknown benefit strength: %q", s)
}

// MealSlot labels one logged eating event. Two records in the same slot
// still count as one slot for frequency scoring.
type MealSlot string

const (
	Breakfast      MealSlot = "BREAKFAST"
	MorningSnack   MealSlot = "MORNING_SNACK"
	Lunch          MealSlot = "LUNCH"
	AfternoonSnack MealSlot = "AFTERNOON_SNACK"
	Dinner         MealSlot = "DINNER"
	EveningSnack   MealSlot = "EVENING_SNACK"
	CustomSlot     MealSlot = "CUSTOM"
)

var AllMealSlots = []MealSlot{
	Breakfast,
	MorningSnack,
	Lunch,
	AfternoonSnack,
	Dinner,
	EveningSnack,
	CustomSlot,
}

// MainMealSlots in fixed recommendation order.
var MainMealSlots = []MealSlot{Breakfast, Lunch, Dinner}

// SnackSlots in fixed recommendation order.
var SnackSlots = []MealSlot{MorningSnack, AfternoonSnack, EveningSnack}

func ParseMealSlot(s string) (MealSlot, error) {
	for _, ms := range AllMealSlots {
		if string(ms) == s {
			return ms, nil
		}
	}
	return "", fmt.Errorf("unknown meal slot: %q", s)
}

func (m MealSlot) IsMain() bool {
	return m == Breakfast || m == Lunch || m == Dinner
}

// ConsumptionSource tags where a logged record came from.
type ConsumptionSource string

const (
	SourceManual   ConsumptionSource = "MANUAL"
	SourceRecipe   ConsumptionSource = "RECIPE"
	SourceMealPlan ConsumptionSource = "MEAL_PLAN"
)

func ParseConsumptionSource(s string) (ConsumptionSource, error) {
	switch ConsumptionSource(s) {
	case SourceManual, SourceRecipe, SourceMealPlan:
		return ConsumptionSource(s), nil
	}
	return "", fmt.Errorf("unknown consumption source: %q", s)
}
