package services

import (
	"github.com/Zalotleh/wellness-hub-sub004/models"
)

// DayAggregate is the reduction of one user-day of consumption records.
// All food-name comparisons are case-sensitive exact matches.
type DayAggregate struct {
	// SystemFoods maps each defense system to the distinct food names that
	// carry a benefit for it. A multi-system food appears under every system
	// it benefits.
	SystemFoods map[models.DefenseSystem][]string

	// FoodCounts maps each distinct food name to how many times it was
	// logged that day (across all records and slots).
	FoodCounts map[string]int

	UniqueFoods int
	SlotsUsed   int
	UsedSlots   map[models.MealSlot]bool
	RecordCount int
}

// SystemCount returns the distinct-food count for one system.
func (a DayAggregate) SystemCount(system models.DefenseSystem) int {
	return len(a.SystemFoods[system])
}

// MainMealsLogged counts how many of breakfast/lunch/dinner have a record.
func (a DayAggregate) MainMealsLogged() int {
	n := 0
	for _, slot := range models.MainMealSlots {
		if a.UsedSlots[slot] {
			n++
		}
	}
	return n
}

// AggregateDay reduces one day's consumption records to per-system distinct
// food counts, a day-wide distinct food count and the set of meal slots
// used. Two records in the same slot count as one slot. Empty input yields
// an all-zero aggregate.
func AggregateDay(records []models.ConsumptionRecord) DayAggregate {
	agg := DayAggregate{
		SystemFoods: make(map[models.DefenseSystem][]string),
		FoodCounts:  make(map[string]int),
		UsedSlots:   make(map[models.MealSlot]bool),
		RecordCount: len(records),
	}

	seenPerSystem := make(map[models.DefenseSystem]map[string]bool)
	for _, system := range models.AllDefenseSystems {
		seenPerSystem[system] = make(map[string]bool)
	}

	for _, rec := range records {
		agg.UsedSlots[rec.MealSlot] = true
		for _, item := range rec.Items {
			agg.FoodCounts[item.Name]++
			for _, benefit := range item.Benefits {
				if seenPerSystem[benefit.System] == nil {
					// unknown system on a stored row; the enum is closed,
					// so skip rather than invent a sixth bucket
					continue
				}
				if !seenPerSystem[benefit.System][item.Name] {
					seenPerSystem[benefit.System][item.Name] = true
					agg.SystemFoods[benefit.System] = append(agg.SystemFoods[benefit.System], item.Name)
				}
			}
		}
	}

	agg.UniqueFoods = len(agg.FoodCounts)
	agg.SlotsUsed = len(agg.UsedSlots)
	return agg
}
