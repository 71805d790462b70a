package services

import (
	"math"

	"github.com/Zalotleh/wellness-hub-sub004/models"
)

// dimensionGoal is the 5 in 5x5x5: five systems, five foods, five slots.
const dimensionGoal = 5

// ScoreResult is the three-dimension 5x5x5 score for one day.
type ScoreResult struct {
	SystemScore    int    `json:"system_score"`    // 0-5
	FoodScore      int    `json:"food_score"`      // raw distinct foods, uncapped
	FrequencyScore int    `json:"frequency_score"` // 0-5
	OverallScore   int    `json:"overall_score"`   // 0-100
	Level          string `json:"level"`

	Aggregate DayAggregate `json:"-"`
}

// CalculateScore converts a day aggregate into the 5x5x5 score. Each
// dimension contributes min(value,5)/5 of a third of the overall
// percentage; the thresholds and equal weighting are fixed business rules.
func CalculateScore(agg DayAggregate) ScoreResult {
	systems := 0
	for _, system := range models.AllDefenseSystems {
		if agg.SystemCount(system) > 0 {
			systems++
		}
	}

	frequency := agg.SlotsUsed
	if frequency > dimensionGoal {
		frequency = dimensionGoal
	}

	overall := int(math.Round((dimensionPercent(systems) +
		dimensionPercent(agg.UniqueFoods) +
		dimensionPercent(frequency)) / 3.0))

	return ScoreResult{
		SystemScore:    systems,
		FoodScore:      agg.UniqueFoods,
		FrequencyScore: frequency,
		OverallScore:   overall,
		Level:          LevelForScore(overall),
		Aggregate:      agg,
	}
}

func dimensionPercent(raw int) float64 {
	if raw > dimensionGoal {
		raw = dimensionGoal
	}
	return float64(raw) / dimensionGoal * 100
}

// LevelForScore maps an overall percentage to its qualitative level.
func LevelForScore(overall int) string {
	switch {
	case overall >= 90:
		return models.LevelMaster
	case overall >= 70:
		return models.LevelAdvanced
	case overall >= 50:
		return models.LevelIntermediate
	default:
		return models.LevelBeginner
	}
}
