package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
	"github.com/Zalotleh/wellness-hub-sub004/utils"

	"gorm.io/gorm"
)

// Tunables for the generation heuristics. The repetition threshold is
// deliberately a named constant rather than an inferred value: a food logged
// strictly more than repeatedFoodThreshold times inside the window counts as
// repeated.
const (
	repeatedFoodWindowDays = 7
	repeatedFoodThreshold  = 3
	varietyMinSlotsLogged  = 2
	mealPlanMinWeakSystems = 2
)

// DayAnalysis is the shared input every heuristic reads. It is built once
// per generation pass.
type DayAnalysis struct {
	Date             time.Time // canonical day key
	Score            ScoreResult
	RecentFoodCounts map[string]int // food name → uses over the trailing window
	Location         *time.Location // user's local time, for expiry
}

func (a *DayAnalysis) expiry() time.Time {
	return utils.EndOfDay(a.Date, a.Location)
}

func (a *DayAnalysis) systemsSatisfied() bool {
	for _, system := range models.AllDefenseSystems {
		if a.Score.Aggregate.SystemCount(system) < dimensionGoal {
			return false
		}
	}
	return true
}

// A heuristic inspects the day analysis and proposes zero or more
// candidates. Heuristics are independent; new ones are appended to
// generationOrder without touching the existing ones.
type heuristic func(a *DayAnalysis) []models.Recommendation

var generationOrder = []heuristic{
	systemGapCandidates,
	mealPlanCandidates,
	mainMealCandidates,
	snackCandidates,
	varietyCandidates,
}

// GenerateCandidates runs the ordered heuristics over one day analysis and
// returns all candidates sorted by priority, generation order breaking ties.
// A day with no consumption yields no candidates.
func GenerateCandidates(a *DayAnalysis) []models.Recommendation {
	if a.Score.Aggregate.RecordCount == 0 {
		return nil
	}
	var out []models.Recommendation
	for _, h := range generationOrder {
		out = append(out, h(a)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// systemGapCandidates proposes a "strengthen system" recipe for every system
// below the per-system goal, in fixed system order. Fewer foods means higher
// priority; zero foods is elevated to the top tier.
func systemGapCandidates(a *DayAnalysis) []models.Recommendation {
	var out []models.Recommendation
	for _, system := range models.AllDefenseSystems {
		count := a.Score.Aggregate.SystemCount(system)
		if count >= dimensionGoal {
			continue
		}

		var priority models.RecommendationPriority
		switch {
		case count == 0:
			priority = models.PriorityCritical
		case count <= 2:
			priority = models.PriorityHigh
		default:
			priority = models.PriorityMedium
		}

		label := systemLabel(system)
		var title, description, reasoning string
		if count == 0 {
			title = fmt.Sprintf("Start Your %s Journey", label)
			description = fmt.Sprintf("You haven't logged any %s foods yet. These are crucial for your wellness.", strings.ToLower(label))
			reasoning = fmt.Sprintf("No %s foods logged today.", strings.ToLower(label))
		} else {
			title = fmt.Sprintf("Strengthen Your %s (%d/%d foods)", label, count, dimensionGoal)
			description = fmt.Sprintf("You've logged %d %s food%s. Add %d more to complete this system!",
				count, strings.ToLower(label), plural(count), dimensionGoal-count)
			reasoning = fmt.Sprintf("Only %d/%d %s foods logged today.", count, dimensionGoal, strings.ToLower(label))
		}

		out = append(out, models.Recommendation{
			Type:         models.RecTypeRecipe,
			Priority:     priority,
			Status:       models.StatusPending,
			Title:        title,
			Description:  description,
			Reasoning:    reasoning,
			ActionLabel:  "Generate Recipe",
			ActionURL:    "/recipes/ai-generate",
			ActionData:   actionData(map[string]any{"target_system": system}),
			TargetSystem: system,
			ExpiresAt:    a.expiry(),
		})
	}
	return out
}

// mealPlanCandidates proposes one meal-plan suggestion when several systems
// are started but unfinished, so a single plan can cover them all.
func mealPlanCandidates(a *DayAnalysis) []models.Recommendation {
	var weak []models.DefenseSystem
	for _, system := range models.AllDefenseSystems {
		count := a.Score.Aggregate.SystemCount(system)
		if count >= 1 && count < dimensionGoal {
			weak = append(weak, system)
		}
	}
	if len(weak) < mealPlanMinWeakSystems {
		return nil
	}

	if len(weak) > 3 {
		weak = weak[:3]
	}
	labels := make([]string, len(weak))
	for i, system := range weak {
		labels[i] = systemLabel(system)
	}

	return []models.Recommendation{{
		Type:        models.RecTypeMealPlan,
		Priority:    models.PriorityMedium,
		Status:      models.StatusPending,
		Title:       "Create a Meal Plan",
		Description: fmt.Sprintf("Boost multiple defense systems (%s) with a custom meal plan.", strings.Join(labels, ", ")),
		Reasoning:   "Several systems are started but unfinished; one plan can cover them all.",
		ActionLabel: "Plan My Week",
		ActionURL:   "/meal-planner",
		ActionData:  actionData(map[string]any{"target_systems": weak, "duration_days": 7}),
		ExpiresAt:   a.expiry(),
	}}
}

// mainMealCandidates nudges missing breakfast/lunch/dinner, but only once
// every defense system is satisfied for the day.
func mainMealCandidates(a *DayAnalysis) []models.Recommendation {
	if !a.systemsSatisfied() {
		return nil
	}
	var out []models.Recommendation
	for _, slot := range models.MainMealSlots {
		if a.Score.Aggregate.UsedSlots[slot] {
			continue
		}
		out = append(out, mealCandidate(a, slot, models.PriorityMedium))
	}
	return out
}

// snackCandidates nudges snack slots only after all three main meals are
// logged. A snack suggestion must never outrun a missing main meal.
func snackCandidates(a *DayAnalysis) []models.Recommendation {
	if !a.systemsSatisfied() || a.Score.Aggregate.MainMealsLogged() < len(models.MainMealSlots) {
		return nil
	}
	var out []models.Recommendation
	for _, slot := range models.SnackSlots {
		if a.Score.Aggregate.UsedSlots[slot] {
			continue
		}
		out = append(out, mealCandidate(a, slot, models.PriorityLow))
	}
	return out
}

func mealCandidate(a *DayAnalysis, slot models.MealSlot, priority models.RecommendationPriority) models.Recommendation {
	label := slotLabel(slot)
	return models.Recommendation{
		Type:           models.RecTypeWorkflowStep,
		Priority:       priority,
		Status:         models.StatusPending,
		Title:          fmt.Sprintf("Plan Your %s", label),
		Description:    fmt.Sprintf("%s not logged yet. Create a healthy %s recipe!", label, strings.ToLower(label)),
		Reasoning:      "Missed meal detected. Planning ahead makes healthy eating easier.",
		ActionLabel:    "Create Recipe",
		ActionURL:      "/recipes/ai-generate",
		ActionData:     actionData(map[string]any{"meal_slot": slot, "from": "missed-meal"}),
		TargetMealSlot: slot,
		ExpiresAt:      a.expiry(),
	}
}

// varietyCandidates flags foods leaned on too heavily over the trailing
// window, once the day has at least two meals logged.
func varietyCandidates(a *DayAnalysis) []models.Recommendation {
	if a.Score.Aggregate.SlotsUsed < varietyMinSlotsLogged {
		return nil
	}

	var repeated []string
	for name, uses := range a.RecentFoodCounts {
		if uses > repeatedFoodThreshold {
			repeated = append(repeated, name)
		}
	}
	if len(repeated) == 0 {
		return nil
	}
	sort.Strings(repeated)

	listed := repeated
	if len(listed) > 3 {
		listed = listed[:3]
	}

	return []models.Recommendation{{
		Type:        models.RecTypeFoodSuggestion,
		Priority:    models.PriorityLow,
		Status:      models.StatusPending,
		Title:       "Add More Variety",
		Description: fmt.Sprintf("You're eating similar foods (%s). Let's diversify!", strings.Join(listed, ", ")),
		Reasoning: fmt.Sprintf("%d food%s logged more than %d times in the last %d days.",
			len(repeated), plural(len(repeated)), repeatedFoodThreshold, repeatedFoodWindowDays),
		ActionLabel: "Create New Recipe",
		ActionURL:   "/recipes/ai-generate",
		ActionData:  actionData(map[string]any{"from": "variety", "avoid_foods": repeated}),
		ExpiresAt:   a.expiry(),
	}}
}

func actionData(params map[string]any) string {
	raw, _ := json.Marshal(params)
	return string(raw)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// systemLabel renders DNA_PROTECTION as "DNA Protection" and so on.
func systemLabel(system models.DefenseSystem) string {
	words := strings.Split(string(system), "_")
	for i, w := range words {
		if w == "DNA" {
			continue
		}
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func slotLabel(slot models.MealSlot) string {
	words := strings.Split(string(slot), "_")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// RecommendationService orchestrates "return pending or generate" and owns
// candidate persistence.
type RecommendationService struct {
	db          *gorm.DB
	consumption *ConsumptionService
	push        *PushService
	hub         *ScoreHub
}

func NewRecommendationService(db *gorm.DB, consumption *ConsumptionService, push *PushService, hub *ScoreHub) *RecommendationService {
	return &RecommendationService{db: db, consumption: consumption, push: push, hub: hub}
}

// NextAction returns the highest-priority pending recommendation for the
// user, generating a fresh batch when none is pending. The second return
// value reports a cache hit. A (nil, false, nil) result is the explicit
// "nothing to do" outcome, not an error.
func (s *RecommendationService) NextAction(userID uint, date time.Time) (*models.Recommendation, bool, error) {
	now := time.Now()

	// one pending recommendation of material consequence per user: if any
	// unexpired pending row exists, surface the best one and stop
	pending, err := s.pendingRecommendations(userID, now)
	if err != nil {
		return nil, false, err
	}
	if len(pending) > 0 {
		top := pending[0]
		if err := s.db.Model(&top).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return nil, false, err
		}
		top.ViewCount++
		return &top, true, nil
	}

	analysis, err := s.buildAnalysis(userID, date)
	if err != nil {
		return nil, false, err
	}
	if analysis == nil {
		return nil, false, nil // no consumption data for the date
	}
	if !analysis.expiry().After(now) {
		// a past day's candidates would be born expired and pile up unread
		return nil, false, nil
	}

	candidates := GenerateCandidates(analysis)
	if len(candidates) == 0 {
		return nil, false, nil
	}

	// persist the whole generation pass; the top one starts viewed
	for i := range candidates {
		candidates[i].UserID = userID
		if i == 0 {
			candidates[i].ViewCount = 1
		}
	}
	if err := s.db.Create(&candidates).Error; err != nil {
		return nil, false, err
	}

	top := &candidates[0]
	if s.hub != nil {
		s.hub.Broadcast(userID, map[string]any{
			"kind":           "recommendation.created",
			"recommendation": top,
		})
	}
	if s.push != nil && top.Priority == models.PriorityCritical {
		s.push.PushToUser(userID, top.Title, top.Description, map[string]string{
			"recommendationId": fmt.Sprintf("%d", top.ID),
			"priority":         string(top.Priority),
		})
	}
	return top, false, nil
}

func (s *RecommendationService) pendingRecommendations(userID uint, now time.Time) ([]models.Recommendation, error) {
	var pending []models.Recommendation
	err := s.db.
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, models.StatusPending, now).
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Priority.Rank() != pending[j].Priority.Rank() {
			return pending[i].Priority.Rank() < pending[j].Priority.Rank()
		}
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}

// buildAnalysis loads the day's records plus the trailing food-use window.
// Returns nil when the day has no consumption at all.
func (s *RecommendationService) buildAnalysis(userID uint, date time.Time) (*DayAnalysis, error) {
	key := utils.DateKey(date)

	records, err := s.consumption.ListByDay(userID, key)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	windowStart := key.AddDate(0, 0, -(repeatedFoodWindowDays - 1))
	recent, err := s.consumption.ListByDateRange(userID, windowStart, key)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return &DayAnalysis{
		Date:             key,
		Score:            CalculateScore(AggregateDay(records)),
		RecentFoodCounts: CountFoodUses(recent),
		Location:         utils.UserLocation(user.Timezone),
	}, nil
}
