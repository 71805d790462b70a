package services

import (
	"errors"
	"math"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"

	"gorm.io/gorm"
)

// legalTransitions is the whole state machine. PENDING fans out to every
// other state; the two in-progress states may still complete or be
// dismissed; terminal states have no exits.
var legalTransitions = map[models.RecommendationStatus][]models.RecommendationStatus{
	models.StatusPending: {
		models.StatusAccepted,
		models.StatusDismissed,
		models.StatusActedOn,
		models.StatusShopped,
		models.StatusCompleted,
		models.StatusExpired,
	},
	models.StatusActedOn: {models.StatusCompleted, models.StatusDismissed},
	models.StatusShopped: {models.StatusCompleted, models.StatusDismissed},
}

// ValidTransition reports whether from → to is a legal lifecycle move.
func ValidTransition(from, to models.RecommendationStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionOptions carries the optional payload of a status change.
type TransitionOptions struct {
	DismissReason        string
	LinkedRecipeID       string
	LinkedShoppingListID string
	LinkedMealLogID      string
}

// ApplyTransition mutates the recommendation in place for a legal move, or
// returns a StateConflictError naming the current status. A pending row
// whose expiry has already passed is flipped to EXPIRED first, so expiry is
// enforced at touch time rather than by a background sweep.
func ApplyTransition(rec *models.Recommendation, to models.RecommendationStatus, now time.Time, opts TransitionOptions) error {
	if rec.Status == models.StatusPending && rec.ExpiredBy(now) && to != models.StatusExpired {
		rec.Status = models.StatusExpired
		rec.ExpiredAt = &now
		return &StateConflictError{Current: models.StatusExpired}
	}
	if !ValidTransition(rec.Status, to) {
		return &StateConflictError{Current: rec.Status}
	}

	rec.Status = to
	stamp := now
	switch to {
	case models.StatusAccepted:
		rec.AcceptedAt = &stamp
	case models.StatusDismissed:
		rec.DismissedAt = &stamp
		rec.DismissCount++
		if opts.DismissReason != "" {
			rec.DismissReason = opts.DismissReason
		}
	case models.StatusActedOn:
		rec.ActedAt = &stamp
		if opts.LinkedRecipeID != "" {
			rec.LinkedRecipeID = opts.LinkedRecipeID
		}
	case models.StatusShopped:
		rec.ShoppedAt = &stamp
		if opts.LinkedShoppingListID != "" {
			rec.LinkedShoppingListID = opts.LinkedShoppingListID
		}
	case models.StatusCompleted:
		rec.CompletedAt = &stamp
		if opts.LinkedMealLogID != "" {
			rec.LinkedMealLogID = opts.LinkedMealLogID
		}
	case models.StatusExpired:
		rec.ExpiredAt = &stamp
	}
	return nil
}

// RecommendationStore persists lifecycle transitions and serves history.
type RecommendationStore struct{ db *gorm.DB }

func NewRecommendationStore(db *gorm.DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// fetchOwned loads a recommendation and enforces ownership: a row belonging
// to another user is reported as not found, never leaked.
func (s *RecommendationStore) fetchOwned(userID, id uint) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := s.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrForbidden
	}
	return &rec, nil
}

// Transition applies a status change and persists the result. The row is
// saved even when the move failed because of lazy expiry, so the EXPIRED
// flip sticks.
func (s *RecommendationStore) Transition(userID, id uint, to models.RecommendationStatus, opts TransitionOptions) (*models.Recommendation, error) {
	rec, err := s.fetchOwned(userID, id)
	if err != nil {
		return nil, err
	}

	prior := rec.Status
	applyErr := ApplyTransition(rec, to, time.Now(), opts)

	if applyErr == nil || rec.Status != prior {
		if saveErr := s.db.Save(rec).Error; saveErr != nil {
			return nil, saveErr
		}
	}
	if applyErr != nil {
		return nil, applyErr
	}
	return rec, nil
}

func (s *RecommendationStore) Accept(userID, id uint) (*models.Recommendation, error) {
	return s.Transition(userID, id, models.StatusAccepted, TransitionOptions{})
}

func (s *RecommendationStore) Dismiss(userID, id uint, reason string) (*models.Recommendation, error) {
	return s.Transition(userID, id, models.StatusDismissed, TransitionOptions{DismissReason: reason})
}

// HistoryStats is the boundary-layer reporting view over persisted rows.
type HistoryStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Dismissed int `json:"dismissed"`
	ActedOn   int `json:"acted_on"`
	Shopped   int `json:"shopped"`
	Completed int `json:"completed"`
	Expired   int `json:"expired"`

	AcceptanceRate int `json:"acceptance_rate"` // percent
	DismissalRate  int `json:"dismissal_rate"`  // percent

	TotalViews int `json:"total_views"`
	AvgViews   int `json:"avg_views"`

	ByType     map[models.RecommendationType]int     `json:"by_type"`
	ByPriority map[models.RecommendationPriority]int `json:"by_priority"`

	AvgHoursToAction int `json:"avg_hours_to_action"`
}

// History returns the window's recommendations (newest first, capped at
// limit) plus stats computed over the whole window.
func (s *RecommendationStore) History(userID uint, windowDays int, typeFilter string, limit int) ([]models.Recommendation, *HistoryStats, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	if limit <= 0 {
		limit = 20
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	q := s.db.Where("user_id = ? AND created_at >= ?", userID, since)
	if typeFilter != "" {
		recType, err := models.ParseRecommendationType(typeFilter)
		if err != nil {
			return nil, nil, NewValidationError("type", err.Error())
		}
		q = q.Where("type = ?", recType)
	}

	var all []models.Recommendation
	if err := q.Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, nil, err
	}

	stats := ComputeHistoryStats(all)
	page := all
	if len(page) > limit {
		page = page[:limit]
	}
	return page, stats, nil
}

// ComputeHistoryStats aggregates counters over a recommendation window.
func ComputeHistoryStats(recs []models.Recommendation) *HistoryStats {
	stats := &HistoryStats{
		ByType:     make(map[models.RecommendationType]int),
		ByPriority: make(map[models.RecommendationPriority]int),
	}

	var actioned int
	var actionedHours float64
	for _, r := range recs {
		stats.Total++
		stats.TotalViews += r.ViewCount
		stats.ByType[r.Type]++
		stats.ByPriority[r.Priority]++

		switch r.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAccepted:
			stats.Accepted++
		case models.StatusDismissed:
			stats.Dismissed++
		case models.StatusActedOn:
			stats.ActedOn++
		case models.StatusShopped:
			stats.Shopped++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusExpired:
			stats.Expired++
		}

		// first user reaction of any kind, whichever path the row took
		if actionTime := earliestStamp(r.AcceptedAt, r.DismissedAt, r.ActedAt, r.ShoppedAt); actionTime != nil {
			actioned++
			actionedHours += actionTime.Sub(r.CreatedAt).Hours()
		}
	}

	if stats.Total > 0 {
		stats.AcceptanceRate = int(math.Round(float64(stats.Accepted) / float64(stats.Total) * 100))
		stats.DismissalRate = int(math.Round(float64(stats.Dismissed) / float64(stats.Total) * 100))
		stats.AvgViews = int(math.Round(float64(stats.TotalViews) / float64(stats.Total)))
	}
	if actioned > 0 {
		stats.AvgHoursToAction = int(math.Round(actionedHours / float64(actioned)))
	}
	return stats
}

func earliestStamp(stamps ...*time.Time) *time.Time {
	var earliest *time.Time
	for _, s := range stamps {
		if s == nil {
			continue
		}
		if earliest == nil || s.Before(*earliest) {
			earliest = s
		}
	}
	return earliest
}
