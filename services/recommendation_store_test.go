package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
)

var allStatuses = []models.RecommendationStatus{
	models.StatusPending,
	models.StatusAccepted,
	models.StatusDismissed,
	models.StatusActedOn,
	models.StatusShopped,
	models.StatusCompleted,
	models.StatusExpired,
}

func TestValidTransitionClosure(t *testing.T) {
	legal := map[[2]models.RecommendationStatus]bool{
		{models.StatusPending, models.StatusAccepted}:  true,
		{models.StatusPending, models.StatusDismissed}: true,
		{models.StatusPending, models.StatusActedOn}:   true,
		{models.StatusPending, models.StatusShopped}:   true,
		{models.StatusPending, models.StatusCompleted}: true,
		{models.StatusPending, models.StatusExpired}:   true,
		{models.StatusActedOn, models.StatusCompleted}: true,
		{models.StatusActedOn, models.StatusDismissed}: true,
		{models.StatusShopped, models.StatusCompleted}: true,
		{models.StatusShopped, models.StatusDismissed}: true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legal[[2]models.RecommendationStatus{from, to}]
			if got := ValidTransition(from, to); got != want {
				t.Errorf("ValidTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range allStatuses {
		exits := 0
		for _, to := range allStatuses {
			if ValidTransition(from, to) {
				exits++
			}
		}
		if from.Terminal() && exits != 0 {
			t.Errorf("%s is terminal but has %d exits", from, exits)
		}
		if !from.Terminal() && exits == 0 {
			t.Errorf("%s is not terminal but has no exits", from)
		}
	}
}

func pendingRec(expiresAt time.Time) *models.Recommendation {
	return &models.Recommendation{
		Status:    models.StatusPending,
		ExpiresAt: expiresAt,
	}
}

func TestApplyTransitionAccept(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	rec := pendingRec(now.Add(time.Hour))

	if err := ApplyTransition(rec, models.StatusAccepted, now, TransitionOptions{}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if rec.Status != models.StatusAccepted {
		t.Errorf("status = %s, want ACCEPTED", rec.Status)
	}
	if rec.AcceptedAt == nil || !rec.AcceptedAt.Equal(now) {
		t.Errorf("AcceptedAt = %v, want %v", rec.AcceptedAt, now)
	}
}

func TestApplyTransitionDismissTwice(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	rec := pendingRec(now.Add(time.Hour))

	if err := ApplyTransition(rec, models.StatusDismissed, now, TransitionOptions{DismissReason: "not today"}); err != nil {
		t.Fatalf("first dismiss: %v", err)
	}
	if rec.DismissCount != 1 || rec.DismissReason != "not today" {
		t.Errorf("after dismiss: count=%d reason=%q", rec.DismissCount, rec.DismissReason)
	}

	err := ApplyTransition(rec, models.StatusDismissed, now.Add(time.Minute), TransitionOptions{})
	if err == nil {
		t.Fatal("second dismiss must conflict")
	}
	var conflict *StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %T, want *StateConflictError", err)
	}
	if conflict.Current != models.StatusDismissed {
		t.Errorf("conflict.Current = %s, want DISMISSED", conflict.Current)
	}
	if !strings.Contains(err.Error(), "already dismissed") {
		t.Errorf("error = %q, want it to say already dismissed", err.Error())
	}
	// the failed retry must not double-count
	if rec.DismissCount != 1 {
		t.Errorf("DismissCount = %d after failed retry, want 1", rec.DismissCount)
	}
}

func TestApplyTransitionLazyExpiry(t *testing.T) {
	expiry := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	rec := pendingRec(expiry)
	later := expiry.Add(2 * time.Hour)

	err := ApplyTransition(rec, models.StatusAccepted, later, TransitionOptions{})
	if err == nil {
		t.Fatal("accepting a stale pending row must conflict")
	}
	var conflict *StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %T, want *StateConflictError", err)
	}
	if conflict.Current != models.StatusExpired {
		t.Errorf("conflict.Current = %s, want EXPIRED", conflict.Current)
	}
	// the row itself was flipped so the expiry persists
	if rec.Status != models.StatusExpired {
		t.Errorf("status = %s, want EXPIRED after lazy flip", rec.Status)
	}
	if rec.ExpiredAt == nil {
		t.Error("ExpiredAt not stamped on lazy expiry")
	}
}

func TestApplyTransitionExplicitExpireOfStaleRow(t *testing.T) {
	expiry := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	rec := pendingRec(expiry)
	later := expiry.Add(time.Hour)

	if err := ApplyTransition(rec, models.StatusExpired, later, TransitionOptions{}); err != nil {
		t.Fatalf("explicit expire of a stale row must succeed: %v", err)
	}
	if rec.Status != models.StatusExpired {
		t.Errorf("status = %s, want EXPIRED", rec.Status)
	}
}

func TestApplyTransitionLinkedIDs(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	rec := pendingRec(now.Add(time.Hour))
	if err := ApplyTransition(rec, models.StatusActedOn, now, TransitionOptions{LinkedRecipeID: "rcp_42"}); err != nil {
		t.Fatalf("act on: %v", err)
	}
	if rec.LinkedRecipeID != "rcp_42" || rec.ActedAt == nil {
		t.Errorf("acted: linked=%q actedAt=%v", rec.LinkedRecipeID, rec.ActedAt)
	}

	if err := ApplyTransition(rec, models.StatusCompleted, now.Add(time.Hour), TransitionOptions{LinkedMealLogID: "log_7"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if rec.LinkedMealLogID != "log_7" || rec.CompletedAt == nil {
		t.Errorf("completed: linked=%q completedAt=%v", rec.LinkedMealLogID, rec.CompletedAt)
	}
}

func TestComputeHistoryStats(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	accepted := base.Add(4 * time.Hour)
	actedFirst := base.Add(1 * time.Hour)
	dismissedLater := base.Add(2 * time.Hour)
	acted := base.Add(6 * time.Hour)

	recs := []models.Recommendation{
		{
			Type: models.RecTypeRecipe, Priority: models.PriorityCritical,
			Status: models.StatusAccepted, ViewCount: 3, AcceptedAt: &accepted,
		},
		{
			// acted on at +1h, dismissed at +2h: reaction time is the earlier stamp
			Type: models.RecTypeRecipe, Priority: models.PriorityHigh,
			Status: models.StatusDismissed, ViewCount: 1,
			ActedAt: &actedFirst, DismissedAt: &dismissedLater,
		},
		{
			Type: models.RecTypeWorkflowStep, Priority: models.PriorityMedium,
			Status: models.StatusActedOn, ViewCount: 2, ActedAt: &acted,
		},
		{
			Type: models.RecTypeMealPlan, Priority: models.PriorityMedium,
			Status: models.StatusPending, ViewCount: 2,
		},
		{
			Type: models.RecTypeFoodSuggestion, Priority: models.PriorityLow,
			Status: models.StatusExpired,
		},
	}
	for i := range recs {
		recs[i].CreatedAt = base
	}

	stats := ComputeHistoryStats(recs)

	if stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
	if stats.Accepted != 1 || stats.Dismissed != 1 || stats.ActedOn != 1 ||
		stats.Pending != 1 || stats.Expired != 1 || stats.Shopped != 0 {
		t.Errorf("status counts = %+v", stats)
	}
	if stats.AcceptanceRate != 20 || stats.DismissalRate != 20 {
		t.Errorf("rates = %d/%d, want 20/20", stats.AcceptanceRate, stats.DismissalRate)
	}
	if stats.TotalViews != 8 {
		t.Errorf("TotalViews = %d, want 8", stats.TotalViews)
	}
	if stats.ByType[models.RecTypeRecipe] != 2 {
		t.Errorf("ByType[RECIPE] = %d, want 2", stats.ByType[models.RecTypeRecipe])
	}
	if stats.ByPriority[models.PriorityMedium] != 2 {
		t.Errorf("ByPriority[MEDIUM] = %d, want 2", stats.ByPriority[models.PriorityMedium])
	}
	// (4h + 1h + 6h) / 3 actioned rows rounds to 4
	if stats.AvgHoursToAction != 4 {
		t.Errorf("AvgHoursToAction = %d, want 4", stats.AvgHoursToAction)
	}
}

func TestComputeHistoryStatsEmpty(t *testing.T) {
	stats := ComputeHistoryStats(nil)
	if stats.Total != 0 || stats.AcceptanceRate != 0 || stats.AvgHoursToAction != 0 {
		t.Errorf("empty stats = %+v, want all zero", stats)
	}
}
