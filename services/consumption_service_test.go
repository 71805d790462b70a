package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
)

// flakyDeleteStore fails a configured number of deletes before behaving.
type flakyDeleteStore struct {
	*memScoreStore
	failures int
}

func (f *flakyDeleteStore) Delete(userID uint, date time.Time) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("delete unavailable")
	}
	return f.memScoreStore.Delete(userID, date)
}

func TestRefreshScoreFallsBackToInvalidateOnFailure(t *testing.T) {
	store := &flakyDeleteStore{memScoreStore: newMemScoreStore()}
	source := newMemConsumptionSource()
	date := day("2025-03-10")
	source.add(1, date, recordIn(models.Breakfast, foodWith("kale", models.Immunity)))

	cache := NewScoreCacheService(store, source)
	svc := NewConsumptionService(nil, cache, nil)

	stale, err := cache.GetOrCompute(1, date)
	if err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	// the day changes underneath the cached row, and the rebuild's delete
	// fails once
	source.add(1, date, recordIn(models.Lunch, foodWith("salmon", models.Regeneration)))
	store.failures = 1

	svc.refreshScore(1, date)

	fresh, err := cache.GetOrCompute(1, date)
	if err != nil {
		t.Fatalf("GetOrCompute after refresh: %v", err)
	}
	if fresh.OverallScore == stale.OverallScore {
		t.Fatalf("score still %d after refresh; the stale row survived the failed rebuild",
			fresh.OverallScore)
	}
	if fresh.MealsLogged != 2 {
		t.Errorf("MealsLogged = %d, want 2", fresh.MealsLogged)
	}
}
