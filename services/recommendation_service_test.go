package services

import (
	"testing"
	"time"

	"github.com/Zalotleh/wellness-hub-sub004/models"
)

func TestNextActionPastDayGeneratesNothing(t *testing.T) {
	db := testGormDB(t)
	user := models.User{Email: "eater@example.com", Password: "x", Timezone: "UTC"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	cache := NewScoreCacheService(NewGormScoreStore(db), NewGormConsumptionSource(db))
	consumption := NewConsumptionService(db, cache, nil)
	engine := NewRecommendationService(db, consumption, nil, nil)

	past := day("2020-01-06")
	record := models.ConsumptionRecord{
		UserID:   user.ID,
		Date:     past,
		MealSlot: models.Breakfast,
		Source:   models.SourceManual,
		Items:    []models.FoodItem{foodWith("kale", models.Immunity)},
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("create record: %v", err)
	}

	// repeated calls for a long-gone day must not mint born-expired rows
	for i := 0; i < 2; i++ {
		rec, cached, err := engine.NextAction(user.ID, past)
		if err != nil {
			t.Fatalf("call %d: %v", i+1, err)
		}
		if rec != nil || cached {
			t.Fatalf("call %d returned %+v (cached=%v), want none", i+1, rec, cached)
		}
	}

	var count int64
	db.Model(&models.Recommendation{}).Count(&count)
	if count != 0 {
		t.Errorf("persisted %d recommendations for a past day, want 0", count)
	}
}

func TestNextActionGeneratesAndCachesForToday(t *testing.T) {
	db := testGormDB(t)
	user := models.User{Email: "eater@example.com", Password: "x", Timezone: "UTC"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	cache := NewScoreCacheService(NewGormScoreStore(db), NewGormConsumptionSource(db))
	consumption := NewConsumptionService(db, cache, nil)
	engine := NewRecommendationService(db, consumption, nil, nil)

	if _, err := consumption.LogFood(user.ID, time.Now(), string(models.Breakfast), "", []FoodItemRequest{
		{Name: "kale", Benefits: []FoodBenefitRequest{{System: string(models.Immunity)}}},
	}); err != nil {
		t.Fatalf("log food: %v", err)
	}

	first, cached, err := engine.NextAction(user.ID, time.Now())
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first == nil || cached {
		t.Fatalf("first call = %+v (cached=%v), want a fresh recommendation", first, cached)
	}
	if first.ViewCount != 1 {
		t.Errorf("fresh top ViewCount = %d, want 1", first.ViewCount)
	}

	var afterFirst int64
	db.Model(&models.Recommendation{}).Count(&afterFirst)

	second, cached, err := engine.NextAction(user.ID, time.Now())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second == nil || !cached {
		t.Fatalf("second call = %+v (cached=%v), want the pending row back", second, cached)
	}
	if second.Priority != models.PriorityCritical {
		t.Errorf("second call priority = %s, want the CRITICAL row first", second.Priority)
	}

	var afterSecond int64
	db.Model(&models.Recommendation{}).Count(&afterSecond)
	if afterSecond != afterFirst {
		t.Errorf("rows grew %d -> %d on a cache hit, want no regeneration", afterFirst, afterSecond)
	}
}
