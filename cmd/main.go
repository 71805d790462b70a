package main

import (
	"log"

	"github.com/Zalotleh/wellness-hub-sub004/config"
	"github.com/Zalotleh/wellness-hub-sub004/controllers"
	"github.com/Zalotleh/wellness-hub-sub004/routes"
	"github.com/Zalotleh/wellness-hub-sub004/services"
	"github.com/Zalotleh/wellness-hub-sub004/utils"
)

func main() {
	config.InitDB()
	utils.InitMailer()

	hub := services.NewScoreHub()

	cache := services.NewScoreCacheService(
		services.NewGormScoreStore(config.DB),
		services.NewGormConsumptionSource(config.DB),
	)
	consumption := services.NewConsumptionService(config.DB, cache, hub)

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push disabled: %v", err)
		push = nil
	}

	engine := services.NewRecommendationService(config.DB, consumption, push, hub)
	store := services.NewRecommendationStore(config.DB)

	r := routes.SetupRouter(routes.Controllers{
		Consumption:    controllers.NewConsumptionController(consumption),
		Score:          controllers.NewScoreController(cache),
		Recommendation: controllers.NewRecommendationController(engine, store),
		Device:         controllers.NewDeviceController(push),
		Realtime:       controllers.NewRealtimeController(hub),
	})
	r.Run(":8080")
}
