package routes

import (
	"github.com/Zalotleh/wellness-hub-sub004/controllers"
	"github.com/Zalotleh/wellness-hub-sub004/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Consumption    *controllers.ConsumptionController
	Score          *controllers.ScoreController
	Recommendation *controllers.RecommendationController
	Device         *controllers.DeviceController
	Realtime       *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/consumption", ctrl.Consumption.LogFood)
		api.GET("/consumption", ctrl.Consumption.ListByDay)
		api.DELETE("/consumption/:id", ctrl.Consumption.DeleteRecord)
		api.GET("/consumption/favorites", ctrl.Consumption.Favorites)

		api.GET("/progress/score", ctrl.Score.GetScore)
		api.POST("/progress/summary/email", ctrl.Score.EmailSummary)

		api.GET("/recommendations/next-action", ctrl.Recommendation.NextAction)
		api.POST("/recommendations/:id/accept", ctrl.Recommendation.Accept)
		api.POST("/recommendations/:id/dismiss", ctrl.Recommendation.Dismiss)
		api.POST("/recommendations/:id/update-status", ctrl.Recommendation.UpdateStatus)
		api.GET("/recommendations/history", ctrl.Recommendation.History)

		api.POST("/devices", ctrl.Device.RegisterDevice)
		api.GET("/ws", ctrl.Realtime.Connect)
	}

	return r
}
