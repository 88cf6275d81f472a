package router

import (
	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/controller"
	"maritime-threats-backend/pkg/middleware"
)

func RegisterDiscoveryRoutes(app *bootstrap.Application, controller *controller.DiscoveryController) {
	app.Engine.GET("/", controller.Root)
	app.Engine.GET("/health", controller.Health)

	r := app.Engine.Group("/api")
	r.GET("/discover-threats", middleware.APIKeyMiddleware(app.Env.API.SecretKey), controller.DiscoverThreats)
	r.GET("/scheduler/status", controller.SchedulerStatus)
}
