package router

import (
	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/controller"
	"maritime-threats-backend/pkg/middleware"
)

func RegisterThreatRoutes(app *bootstrap.Application, controller *controller.ThreatController) {
	r := app.Engine.Group("/api/threats")

	r.GET("", controller.ListThreats)
	r.GET("/search", controller.SearchThreats)
	r.GET("/:id", controller.GetThreatByID)
	r.POST("", middleware.APIKeyMiddleware(app.Env.API.SecretKey), controller.CreateThreat)
}
