package router

import (
	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/controller"
	"maritime-threats-backend/pkg/middleware"
	"maritime-threats-backend/pkg/model"
)

type Services struct {
	ThreatService    model.ThreatService
	DiscoveryService model.DiscoveryService
	TaskService      model.TaskService
}

func RegisterRoutes(app *bootstrap.Application, services *Services) {
	// Register Global Middleware
	cors := middleware.CORSMiddleware()
	app.Engine.Use(cors)

	// Register Threat Routes
	threatController := controller.NewThreatController(services.ThreatService)
	RegisterThreatRoutes(app, threatController)

	// Register Discovery Routes
	discoveryController := controller.NewDiscoveryController(services.DiscoveryService, app.AsynqInspector)
	RegisterDiscoveryRoutes(app, discoveryController)

	// Register Notification Routes
	notificationController := controller.NewNotificationController(app.Cache, model.ThreatStream)
	RegisterNotificationRoutes(app, notificationController)
}
