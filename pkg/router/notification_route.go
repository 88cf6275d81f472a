package router

import (
	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/controller"
)

func RegisterNotificationRoutes(app *bootstrap.Application, controller *controller.NotificationController) {
	app.Engine.GET("/api/notifications", controller.StreamNotifications)
}
