package main

import (
	"context"
	"log"
	"time"

	"maritime-threats-backend/pkg/agent"
	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/service"
)

func main() {
	app := bootstrap.App()

	threatService := service.NewThreatService(app.Dispatcher, app.Conn, app.Cache, app.RedisLock)
	finder := agent.New(app.Env)
	notifier := service.NewTeamsNotifier(app.Env.Teams.WebhookURL)
	discoveryService := service.NewDiscoveryService(finder, threatService, notifier, app.RedisLock)
	taskService := service.NewTaskService(discoveryService, app.AsynqClient)

	services := &bootstrap.Services{
		ThreatService:    threatService,
		DiscoveryService: discoveryService,
		TaskService:      taskService,
	}

	// Seed the daily schedule. Re-enqueueing after each run keeps the
	// chain going; an already scheduled run is a no-op.
	if err := taskService.EnqueueDiscovery(context.Background(), service.NextDiscoveryRun(time.Now())); err != nil {
		log.Fatalf("Could not schedule discovery: %v", err)
	}

	errorChan := make(chan error)
	go bootstrap.RunAsynq(app, services, errorChan)

	log.Fatal(<-errorChan)
}
