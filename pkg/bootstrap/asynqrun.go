package bootstrap

import (
	"log"

	"github.com/hibiken/asynq"
)

func RunAsynq(app *Application, services *Services, errorChan chan error) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: app.Cache.Options().Addr},
		asynq.Config{Concurrency: 1},
	)

	mux := asynq.NewServeMux()

	services.TaskService.RegisterTaskHandler(mux)

	if err := srv.Run(mux); err != nil {
		log.Println(err)
		errorChan <- err
	}
}
