package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"maritime-threats-backend/pkg/dispatcher"
	"maritime-threats-backend/pkg/inmem"
	"maritime-threats-backend/pkg/model"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ListenHost is the fixed any-address binding for the HTTP listener.
const ListenHost = "0.0.0.0"

// ErrBind is returned when the listening socket cannot be acquired, e.g.
// the port is already in use or the process may not bind it.
var ErrBind = errors.New("bind failed")

type AppOpts func(app *Application)

type Application struct {
	Env            *Env
	Conn           *gorm.DB
	Cache          *redis.Client
	Engine         *gin.Engine
	RedisLock      *redislock.Client
	AsynqClient    *asynq.Client
	AsynqInspector *asynq.Inspector
	Store          model.InMemoryStore
	Dispatcher     *dispatcher.Dispatcher
}

func App(opts ...AppOpts) *Application {
	env, err := NewEnv()
	if err != nil {
		log.Fatalf("Could not resolve configuration: %v", err)
	}

	// Set timezone before anything touches the clock.
	tz, err := time.LoadLocation(env.Server.TimeZone)
	if err != nil {
		log.Fatal(err)
	}
	time.Local = tz

	db := NewDB(env)
	cache := NewCache(env)
	engine := gin.Default()
	locker := NewRdLock(cache)
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cache.Options().Addr})
	asynqInspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cache.Options().Addr})

	store := inmem.NewInMemoryStore()
	disp := dispatcher.NewDispatcher(store)
	go disp.Start()

	app := &Application{
		Env:            env,
		Conn:           db,
		Cache:          cache,
		Engine:         engine,
		RedisLock:      locker,
		AsynqClient:    asynqClient,
		AsynqInspector: asynqInspector,
		Store:          store,
		Dispatcher:     disp,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Listen acquires the listening socket on ListenHost:port. The listener is
// acquired exactly once per process and released on shutdown.
func Listen(port uint16) (net.Listener, error) {
	addr := fmt.Sprintf("%s:%d", ListenHost, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBind, addr, err)
	}
	return ln, nil
}

// Run starts the background services and the HTTP server, then blocks until
// a termination signal arrives or a fatal error occurs. Bind and service
// failures terminate the process with a non-zero exit status; a signal
// triggers a graceful shutdown with a 30 second grace period.
func (app *Application) Run(services *Services) {
	ln, err := Listen(app.Env.Server.Port)
	if err != nil {
		log.Fatalf("Could not start server: %v", err)
	}

	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: app.Engine,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Server is listening on %s:%d", ListenHost, app.Env.Server.Port)
		serverErrors <- srv.Serve(ln)
	}()

	serviceErrors := services.Run()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Error starting server: %v", err)

	case err := <-serviceErrors:
		log.Fatalf("Error running services: %v", err)

	case <-shutdown:
		log.Println("Shutting down the server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := services.Shutdown(ctx); err != nil {
			log.Printf("Could not stop services gracefully: %v", err)
		}

		err := srv.Shutdown(ctx)
		if err != nil {
			log.Printf("Could not stop server gracefully: %v", err)
			err = srv.Close()
			if err != nil {
				log.Fatalf("Could not stop http server: %v", err)
			}
		}
	}
}
