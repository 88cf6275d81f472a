package main

import (
	"fmt"
	"net/http"
	"net/http/httputil"

	"maritime-threats-backend/docs"
	"maritime-threats-backend/pkg/agent"
	"maritime-threats-backend/pkg/bootstrap"
	"maritime-threats-backend/pkg/router"
	"maritime-threats-backend/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

func SetUpSwagger(spec *swag.Spec, app *bootstrap.Application) {
	spec.BasePath = "/"
	spec.Host = fmt.Sprintf("%s:%d", "localhost", app.Env.Server.Port)
	spec.Schemes = []string{"http", "https"}
	spec.Title = "Maritime Geopolitical Threats API"
	spec.Description = "Backend API serving maritime geopolitical threat intelligence"
}

func ReverseProxy() gin.HandlerFunc {
	return func(c *gin.Context) {
		director := func(req *http.Request) {
			originalURL := *c.Request.URL

			req.URL.Scheme = "http"
			req.URL.Host = c.Request.Host

			// '/docs/' maps to the swagger index, everything else below
			// '/docs' is substituted into '/swagger'
			if originalURL.Path == "/docs/" {
				req.URL.Path = "/swagger/index.html"
			} else {
				req.URL.Path = "/swagger" + originalURL.Path[len("/docs"):]
			}
		}
		proxy := &httputil.ReverseProxy{Director: director}
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}

func SetUpAsynqMon(app *bootstrap.Application) {
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: asynq.RedisClientOpt{Addr: app.Cache.Options().Addr},
	})

	monitoringGroup := app.Engine.Group(h.RootPath())
	monitoringGroup.Any("/*action", gin.WrapH(h))
}

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Init config
	app := bootstrap.App()

	// Init services
	threatService := service.NewThreatService(app.Dispatcher, app.Conn, app.Cache, app.RedisLock)
	finder := agent.New(app.Env)
	notifier := service.NewTeamsNotifier(app.Env.Teams.WebhookURL)
	discoveryService := service.NewDiscoveryService(finder, threatService, notifier, app.RedisLock)
	taskService := service.NewTaskService(discoveryService, app.AsynqClient)

	services := &router.Services{
		ThreatService:    threatService,
		DiscoveryService: discoveryService,
		TaskService:      taskService,
	}

	// Init routes
	router.RegisterRoutes(app, services)

	// setup swagger
	SetUpSwagger(docs.SwaggerInfo, app)
	SetUpAsynqMon(app)
	app.Engine.GET("/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerfiles.Handler,
			ginSwagger.DeepLinking(true),
		),
	)
	app.Engine.GET("/docs/*any", ReverseProxy())

	app.Run(&bootstrap.Services{
		ThreatService:    threatService,
		DiscoveryService: discoveryService,
		TaskService:      taskService,
	})
}
