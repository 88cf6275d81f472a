package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"maritime-threats-backend/pkg/model"
	"maritime-threats-backend/pkg/service"
)

type DiscoveryController struct {
	discovery model.DiscoveryService
	inspector *asynq.Inspector
}

func NewDiscoveryController(discovery model.DiscoveryService, inspector *asynq.Inspector) *DiscoveryController {
	return &DiscoveryController{
		discovery: discovery,
		inspector: inspector,
	}
}

// Root godoc
// @Summary Welcome message
// @Tags System
// @Produce json
// @Success 200 {object} model.Response
// @Router / [get]
func (ctrl *DiscoveryController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.Response{
		Msg: "Welcome to the Maritime Threats API",
	})
}

// Health godoc
// @Summary Health check
// @Description Reports process health and the next scheduled discovery run
// @Tags System
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (ctrl *DiscoveryController) Health(c *gin.Context) {
	resp := model.HealthResponse{
		Status:    "healthy",
		Scheduler: "stopped",
	}

	if job, ok := ctrl.nextDiscoveryJob(); ok {
		resp.Scheduler = "running"
		resp.NextRun = job.NextRunTime
	}

	c.JSON(http.StatusOK, resp)
}

// DiscoverThreats godoc
// @Summary Trigger threat discovery
// @Description Runs the discovery agent immediately. Protected by the API key.
// @Tags Discovery
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} model.DiscoveryResponse
// @Failure 409 {object} model.Response "A discovery run is already in progress"
// @Failure 500 {object} model.Response "Discovery failed"
// @Router /api/discover-threats [get]
func (ctrl *DiscoveryController) DiscoverThreats(c *gin.Context) {
	stored, err := ctrl.discovery.DiscoverAndStore(c)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrDiscoveryRunning) {
			status = http.StatusConflict
		}
		c.AbortWithStatusJSON(status, model.Response{
			Msg: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.DiscoveryResponse{
		Msg:    "Threat discovery completed successfully.",
		Stored: stored,
	})
}

// SchedulerStatus godoc
// @Summary Scheduler status
// @Description Lists the scheduled discovery runs
// @Tags Discovery
// @Produce json
// @Success 200 {object} model.SchedulerStatusResponse
// @Router /api/scheduler/status [get]
func (ctrl *DiscoveryController) SchedulerStatus(c *gin.Context) {
	tasks, err := ctrl.inspector.ListScheduledTasks("default")
	if err != nil {
		c.JSON(http.StatusOK, model.SchedulerStatusResponse{
			Status: "unknown",
			Jobs:   []model.ScheduledJob{},
		})
		return
	}

	jobs := make([]model.ScheduledJob, 0, len(tasks))
	for _, task := range tasks {
		jobs = append(jobs, model.ScheduledJob{
			ID:          task.ID,
			Type:        task.Type,
			Queue:       task.Queue,
			NextRunTime: task.NextProcessAt.UTC().Format(time.RFC3339),
		})
	}

	status := "stopped"
	if len(jobs) > 0 {
		status = "running"
	}

	c.JSON(http.StatusOK, model.SchedulerStatusResponse{
		Status: status,
		Jobs:   jobs,
	})
}

func (ctrl *DiscoveryController) nextDiscoveryJob() (model.ScheduledJob, bool) {
	tasks, err := ctrl.inspector.ListScheduledTasks("default")
	if err != nil {
		return model.ScheduledJob{}, false
	}
	for _, task := range tasks {
		if task.Type == (model.AsynqDiscoverPayload{}).TypeName() {
			return model.ScheduledJob{
				ID:          task.ID,
				Type:        task.Type,
				Queue:       task.Queue,
				NextRunTime: task.NextProcessAt.UTC().Format(time.RFC3339),
			}, true
		}
	}
	return model.ScheduledJob{}, false
}
