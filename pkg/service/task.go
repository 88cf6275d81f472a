package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"maritime-threats-backend/pkg/model"
)

// Discovery runs daily at 05:10 UTC, regardless of the process timezone.
const (
	discoveryRunHour   = 5
	discoveryRunMinute = 10
)

type TaskService struct {
	discovery model.DiscoveryService
	client    *asynq.Client
}

func NewTaskService(discovery model.DiscoveryService, client *asynq.Client) model.TaskService {
	return &TaskService{
		discovery: discovery,
		client:    client,
	}
}

// HandleDiscoverThreats runs a discovery pass and schedules the next daily
// run. A run that finds the lock taken is not retried; the next scheduled
// run covers it.
func (svc *TaskService) HandleDiscoverThreats(ctx context.Context, t *asynq.Task) error {
	var payload model.AsynqDiscoverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	defer func() {
		if err := svc.EnqueueDiscovery(context.WithoutCancel(ctx), NextDiscoveryRun(time.Now())); err != nil {
			log.Printf("Could not schedule next discovery run: %v", err)
		}
	}()

	stored, err := svc.discovery.DiscoverAndStore(ctx)
	if errors.Is(err, ErrDiscoveryRunning) {
		log.Println("Skipping scheduled discovery: a run is already in progress")
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("Scheduled discovery (%s) stored %d threats", payload.TriggeredBy, stored)
	return nil
}

func (svc *TaskService) RegisterTaskHandler(mux *asynq.ServeMux) {
	mux.HandleFunc(model.AsynqDiscoverPayload{}.TypeName(), svc.HandleDiscoverThreats)
}

// EnqueueDiscovery schedules a discovery run at the given time. The task ID
// encodes the run time, so double-scheduling the same run is a no-op.
func (svc *TaskService) EnqueueDiscovery(ctx context.Context, at time.Time) error {
	payload, err := json.Marshal(model.AsynqDiscoverPayload{TriggeredBy: "schedule"})
	if err != nil {
		return err
	}

	task := asynq.NewTask(model.AsynqDiscoverPayload{}.TypeName(), payload)
	taskID := "discover:" + at.UTC().Format(time.RFC3339)

	info, err := svc.client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.TaskID(taskID))
	switch {
	case errors.Is(err, asynq.ErrTaskIDConflict):
		log.Printf("Discovery run %q already scheduled", taskID)
		return nil
	case err != nil:
		return err
	}
	log.Printf("Scheduled discovery run %s for %s", info.ID, at.UTC().Format(time.RFC3339))
	return nil
}

// NextDiscoveryRun returns the first daily run time strictly after now.
func NextDiscoveryRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), discoveryRunHour, discoveryRunMinute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
