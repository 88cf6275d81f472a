package model

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
)

type AsynqDiscoverPayload struct {
	// TriggeredBy records whether the run came from the schedule or an
	// operator, "schedule" or "manual".
	TriggeredBy string `json:"triggered_by"`
}

func (AsynqDiscoverPayload) TypeName() string {
	return "threat:discover"
}

type TaskService interface {
	RegisterTaskHandler(mux *asynq.ServeMux)
	// EnqueueDiscovery schedules a discovery run at the given time. A task
	// for the same time already being queued is not an error.
	EnqueueDiscovery(ctx context.Context, at time.Time) error
}
