package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-threats-backend/pkg/model"
)

func TestNextDiscoveryRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the daily run",
			now:  time.Date(2026, 8, 26, 3, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 26, 5, 10, 0, 0, time.UTC),
		},
		{
			name: "after the daily run",
			now:  time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 27, 5, 10, 0, 0, time.UTC),
		},
		{
			name: "exactly at the run time rolls to tomorrow",
			now:  time.Date(2026, 8, 26, 5, 10, 0, 0, time.UTC),
			want: time.Date(2026, 8, 27, 5, 10, 0, 0, time.UTC),
		},
		{
			name: "month rollover",
			now:  time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 9, 1, 5, 10, 0, 0, time.UTC),
		},
		{
			name: "non-UTC clock",
			now:  time.Date(2026, 8, 26, 8, 0, 0, 0, time.FixedZone("GST", 4*3600)),
			want: time.Date(2026, 8, 26, 5, 10, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDiscoveryRun(tt.now)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.True(t, got.After(tt.now.UTC()))
		})
	}
}

type stubDiscovery struct {
	stored int
	err    error
	calls  int
}

func (d *stubDiscovery) DiscoverAndStore(context.Context) (int, error) {
	d.calls++
	return d.stored, d.err
}

// newTaskService wires a client against an unreachable redis; enqueues from
// the handler fail and are only logged.
func newTaskService(discovery model.DiscoveryService) *TaskService {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})
	return NewTaskService(discovery, client).(*TaskService)
}

func discoverTask(t *testing.T) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(model.AsynqDiscoverPayload{TriggeredBy: "schedule"})
	require.NoError(t, err)
	return asynq.NewTask(model.AsynqDiscoverPayload{}.TypeName(), payload)
}

func TestHandleDiscoverThreats(t *testing.T) {
	discovery := &stubDiscovery{stored: 3}
	svc := newTaskService(discovery)

	err := svc.HandleDiscoverThreats(context.Background(), discoverTask(t))
	require.NoError(t, err)
	assert.Equal(t, 1, discovery.calls)
}

func TestHandleDiscoverThreatsLockHeld(t *testing.T) {
	discovery := &stubDiscovery{err: ErrDiscoveryRunning}
	svc := newTaskService(discovery)

	// a run already in progress is not an error for the queue
	err := svc.HandleDiscoverThreats(context.Background(), discoverTask(t))
	assert.NoError(t, err)
}

func TestHandleDiscoverThreatsFailure(t *testing.T) {
	discovery := &stubDiscovery{err: fmt.Errorf("agent unavailable")}
	svc := newTaskService(discovery)

	err := svc.HandleDiscoverThreats(context.Background(), discoverTask(t))
	assert.Error(t, err)
}

func TestHandleDiscoverThreatsBadPayload(t *testing.T) {
	discovery := &stubDiscovery{}
	svc := newTaskService(discovery)

	task := asynq.NewTask(model.AsynqDiscoverPayload{}.TypeName(), []byte("not json"))
	err := svc.HandleDiscoverThreats(context.Background(), task)
	assert.Error(t, err)
	assert.Zero(t, discovery.calls)
}
