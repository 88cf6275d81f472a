package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-threats-backend/pkg/model"
	"maritime-threats-backend/pkg/service"
)

type fakeDiscoveryService struct {
	stored int
	err    error
}

func (f *fakeDiscoveryService) DiscoverAndStore(context.Context) (int, error) {
	return f.stored, f.err
}

// unreachableInspector points at a closed port; queue lookups fail and the
// controller falls back to its degraded responses.
func unreachableInspector() *asynq.Inspector {
	return asynq.NewInspector(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})
}

func newDiscoveryRouter(discovery model.DiscoveryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	ctrl := NewDiscoveryController(discovery, unreachableInspector())
	engine.GET("/", ctrl.Root)
	engine.GET("/health", ctrl.Health)
	engine.GET("/api/discover-threats", ctrl.DiscoverThreats)
	engine.GET("/api/scheduler/status", ctrl.SchedulerStatus)
	return engine
}

func TestRoot(t *testing.T) {
	engine := newDiscoveryRouter(&fakeDiscoveryService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Msg, "Maritime Threats API")
}

func TestHealthWithoutScheduler(t *testing.T) {
	engine := newDiscoveryRouter(&fakeDiscoveryService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "stopped", resp.Scheduler)
}

func TestDiscoverThreats(t *testing.T) {
	engine := newDiscoveryRouter(&fakeDiscoveryService{stored: 4})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discover-threats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.DiscoveryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Stored)
}

func TestDiscoverThreatsAlreadyRunning(t *testing.T) {
	engine := newDiscoveryRouter(&fakeDiscoveryService{err: service.ErrDiscoveryRunning})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discover-threats", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSchedulerStatusQueueUnavailable(t *testing.T) {
	engine := newDiscoveryRouter(&fakeDiscoveryService{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/scheduler/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.SchedulerStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unknown", resp.Status)
	assert.Empty(t, resp.Jobs)
}
