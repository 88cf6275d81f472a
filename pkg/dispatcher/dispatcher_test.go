package dispatcher

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-threats-backend/pkg/inmem"
	"maritime-threats-backend/pkg/model"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	d := NewDispatcher(inmem.NewInMemoryStore())
	go d.Start()
	return d
}

func await[T IResult](t *testing.T, ch chan IResult) T {
	t.Helper()
	select {
	case res := <-ch:
		typed, ok := res.(T)
		require.True(t, ok, "unexpected response type %T", res)
		return typed
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dispatcher response")
		panic("unreachable")
	}
}

func TestCreateThreatPayloadRoundtrip(t *testing.T) {
	req := &CreateThreatRequest{
		Threat: &model.Threat{
			ID:        "t1",
			Title:     "Houthi attacks on commercial vessels",
			Region:    "Red Sea",
			Countries: []string{"Yemen"},
			Category:  "Military Conflict",
			Version:   7,
		},
	}

	values, err := req.Payload()
	require.NoError(t, err)
	require.Contains(t, values, "payload")

	decoded := &CreateThreatRequest{}
	require.NoError(t, decoded.FromPayload(values))
	assert.Equal(t, req.Threat, decoded.Threat)
}

func TestFromPayloadMissingField(t *testing.T) {
	req := &CreateThreatRequest{}
	err := req.FromPayload(map[string]interface{}{"other": "x"})
	assert.Error(t, err)
}

func TestDispatcherCreateAndGet(t *testing.T) {
	d := newDispatcher(t)

	createID := uuid.NewString()
	createCh := make(chan IResult, 1)
	d.ResponseChan.Store(createID, createCh)
	defer d.ResponseChan.Delete(createID)

	d.RequestChan <- &CreateThreatRequest{
		Request: Request{RequestID: createID},
		Threat: &model.Threat{
			ID:        "t1",
			Region:    "Red Sea",
			Category:  "Piracy",
			CreatedAt: time.Now(),
		},
	}

	createRes := await[*CreateThreatResponse](t, createCh)
	require.NoError(t, createRes.Error())
	assert.Equal(t, "t1", createRes.ThreatID)

	getID := uuid.NewString()
	getCh := make(chan IResult, 1)
	d.ResponseChan.Store(getID, getCh)
	defer d.ResponseChan.Delete(getID)

	d.RequestChan <- &GetThreatsRequest{
		Request:              Request{RequestID: getID},
		SearchThreatsRequest: &model.SearchThreatsRequest{Region: "Red Sea"},
	}

	getRes := await[*GetThreatsResponse](t, getCh)
	require.NoError(t, getRes.Error())
	assert.Equal(t, 1, getRes.Total)
	require.Len(t, getRes.Threats, 1)
	assert.Equal(t, "t1", getRes.Threats[0].ID)
}

func TestDispatcherBatchCreate(t *testing.T) {
	d := newDispatcher(t)

	batchID := uuid.NewString()
	batchCh := make(chan IResult, 1)
	d.ResponseChan.Store(batchID, batchCh)
	defer d.ResponseChan.Delete(batchID)

	now := time.Now()
	d.RequestChan <- &CreateBatchThreatsRequest{
		Request: Request{RequestID: batchID},
		Threats: []*model.Threat{
			{ID: "t1", Region: "Red Sea", CreatedAt: now},
			{ID: "t2", Region: "Persian Gulf", CreatedAt: now.Add(time.Minute)},
		},
	}

	batchRes := await[*CreateThreatResponse](t, batchCh)
	require.NoError(t, batchRes.Error())

	getID := uuid.NewString()
	getCh := make(chan IResult, 1)
	d.ResponseChan.Store(getID, getCh)
	defer d.ResponseChan.Delete(getID)

	d.RequestChan <- &GetThreatsRequest{
		Request:              Request{RequestID: getID},
		SearchThreatsRequest: &model.SearchThreatsRequest{},
	}

	getRes := await[*GetThreatsResponse](t, getCh)
	require.NoError(t, getRes.Error())
	assert.Equal(t, 2, getRes.Total)
}

// A create whose caller registered no response channel must not block the
// dispatch loop.
func TestDispatcherFireAndForget(t *testing.T) {
	d := newDispatcher(t)

	d.RequestChan <- &CreateThreatRequest{
		Request: Request{RequestID: uuid.NewString()},
		Threat:  &model.Threat{ID: "t1", CreatedAt: time.Now()},
	}

	getID := uuid.NewString()
	getCh := make(chan IResult, 1)
	d.ResponseChan.Store(getID, getCh)
	defer d.ResponseChan.Delete(getID)

	d.RequestChan <- &GetThreatsRequest{
		Request:              Request{RequestID: getID},
		SearchThreatsRequest: &model.SearchThreatsRequest{},
	}

	getRes := await[*GetThreatsResponse](t, getCh)
	require.NoError(t, getRes.Error())
	assert.Equal(t, 1, getRes.Total)
}
