// Package dispatcher funnels every mutation of the in-memory threat store
// through a single goroutine; reads run concurrently against memdb
// snapshots. Callers correlate responses via per-request channels.
package dispatcher

import (
	"log"
	"sync/atomic"

	"maritime-threats-backend/pkg/model"
	"maritime-threats-backend/pkg/syncmap"
)

type Dispatcher struct {
	Running      atomic.Bool
	RequestChan  chan interface{}
	ResponseChan *syncmap.Map[IResult]
	Store        model.InMemoryStore
}

func NewDispatcher(store model.InMemoryStore) *Dispatcher {
	return &Dispatcher{
		RequestChan:  make(chan interface{}),
		ResponseChan: &syncmap.Map[IResult]{},
		Store:        store,
	}
}

func (d *Dispatcher) IsRunning() bool {
	return d.Running.Load()
}

func (d *Dispatcher) handleCreateThreatRequest(req *CreateThreatRequest) {
	threatID, err := d.Store.CreateThreat(req.Threat)

	if d.ResponseChan.Exists(req.RequestID) {
		d.ResponseChan.Load(req.RequestID) <- &CreateThreatResponse{
			Response: Response{RequestID: req.RequestID},
			ThreatID: threatID,
			Err:      err,
		}
	}
}

func (d *Dispatcher) handleCreateBatchThreatsRequest(req *CreateBatchThreatsRequest) {
	err := d.Store.CreateBatchThreats(req.Threats)

	if d.ResponseChan.Exists(req.RequestID) {
		d.ResponseChan.Load(req.RequestID) <- &CreateThreatResponse{
			Response: Response{RequestID: req.RequestID},
			Err:      err,
		}
	}
}

func (d *Dispatcher) handleGetThreatsRequest(req *GetThreatsRequest) {
	threats, total, err := d.Store.GetThreats(req.SearchThreatsRequest)

	if d.ResponseChan.Exists(req.RequestID) {
		d.ResponseChan.Load(req.RequestID) <- &GetThreatsResponse{
			Response: Response{RequestID: req.RequestID},
			Threats:  threats,
			Total:    total,
			Err:      err,
		}
	}
}

func (d *Dispatcher) Start() {
	d.Running.Store(true)
	log.Println("Dispatcher started")
	for req := range d.RequestChan {
		switch r := req.(type) {
		case *CreateBatchThreatsRequest:
			d.handleCreateBatchThreatsRequest(r)
		case *CreateThreatRequest:
			// arrives via the redis stream subscription
			d.handleCreateThreatRequest(r)
		case *GetThreatsRequest:
			go d.handleGetThreatsRequest(r)
		}
	}
}
