package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-threats-backend/pkg/model"
)

func TestNotifyThreatDeliversCard(t *testing.T) {
	var got messageCard
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	notifier := NewTeamsNotifier(srv.URL)
	err := notifier.NotifyThreat(context.Background(), &model.Threat{
		Title:           "Suez canal blockage",
		Region:          "Red Sea",
		Category:        "Port Disruption",
		Countries:       []string{"Egypt"},
		Description:     "A grounded vessel is blocking transit.",
		PotentialImpact: "Rerouting around the Cape",
		DateMentioned:   "August 25, 2026",
	})
	require.NoError(t, err)

	assert.Equal(t, "MessageCard", got.Type)
	assert.Equal(t, "New Maritime Threat: Suez canal blockage", got.Title)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "A grounded vessel is blocking transit.", got.Sections[0].Text)

	facts := map[string]string{}
	for _, fact := range got.Sections[0].Facts {
		facts[fact.Name] = fact.Value
	}
	assert.Equal(t, "Red Sea", facts["Region"])
	assert.Equal(t, "Egypt", facts["Countries"])
}

func TestNotifyThreatRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	notifier := NewTeamsNotifier(srv.URL)
	err := notifier.NotifyThreat(context.Background(), &model.Threat{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNotifyThreatExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	notifier := NewTeamsNotifier(srv.URL)
	err := notifier.NotifyThreat(context.Background(), &model.Threat{Title: "t"})
	assert.Error(t, err)
}

func TestNotifyThreatUnconfigured(t *testing.T) {
	notifier := NewTeamsNotifier("")
	err := notifier.NotifyThreat(context.Background(), &model.Threat{Title: "t"})
	assert.NoError(t, err)
}
