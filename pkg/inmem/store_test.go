package inmem

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-threats-backend/pkg/model"
)

func newThreat(id, region, category string, countries []string, createdAt time.Time) *model.Threat {
	return &model.Threat{
		ID:        id,
		Title:     "threat " + id,
		Region:    region,
		Category:  category,
		Countries: countries,
		CreatedAt: createdAt,
	}
}

func seedStore(t *testing.T) model.InMemoryStore {
	t.Helper()
	store := NewInMemoryStore()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	threats := []*model.Threat{
		newThreat("t1", "Red Sea", "Piracy", []string{"Yemen"}, base),
		newThreat("t2", "Red Sea", "Military Conflict", []string{"Yemen", "Egypt"}, base.Add(1*time.Hour)),
		newThreat("t3", "South China Sea", "Military Conflict", []string{"China"}, base.Add(2*time.Hour)),
		newThreat("t4", "Persian Gulf", "Sanctions", []string{"Iran"}, base.Add(3*time.Hour)),
	}
	require.NoError(t, store.CreateBatchThreats(threats))
	return store
}

func TestGetThreatsNewestFirst(t *testing.T) {
	store := seedStore(t)

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, threats, 4)
	assert.Equal(t, "t4", threats[0].ID)
	assert.Equal(t, "t1", threats[3].ID)
}

func TestGetThreatsPagination(t *testing.T) {
	store := seedStore(t)

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, threats, 2)
	assert.Equal(t, "t2", threats[0].ID)
	assert.Equal(t, "t1", threats[1].ID)

	// limit past the end is clamped
	threats, _, err = store.GetThreats(&model.SearchThreatsRequest{Offset: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, threats, 1)

	_, _, err = store.GetThreats(&model.SearchThreatsRequest{Offset: 4})
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestGetThreatsByRegion(t *testing.T) {
	store := seedStore(t)

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{Region: "Red Sea"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, threats, 2)
	assert.Equal(t, "t2", threats[0].ID)
	assert.Equal(t, "t1", threats[1].ID)
}

func TestGetThreatsByCountry(t *testing.T) {
	store := seedStore(t)

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{Country: "Yemen"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, threats, 2)

	threats, total, err = store.GetThreats(&model.SearchThreatsRequest{Country: "China"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "t3", threats[0].ID)
}

func TestGetThreatsCombinedFilters(t *testing.T) {
	store := seedStore(t)

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{
		Region:   "Red Sea",
		Category: "Military Conflict",
		Country:  "Egypt",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "t2", threats[0].ID)

	_, _, err = store.GetThreats(&model.SearchThreatsRequest{
		Region:  "Red Sea",
		Country: "China",
	})
	assert.ErrorIs(t, err, ErrNoThreatsFound)
}

func TestGetThreatsEmptyStore(t *testing.T) {
	store := NewInMemoryStore()

	_, _, err := store.GetThreats(&model.SearchThreatsRequest{})
	assert.ErrorIs(t, err, ErrNoThreatsFound)

	_, _, err = store.GetThreats(&model.SearchThreatsRequest{Region: "Red Sea"})
	assert.ErrorIs(t, err, ErrNoThreatsFound)
}

func TestCreateThreatUpdatesRecency(t *testing.T) {
	store := seedStore(t)

	id, err := store.CreateThreat(newThreat("t5", "Black Sea", "Port Disruption",
		[]string{"Ukraine"}, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "t5", id)

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, "t5", threats[0].ID)
}

func TestGetThreatsDefaultLimit(t *testing.T) {
	store := NewInMemoryStore()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		_, err := store.CreateThreat(newThreat(
			fmt.Sprintf("t%02d", i), "Red Sea", "Piracy", nil,
			base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	threats, total, err := store.GetThreats(&model.SearchThreatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, threats, 10)
	assert.Equal(t, "t24", threats[0].ID)
}
