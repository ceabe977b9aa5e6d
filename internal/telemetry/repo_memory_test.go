package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndGetEvents(t *testing.T) {
	r := NewMemoryRepository()

	require.NoError(t, r.RecordEvent(EventTreatDrop, EventMetadata{"treats": 1}))
	require.NoError(t, r.RecordEvent(EventFloatingText, EventMetadata{"text": "+5"}))

	all, err := r.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, EventTreatDrop, all[0].Type)
	assert.Contains(t, all[0].Metadata, "treats")
}

func TestGetEvents_TypeFilter(t *testing.T) {
	r := NewMemoryRepository()
	require.NoError(t, r.RecordEvent(EventTreatDrop, nil))
	require.NoError(t, r.RecordEvent(EventRareDrop, nil))
	require.NoError(t, r.RecordEvent(EventTreatDrop, nil))

	got, err := r.GetEvents(time.Time{}, []EventType{EventTreatDrop})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, ev := range got {
		assert.Equal(t, EventTreatDrop, ev.Type)
	}
}

func TestGetEvents_SinceFilter(t *testing.T) {
	r := NewMemoryRepository()
	require.NoError(t, r.RecordEvent(EventTreatDrop, nil))

	future := time.Now().Add(time.Hour)
	got, err := r.GetEvents(future, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordEvent_BoundedWindow(t *testing.T) {
	r := NewMemoryRepository()
	r.cap = 10

	for i := 0; i < 25; i++ {
		require.NoError(t, r.RecordEvent(EventFloatingText, nil))
	}

	got, err := r.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, 16, got[0].ID, "oldest events are dropped first")
}

func TestClear(t *testing.T) {
	r := NewMemoryRepository()
	require.NoError(t, r.RecordEvent(EventTreatDrop, nil))
	require.NoError(t, r.Clear())

	got, err := r.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
