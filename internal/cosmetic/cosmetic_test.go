package cosmetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ScoreGatesAreAscending(t *testing.T) {
	prev := float64(0)
	for _, c := range Catalog {
		if !c.ScoreGated() {
			continue
		}
		assert.Greater(t, c.ScoreReq, prev, "%s", c.ID)
		prev = c.ScoreReq
	}
}

func TestCatalog_IDsUniqueAndSlotsValid(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Catalog {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.True(t, ValidSlot(c.Layer), "%s has invalid slot %s", c.ID, c.Layer)
	}
}

func TestConditionGatedItems(t *testing.T) {
	crown, ok := ByID(IDMissionCrown)
	require.True(t, ok)
	assert.False(t, crown.ScoreGated())
	assert.Equal(t, SlotHat, crown.Layer)

	charm, ok := ByID(IDRareCharm)
	require.True(t, ok)
	assert.False(t, charm.ScoreGated())
	assert.Equal(t, SlotAccessory, charm.Layer)
}

func TestBySlot(t *testing.T) {
	for _, c := range BySlot(SlotGlasses) {
		assert.Equal(t, SlotGlasses, c.Layer)
	}
	assert.Empty(t, BySlot("tail"))
}

func TestByID_Unknown(t *testing.T) {
	_, ok := ByID("c99")
	assert.False(t, ok)
}
