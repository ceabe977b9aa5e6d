package upgrade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost_MatchesGeometricCurve(t *testing.T) {
	for _, u := range Catalog {
		for level := 0; level <= u.MaxLevel; level++ {
			want := int(math.Floor(float64(u.BaseCost) * math.Pow(u.CostMult, float64(level))))
			assert.Equal(t, want, u.Cost(level), "%s level %d", u.Key, level)
		}
	}
}

func TestCost_KnownValues(t *testing.T) {
	click, ok := ByKey(KeyClickPower)
	require.True(t, ok)
	assert.Equal(t, 10, click.Cost(0))
	assert.Equal(t, 15, click.Cost(1))
	assert.Equal(t, 22, click.Cost(2))
	assert.Equal(t, 33, click.Cost(3))

	auto, ok := ByKey(KeyAutoPetter)
	require.True(t, ok)
	assert.Equal(t, 50, auto.Cost(0))
	assert.Equal(t, 125, auto.Cost(1))
	assert.Equal(t, 312, auto.Cost(2))
}

func TestCost_NegativeLevelTreatedAsZero(t *testing.T) {
	u, _ := ByKey(KeyComboGrace)
	assert.Equal(t, u.Cost(0), u.Cost(-5))
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, 0, ClampLevel(KeyClickPower, -1))
	assert.Equal(t, 7, ClampLevel(KeyClickPower, 7))
	assert.Equal(t, 50, ClampLevel(KeyClickPower, 9000))
	assert.Equal(t, 0, ClampLevel("megaLaser", 3))
}

func TestByKey_Unknown(t *testing.T) {
	_, ok := ByKey("nope")
	assert.False(t, ok)
}
