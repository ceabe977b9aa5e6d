package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neojoin1-cyber/game/internal/config"
	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/state"
	"github.com/neojoin1-cyber/game/internal/telemetry"
	"github.com/neojoin1-cyber/game/internal/upgrade"
)

func newEngineForTest(dice Dice) (*Engine, *state.MemoryStore, *ManualClock) {
	store := state.NewMemoryStore()
	fake := NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	e := NewEngine(config.Default(), store, telemetry.NewMemoryRepository(), fake, dice)
	return e, store, fake
}

func TestTap_TenTapsFromDefaultsScoreExactlyTen(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})

	for i := 1; i <= 10; i++ {
		res := e.Tap(OriginManual)
		assert.Equal(t, float64(1), res.Gained, "tap %d", i)
		assert.Equal(t, i, res.Combo)
	}

	st := e.State()
	assert.Equal(t, float64(10), st.Score)
	assert.Equal(t, 10, st.Combo)
	assert.Equal(t, 2, st.Multiplier)

	// The eleventh tap scores at the new tier.
	res := e.Tap(OriginManual)
	assert.Equal(t, float64(2), res.Gained)
}

func TestTap_MultiplierInvariantHoldsAfterEveryTapAndDecay(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})

	for i := 0; i < 37; i++ {
		e.Tap(OriginManual)
		st := e.State()
		assert.Equal(t, 1+st.Combo/10, st.Multiplier)
	}

	e.ExpireCombo()
	st := e.State()
	assert.Equal(t, 0, st.Combo)
	assert.Equal(t, 1, st.Multiplier)
}

func TestTap_MeterFillsAfterFiftyTapsAndHappyModeDoublesScoring(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})

	var entered bool
	for i := 1; i <= 50; i++ {
		res := e.Tap(OriginManual)
		if res.EnteredHappyMode {
			entered = true
			assert.Equal(t, 50, i, "meter must fill on exactly the 50th tap")
		}
	}
	require.True(t, entered)
	require.True(t, e.HappyMode())
	assert.Equal(t, 100, e.State().PetMeter)

	// Combo is 50 after fifty taps, so the base tier is x6; happy mode
	// doubles it.
	res := e.Tap(OriginManual)
	assert.Equal(t, float64(12), res.Gained)

	e.ExpireHappyMode()
	assert.False(t, e.HappyMode())
	assert.Equal(t, 0, e.State().PetMeter)

	res = e.Tap(OriginManual)
	assert.Equal(t, float64(6), res.Gained)
}

func TestTap_MeterDoesNotAdvanceWhileHappy(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})

	for i := 0; i < 50; i++ {
		e.Tap(OriginManual)
	}
	require.True(t, e.HappyMode())

	for i := 0; i < 10; i++ {
		res := e.Tap(OriginManual)
		assert.False(t, res.EnteredHappyMode)
	}
	assert.Equal(t, 100, e.State().PetMeter)
}

func TestTap_AutoTapsNeverRollTreatsOrRares(t *testing.T) {
	// Dice forced to always hit: any roll an auto tap made would land.
	e, _, _ := newEngineForTest(FixedDice{Result: true})

	for i := 0; i < 200; i++ {
		res := e.Tap(OriginAuto)
		assert.False(t, res.TreatDropped)
		assert.False(t, res.RareDropped)
	}

	st := e.State()
	assert.Equal(t, 0, st.Treats)
	assert.False(t, st.HasCosmetic(cosmetic.IDRareCharm))
	// Score and combo still advanced.
	assert.Greater(t, st.Score, float64(0))
	assert.Equal(t, 200, st.Combo)
}

func TestTap_ManualTreatDropsWithForcedDice(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{Result: true})

	res := e.Tap(OriginManual)
	assert.True(t, res.TreatDropped)
	assert.Equal(t, 1, e.State().Treats)
}

func TestTap_RareCharmOnlyDuringHappyModeAndOnlyOnce(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{Result: true})

	for i := 1; i <= 49; i++ {
		res := e.Tap(OriginManual)
		assert.False(t, res.RareDropped, "no rare roll outside happy mode (tap %d)", i)
	}

	// The meter fills on the 50th tap, so happy mode is already open when
	// that tap's rare roll happens.
	res := e.Tap(OriginManual)
	require.True(t, res.EnteredHappyMode)
	assert.True(t, res.RareDropped)
	st := e.State()
	assert.True(t, st.HasCosmetic(cosmetic.IDRareCharm))

	res = e.Tap(OriginManual)
	assert.False(t, res.RareDropped, "charm must not drop twice")
}

func TestTap_PremiumClickPowerReplacesBase(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})
	require.True(t, e.ActivatePremium(true))

	res := e.Tap(OriginManual)
	assert.Equal(t, float64(10), res.Gained)
}

func TestPurchaseUpgrade_CostCurveAndLevelCap(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})

	cost, ok := e.UpgradeCost(upgrade.KeyClickPower)
	require.True(t, ok)
	assert.Equal(t, 10, cost)

	st := e.State()
	st.Treats = 1000
	e.st = st

	res, ok := e.PurchaseUpgrade(upgrade.KeyClickPower)
	require.True(t, ok)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, 10, res.Cost)
	assert.Equal(t, 990, e.State().Treats)

	cost, _ = e.UpgradeCost(upgrade.KeyClickPower)
	assert.Equal(t, 15, cost)

	// Level cap on combo grace: base 20, x2 per level, 5 levels max.
	e.st.Treats = 1 << 30
	for i := 0; i < 10; i++ {
		e.PurchaseUpgrade(upgrade.KeyComboGrace)
	}
	after := e.State()
	assert.Equal(t, 5, after.Level(upgrade.KeyComboGrace))
}

func TestPurchaseUpgrade_InsufficientTreatsChangesNothing(t *testing.T) {
	e, store, _ := newEngineForTest(FixedDice{})
	savesBefore := store.Saves

	costBefore, _ := e.UpgradeCost(upgrade.KeyAutoPetter)
	_, ok := e.PurchaseUpgrade(upgrade.KeyAutoPetter)
	assert.False(t, ok)

	st := e.State()
	assert.Equal(t, 0, st.Treats)
	assert.Equal(t, 0, st.Level(upgrade.KeyAutoPetter))
	costAfter, _ := e.UpgradeCost(upgrade.KeyAutoPetter)
	assert.Equal(t, costBefore, costAfter)
	assert.Equal(t, savesBefore, store.Saves, "a rejected purchase must not persist")
}

func TestPurchaseUpgrade_UnknownKeyRejected(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})
	e.st.Treats = 1000

	_, ok := e.PurchaseUpgrade("megaLaser")
	assert.False(t, ok)
	assert.Equal(t, 1000, e.State().Treats)
}

func TestCheckUnlocks_IdempotentAtSameScore(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})
	e.st.Score = 5000

	first := e.checkUnlocks()
	assert.NotEmpty(t, first)
	second := e.checkUnlocks()
	assert.Empty(t, second)

	seen := map[string]bool{}
	for _, id := range e.State().UnlockedCosmetics {
		assert.False(t, seen[id], "duplicate cosmetic %s", id)
		seen[id] = true
	}
}

func TestUnlocks_GrantEveryThresholdPassedInOneJump(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})
	e.st.Score = 299999

	e.Tap(OriginManual)

	st := e.State()
	for _, c := range cosmetic.Catalog {
		if c.ScoreGated() {
			assert.True(t, st.HasCosmetic(c.ID), "expected %s unlocked", c.ID)
		}
	}
}

func TestGraceDuration_GrowsWithComboGraceLevel(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})
	assert.Equal(t, time.Second, e.GraceDuration())

	e.st.UpgradeLevels[upgrade.KeyComboGrace] = 3
	assert.Equal(t, 1600*time.Millisecond, e.GraceDuration())
}

func TestAutoRate_LevelPlusPremiumBonus(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})
	assert.Equal(t, 0, e.AutoRate())

	e.st.UpgradeLevels[upgrade.KeyAutoPetter] = 3
	assert.Equal(t, 3, e.AutoRate())

	e.ActivatePremium(true)
	assert.Equal(t, 4, e.AutoRate())
}

func TestActivatePremium_OneWayAndRequiresConfirmation(t *testing.T) {
	e, _, _ := newEngineForTest(FixedDice{})

	assert.False(t, e.ActivatePremium(false))
	assert.False(t, e.State().IsPremium)

	assert.True(t, e.ActivatePremium(true))
	assert.True(t, e.State().IsPremium)

	assert.False(t, e.ActivatePremium(true), "second activation is a no-op")
}
