package game

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/neojoin1-cyber/game/internal/config"
	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/mission"
	"github.com/neojoin1-cyber/game/internal/state"
	"github.com/neojoin1-cyber/game/internal/telemetry"
	"github.com/neojoin1-cyber/game/internal/upgrade"
)

// Origin distinguishes a player tap from an auto-petter tick. Automated
// taps score and advance missions like manual ones but never roll treat or
// rare drops and never emit per-tap visuals.
type Origin string

const (
	OriginManual Origin = "manual"
	OriginAuto   Origin = "auto"
)

// Engine owns the player aggregate and applies every gameplay mutation.
// It is not safe for concurrent use; Session serializes access the way the
// browser event loop did.
type Engine struct {
	bal    config.Balance
	st     state.State
	store  state.Store
	events telemetry.Repository
	clock  Clock
	dice   Dice

	happyActive bool
}

func NewEngine(bal config.Balance, store state.Store, events telemetry.Repository, clock Clock, dice Dice) *Engine {
	if clock == nil {
		clock = WallClock{}
	}
	if dice == nil {
		dice = NewDice()
	}
	if events == nil {
		events = telemetry.NewMemoryRepository()
	}
	return &Engine{
		bal:    bal,
		st:     store.Load(),
		store:  store,
		events: events,
		clock:  clock,
		dice:   dice,
	}
}

// State returns a deep copy of the aggregate for reads.
func (e *Engine) State() state.State { return e.st.Clone() }

// HappyMode reports whether the happy window is open.
func (e *Engine) HappyMode() bool { return e.happyActive }

// EffectiveMultiplier is the multiplier applied to the next tap's score.
func (e *Engine) EffectiveMultiplier() int {
	m := e.st.Multiplier
	if e.happyActive {
		m *= e.bal.HappyMultiplier
	}
	return m
}

// TapResult reports what a single tap did, for the presentation boundary.
type TapResult struct {
	Origin            Origin            `json:"origin"`
	Gained            float64           `json:"gained"`
	Combo             int               `json:"combo"`
	Multiplier        int               `json:"multiplier"`
	TreatDropped      bool              `json:"treat_dropped"`
	RareDropped       bool              `json:"rare_dropped"`
	EnteredHappyMode  bool              `json:"entered_happy_mode"`
	Unlocked          []string          `json:"unlocked,omitempty"`
	CompletedMissions []mission.Mission `json:"completed_missions,omitempty"`
	Grace             time.Duration     `json:"-"`
}

// Tap applies one petting action. The score multiplier is taken from the
// combo value before this tap's increment; the stored multiplier is then
// re-derived from the incremented combo, so ten taps from a fresh state
// score exactly ten and the eleventh scores at tier two.
func (e *Engine) Tap(origin Origin) TapResult {
	res := TapResult{Origin: origin}

	scoringMult := 1 + e.st.Combo/e.bal.CombosPerTier
	if e.happyActive {
		scoringMult *= e.bal.HappyMultiplier
	}

	e.st.Combo++
	e.st.Multiplier = 1 + e.st.Combo/e.bal.CombosPerTier
	e.st.Daily.PetsToday++

	res.CompletedMissions = append(res.CompletedMissions,
		e.advanceMissions(mission.TypeTap, 1, false)...)
	res.CompletedMissions = append(res.CompletedMissions,
		e.advanceMissions(mission.TypeCombo, e.st.Combo, true)...)

	if !e.happyActive {
		e.st.PetMeter += e.bal.MeterStepPerTap
		if e.st.PetMeter >= e.bal.MeterMax {
			res.EnteredHappyMode = true
			res.CompletedMissions = append(res.CompletedMissions, e.startHappyMode()...)
		}
	}

	clickPower := e.bal.BaseClickPower
	if e.st.IsPremium {
		clickPower = e.bal.PremiumClickPower
	}
	clickPower += e.st.Level(upgrade.KeyClickPower)

	res.Gained = float64(clickPower * scoringMult)
	e.st.Score += res.Gained

	res.Unlocked = e.checkUnlocks()

	if origin == OriginManual {
		if e.happyActive && !e.st.HasCosmetic(cosmetic.IDRareCharm) &&
			e.dice.Chance(e.bal.RareDropChance) {
			e.unlockCosmetic(cosmetic.IDRareCharm)
			res.RareDropped = true
			res.Unlocked = append(res.Unlocked, cosmetic.IDRareCharm)
			e.record(telemetry.EventRareDrop, telemetry.EventMetadata{"id": cosmetic.IDRareCharm})
		}

		if e.dice.Chance(e.treatChance()) {
			e.st.Treats++
			res.TreatDropped = true
			e.record(telemetry.EventTreatDrop, telemetry.EventMetadata{"treats": e.st.Treats})
		}

		e.record(telemetry.EventFloatingText, telemetry.EventMetadata{"text": res.Gained})
		e.record(telemetry.EventParticleBurst, telemetry.EventMetadata{"happy": e.happyActive})
	}

	res.Combo = e.st.Combo
	res.Multiplier = e.st.Multiplier
	res.Grace = e.GraceDuration()

	e.persist()
	return res
}

func (e *Engine) treatChance() float64 {
	return e.bal.TreatChanceBase +
		e.bal.TreatChancePerLevel*float64(e.st.Level(upgrade.KeyTreatDropCap))
}

// GraceDuration is how long the current combo survives without a tap.
func (e *Engine) GraceDuration() time.Duration {
	ms := e.bal.ComboGraceBaseMs + e.bal.ComboGracePerLevelMs*e.st.Level(upgrade.KeyComboGrace)
	return time.Duration(ms) * time.Millisecond
}

// ExpireCombo is the decay-timer callback: the combo chain breaks.
func (e *Engine) ExpireCombo() {
	if e.st.Combo == 0 {
		return
	}
	e.st.Combo = 0
	e.st.Multiplier = 1
	e.persist()
}

// startHappyMode opens the happy window. The meter is pinned to full for
// the duration; re-entry while active is impossible because Tap stops
// advancing the meter.
func (e *Engine) startHappyMode() []mission.Mission {
	e.happyActive = true
	e.st.PetMeter = e.bal.MeterMax
	e.record(telemetry.EventHappyModeStarted, telemetry.EventMetadata{
		"seconds": e.bal.HappyModeSeconds,
	})
	return e.advanceMissions(mission.TypeHappy, 1, false)
}

// HappyDuration is the fixed length of the happy window.
func (e *Engine) HappyDuration() time.Duration {
	return time.Duration(e.bal.HappyModeSeconds) * time.Second
}

// ExpireHappyMode is the window-timer callback: the meter resets to zero.
func (e *Engine) ExpireHappyMode() {
	if !e.happyActive {
		return
	}
	e.happyActive = false
	e.st.PetMeter = 0
	e.record(telemetry.EventHappyModeEnded, nil)
	e.persist()
}

// UpgradeCost returns the treat price of the next level for key.
func (e *Engine) UpgradeCost(key string) (int, bool) {
	u, ok := upgrade.ByKey(key)
	if !ok {
		return 0, false
	}
	return u.Cost(e.st.Level(key)), true
}

// PurchaseResult reports a successful upgrade purchase.
type PurchaseResult struct {
	Key             string `json:"key"`
	NewLevel        int    `json:"new_level"`
	Cost            int    `json:"cost"`
	AutoRateChanged bool   `json:"auto_rate_changed"`
}

// PurchaseUpgrade deducts the current cost and raises the level by one.
// Insufficient treats, an unknown key, or a maxed level are soft rejections
// with no state change.
func (e *Engine) PurchaseUpgrade(key string) (PurchaseResult, bool) {
	u, ok := upgrade.ByKey(key)
	if !ok {
		return PurchaseResult{}, false
	}
	level := e.st.Level(key)
	if level >= u.MaxLevel {
		return PurchaseResult{}, false
	}
	cost := u.Cost(level)
	if e.st.Treats < cost {
		return PurchaseResult{}, false
	}

	e.st.Treats -= cost
	e.st.UpgradeLevels[key] = level + 1
	e.record(telemetry.EventUpgradePurchased, telemetry.EventMetadata{
		"key": key, "level": level + 1, "cost": cost,
	})
	e.persist()

	return PurchaseResult{
		Key:             key,
		NewLevel:        level + 1,
		Cost:            cost,
		AutoRateChanged: key == upgrade.KeyAutoPetter,
	}, true
}

// AutoRate is the auto-petter tick rate in taps per second.
func (e *Engine) AutoRate() int {
	rate := e.st.Level(upgrade.KeyAutoPetter)
	if e.st.IsPremium {
		rate++
	}
	return rate
}

// ActivatePremium flips the one-way premium flag once the external payment
// boundary confirms. It reports whether anything changed.
func (e *Engine) ActivatePremium(confirmed bool) bool {
	if !confirmed || e.st.IsPremium {
		return false
	}
	e.st.IsPremium = true
	e.record(telemetry.EventPremiumActivated, nil)
	e.persist()
	return true
}

// SetSoundEnabled persists the sound toggle.
func (e *Engine) SetSoundEnabled(on bool) {
	if e.st.Settings.SoundEnabled == on {
		return
	}
	e.st.Settings.SoundEnabled = on
	e.persist()
}

func (e *Engine) advanceMissions(typ mission.Type, amount int, absolute bool) []mission.Mission {
	completed := mission.Advance(e.st.Missions.List, typ, amount, absolute)
	for _, m := range completed {
		e.record(telemetry.EventMissionCompleted, telemetry.EventMetadata{
			"id": m.ID, "title": m.Title,
		})
	}
	if len(completed) > 0 && mission.AllCompleted(e.st.Missions.List) {
		// Crown unlock fires once; set membership guards repeats.
		e.unlockCosmetic(cosmetic.IDMissionCrown)
	}
	return completed
}

func (e *Engine) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if err := e.events.RecordEvent(t, md); err != nil {
		log.WithError(err).WithField("event", t).Warn("record event")
	}
}

// persist writes the whole aggregate. Storage failure is logged and
// swallowed; the worst case on next load is falling back to defaults.
func (e *Engine) persist() {
	if err := e.store.Save(e.st); err != nil {
		log.WithError(err).Error("save state")
	}
}
