package state

import (
	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/mission"
	"github.com/neojoin1-cyber/game/internal/upgrade"
)

// SchemaVersion is bumped whenever the snapshot shape changes. Loading a
// snapshot with any other version merges its recognized fields over defaults
// instead of discarding it.
const SchemaVersion = 5

// State is the single persisted player aggregate. All gameplay mutates this
// one value; it is serialized whole after every mutation.
type State struct {
	Version int `json:"version"`

	Score      float64 `json:"score"`
	Treats     int     `json:"treats"`
	Combo      int     `json:"combo"`
	Multiplier int     `json:"multiplier"`
	PetMeter   int     `json:"petMeter"`

	UnlockedCosmetics []string                 `json:"unlockedCosmetics"`
	EquippedCosmetics map[cosmetic.Slot]string `json:"equippedCosmetics"`
	UpgradeLevels     map[string]int           `json:"upgradeLevels"`

	Daily    Daily    `json:"daily"`
	Missions Missions `json:"missions"`
	Settings Settings `json:"settings"`

	IsPremium bool `json:"isPremium"`
}

// Daily tracks the date-keyed login cycle. Dates are device-local
// "2006-01-02" strings; LoginStreak stays within [1, max] once the first
// day has rolled over.
type Daily struct {
	LastPlayDate       string `json:"lastPlayDate"`
	PetsToday          int    `json:"petsToday"`
	LoginStreak        int    `json:"loginStreak"`
	StreakClaimedToday bool   `json:"streakClaimedToday"`
}

// Missions holds the day's generated mission list. List is regenerated
// whenever Date falls behind the current day; missions never carry over.
type Missions struct {
	Date string            `json:"date"`
	List []mission.Mission `json:"list"`
}

type Settings struct {
	SoundEnabled bool `json:"soundEnabled"`
}

// Defaults returns a fresh first-run state.
func Defaults() State {
	return State{
		Version:           SchemaVersion,
		Multiplier:        1,
		UnlockedCosmetics: []string{},
		EquippedCosmetics: map[cosmetic.Slot]string{},
		UpgradeLevels: map[string]int{
			upgrade.KeyClickPower:   0,
			upgrade.KeyComboGrace:   0,
			upgrade.KeyTreatDropCap: 0,
			upgrade.KeyAutoPetter:   0,
		},
		Settings: Settings{SoundEnabled: true},
	}
}

// HasCosmetic reports set membership in the unlocked list.
func (s *State) HasCosmetic(id string) bool {
	for _, have := range s.UnlockedCosmetics {
		if have == id {
			return true
		}
	}
	return false
}

// AddCosmetic appends id to the unlocked set. It is idempotent: re-unlocking
// an owned id is a no-op and reports false.
func (s *State) AddCosmetic(id string) bool {
	if s.HasCosmetic(id) {
		return false
	}
	s.UnlockedCosmetics = append(s.UnlockedCosmetics, id)
	return true
}

// Level returns the persisted level for an upgrade key (0 when absent).
func (s *State) Level(key string) int {
	return s.UpgradeLevels[key]
}

// Clone deep-copies the aggregate so callers can hand snapshots across a
// lock boundary without sharing maps or slices.
func (s *State) Clone() State {
	out := *s
	out.UnlockedCosmetics = append([]string{}, s.UnlockedCosmetics...)
	out.EquippedCosmetics = make(map[cosmetic.Slot]string, len(s.EquippedCosmetics))
	for k, v := range s.EquippedCosmetics {
		out.EquippedCosmetics[k] = v
	}
	out.UpgradeLevels = make(map[string]int, len(s.UpgradeLevels))
	for k, v := range s.UpgradeLevels {
		out.UpgradeLevels[k] = v
	}
	out.Missions.List = append([]mission.Mission{}, s.Missions.List...)
	return out
}

// Normalize clamps against the stock balance values below. A tuned
// balance may use different knobs at runtime; the engine re-derives the
// multiplier from its own tier size on the next tap, so these bounds only
// cull obviously bad snapshots.
const (
	combosPerTier  = 10
	meterMax       = 100
	loginStreakMax = 7
)

// Normalize merges a loaded snapshot over defaults: recognized fields
// survive, unknown upgrade keys and out-of-range levels are clamped, nil
// maps are re-seeded. This is the forward-migration path for any Version.
func Normalize(loaded State) State {
	out := Defaults()

	if loaded.Score > 0 {
		out.Score = loaded.Score
	}
	if loaded.Treats > 0 {
		out.Treats = loaded.Treats
	}
	if loaded.Combo > 0 {
		out.Combo = loaded.Combo
	}
	out.Multiplier = 1 + out.Combo/combosPerTier
	if loaded.PetMeter > 0 {
		out.PetMeter = loaded.PetMeter
	}
	if out.PetMeter > meterMax {
		out.PetMeter = meterMax
	}

	for _, id := range loaded.UnlockedCosmetics {
		if _, ok := cosmetic.ByID(id); ok {
			out.AddCosmetic(id)
		}
	}
	for slot, id := range loaded.EquippedCosmetics {
		if id == "" || !cosmetic.ValidSlot(slot) {
			continue
		}
		c, ok := cosmetic.ByID(id)
		if !ok || c.Layer != slot || !out.HasCosmetic(id) {
			continue
		}
		out.EquippedCosmetics[slot] = id
	}
	for key, level := range loaded.UpgradeLevels {
		if _, ok := upgrade.ByKey(key); ok {
			out.UpgradeLevels[key] = upgrade.ClampLevel(key, level)
		}
	}

	out.Daily = loaded.Daily
	if out.Daily.LoginStreak < 0 {
		out.Daily.LoginStreak = 0
	}
	if out.Daily.LoginStreak > loginStreakMax {
		out.Daily.LoginStreak = loginStreakMax
	}
	out.Missions = loaded.Missions
	if !validMissionList(out.Missions.List) {
		out.Missions = Missions{}
	}
	out.Settings = loaded.Settings
	out.IsPremium = loaded.IsPremium
	out.Version = SchemaVersion
	return out
}

// validMissionList accepts an empty list (nothing generated yet) or a
// full daily set with known types. Anything else is a hand-edited or
// foreign snapshot; dropping it forces the next rollover to regenerate.
func validMissionList(list []mission.Mission) bool {
	if len(list) == 0 {
		return true
	}
	if len(list) != mission.DailyCount {
		return false
	}
	for _, m := range list {
		if !mission.ValidType(m.Type) {
			return false
		}
	}
	return true
}
