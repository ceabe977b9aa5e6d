package game

import (
	"github.com/neojoin1-cyber/game/internal/cosmetic"
	"github.com/neojoin1-cyber/game/internal/mission"
	"github.com/neojoin1-cyber/game/internal/state"
	"github.com/neojoin1-cyber/game/internal/telemetry"
)

// checkUnlocks grants every score-gated cosmetic whose requirement the
// current score meets, in catalog order. Already-owned items are skipped,
// so the scan is idempotent.
func (e *Engine) checkUnlocks() []string {
	var unlocked []string
	for _, c := range cosmetic.Catalog {
		if !c.ScoreGated() || e.st.Score < c.ScoreReq {
			continue
		}
		if e.unlockCosmetic(c.ID) {
			unlocked = append(unlocked, c.ID)
		}
	}
	return unlocked
}

func (e *Engine) unlockCosmetic(id string) bool {
	if !e.st.AddCosmetic(id) {
		return false
	}
	c, _ := cosmetic.ByID(id)
	e.record(telemetry.EventCosmeticUnlocked, telemetry.EventMetadata{
		"id": id, "name": c.Name,
	})
	return true
}

// EquipCosmetic wears id on slot, or takes the slot's item off when id is
// empty. Equipping requires ownership and a matching layer.
func (e *Engine) EquipCosmetic(slot cosmetic.Slot, id string) bool {
	if !cosmetic.ValidSlot(slot) {
		return false
	}
	if id == "" {
		if _, worn := e.st.EquippedCosmetics[slot]; !worn {
			return true
		}
		delete(e.st.EquippedCosmetics, slot)
		e.record(telemetry.EventCosmeticEquipped, telemetry.EventMetadata{
			"slot": string(slot), "id": "",
		})
		e.persist()
		return true
	}

	c, ok := cosmetic.ByID(id)
	if !ok || c.Layer != slot || !e.st.HasCosmetic(id) {
		return false
	}
	e.st.EquippedCosmetics[slot] = id
	e.record(telemetry.EventCosmeticEquipped, telemetry.EventMetadata{
		"slot": string(slot), "id": id,
	})
	e.persist()
	return true
}

// DayResult reports what a daily rollover changed.
type DayResult struct {
	NewDay        bool `json:"new_day"`
	LoginStreak   int  `json:"login_streak"`
	StreakClaimed bool `json:"streak_claimed"`
	MissionsReset bool `json:"missions_reset"`
	AutoRate      int  `json:"auto_rate"`
}

// StartDay runs the local-date rollover: advance or reset the login
// streak, clear today's counters, and regenerate missions when their date
// is stale. Calling it again on the same day is a no-op.
func (e *Engine) StartDay() DayResult {
	today := localDate(e.clock.Now())
	res := DayResult{LoginStreak: e.st.Daily.LoginStreak, AutoRate: e.AutoRate()}

	if e.st.Daily.LastPlayDate != today {
		res.NewDay = true
		yesterday := localDate(e.clock.Now().AddDate(0, 0, -1))
		if e.st.Daily.LastPlayDate == yesterday {
			// min-style so an out-of-range loaded streak snaps back to
			// the cap instead of surviving forever.
			streak := e.st.Daily.LoginStreak + 1
			if streak > e.bal.StreakMaxDays {
				streak = e.bal.StreakMaxDays
			}
			e.st.Daily.LoginStreak = streak
		} else {
			e.st.Daily.LoginStreak = 1
		}
		e.st.Daily.LastPlayDate = today
		e.st.Daily.PetsToday = 0
		e.st.Daily.StreakClaimedToday = false
		res.LoginStreak = e.st.Daily.LoginStreak
		e.record(telemetry.EventStreakAdvanced, telemetry.EventMetadata{
			"streak": e.st.Daily.LoginStreak,
		})
	}

	if e.st.Missions.Date != today {
		e.st.Missions = state.Missions{Date: today, List: mission.Generate()}
		res.MissionsReset = true
		e.record(telemetry.EventMissionsReset, telemetry.EventMetadata{"date": today})
	}

	res.StreakClaimed = e.st.Daily.StreakClaimedToday
	if res.NewDay || res.MissionsReset {
		e.persist()
	}
	return res
}

// ClaimStreak pays out the daily login bonus, once per local day.
func (e *Engine) ClaimStreak() (int, bool) {
	e.StartDay()
	if e.st.Daily.StreakClaimedToday || e.st.Daily.LoginStreak == 0 {
		return 0, false
	}
	reward := e.bal.StreakRewardPerDay * e.st.Daily.LoginStreak
	e.st.Treats += reward
	e.st.Daily.StreakClaimedToday = true
	e.record(telemetry.EventStreakClaimed, telemetry.EventMetadata{
		"streak": e.st.Daily.LoginStreak, "reward": reward,
	})
	e.persist()
	return reward, true
}

// ClaimMission pays out a completed mission's treat reward. Unknown,
// unfinished, and already-claimed missions are rejected.
func (e *Engine) ClaimMission(id int) (int, bool) {
	for i := range e.st.Missions.List {
		m := &e.st.Missions.List[i]
		if m.ID != id {
			continue
		}
		if !m.Completed || m.Claimed {
			return 0, false
		}
		m.Claimed = true
		e.st.Treats += m.Reward
		e.record(telemetry.EventMissionClaimed, telemetry.EventMetadata{
			"id": m.ID, "reward": m.Reward,
		})
		e.persist()
		return m.Reward, true
	}
	return 0, false
}

// Missions returns a copy of today's mission list.
func (e *Engine) Missions() []mission.Mission {
	out := make([]mission.Mission, len(e.st.Missions.List))
	copy(out, e.st.Missions.List)
	return out
}
