package telemetry

import "time"

// EventType names the domain events the core emits. The presentation layer
// (toasts, floating text, particle bursts) subscribes to these instead of
// being called into directly.
type EventType string

const (
	EventFloatingText     EventType = "floating_text"
	EventParticleBurst    EventType = "particle_burst"
	EventTreatDrop        EventType = "treat_drop"
	EventRareDrop         EventType = "rare_drop"
	EventCosmeticUnlocked EventType = "cosmetic_unlocked"
	EventCosmeticEquipped EventType = "cosmetic_equipped"
	EventHappyModeStarted EventType = "happy_mode_started"
	EventHappyModeEnded   EventType = "happy_mode_ended"
	EventMissionCompleted EventType = "mission_completed"
	EventMissionClaimed   EventType = "mission_claimed"
	EventMissionsReset    EventType = "missions_reset"
	EventStreakAdvanced   EventType = "streak_advanced"
	EventStreakClaimed    EventType = "streak_claimed"
	EventUpgradePurchased EventType = "upgrade_purchased"
	EventPremiumActivated EventType = "premium_activated"
	EventLoggedIn         EventType = "logged_in"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
