package cosmetic

// Slot is the layer a cosmetic attaches to. A cat wears at most one
// cosmetic per slot.
type Slot string

const (
	SlotGlasses   Slot = "glasses"
	SlotScarf     Slot = "scarf"
	SlotHat       Slot = "hat"
	SlotAccessory Slot = "accessory"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotGlasses, SlotScarf, SlotHat, SlotAccessory}

// ValidSlot reports whether s names a known slot.
func ValidSlot(s Slot) bool {
	switch s {
	case SlotGlasses, SlotScarf, SlotHat, SlotAccessory:
		return true
	}
	return false
}

// Cosmetic is a static catalog entry. ScoreReq == 0 means the item is not
// score gated; Condition describes how it unlocks instead.
type Cosmetic struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Layer     Slot    `json:"layer"`
	ScoreReq  float64 `json:"score_req,omitempty"`
	Condition string  `json:"condition,omitempty"`
	Glyph     string  `json:"glyph"`
}

// ScoreGated reports whether the item unlocks through the score scan.
func (c Cosmetic) ScoreGated() bool { return c.ScoreReq > 0 }

// Special cosmetic IDs granted outside the score scan.
const (
	IDMissionCrown = "c9"  // all three daily missions completed
	IDRareCharm    = "c10" // happy-mode rare drop
)

// Catalog is the fixed cosmetic set, in unlock-scan order.
var Catalog = []Cosmetic{
	{ID: "c1", Name: "Round Glasses", Layer: SlotGlasses, ScoreReq: 1000, Glyph: "👓"},
	{ID: "c2", Name: "Sunglasses", Layer: SlotGlasses, ScoreReq: 5000, Glyph: "🕶️"},
	{ID: "c3", Name: "Smart Goggles", Layer: SlotGlasses, ScoreReq: 20000, Glyph: "🥽"},
	{ID: "c4", Name: "Winter Scarf", Layer: SlotScarf, ScoreReq: 50000, Glyph: "🧣"},
	{ID: "c5", Name: "Red Ribbon Scarf", Layer: SlotScarf, ScoreReq: 100000, Glyph: "🎀"},
	{ID: "c6", Name: "Hip Beanie", Layer: SlotHat, ScoreReq: 150000, Glyph: "🧢"},
	{ID: "c7", Name: "Bow Tie", Layer: SlotAccessory, ScoreReq: 200000, Glyph: "🎀"},
	{ID: "c8", Name: "Name Tag", Layer: SlotAccessory, ScoreReq: 300000, Glyph: "🏷️"},
	{ID: IDMissionCrown, Name: "Tiny Crown", Layer: SlotHat, Condition: "complete all daily missions", Glyph: "👑"},
	{ID: IDRareCharm, Name: "Rare Charm", Layer: SlotAccessory, Condition: "happy mode rare drop", Glyph: "💎"},
}

// ByID looks up a catalog entry.
func ByID(id string) (Cosmetic, bool) {
	for _, c := range Catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Cosmetic{}, false
}

// BySlot returns the catalog entries for one slot, in catalog order.
func BySlot(s Slot) []Cosmetic {
	var out []Cosmetic
	for _, c := range Catalog {
		if c.Layer == s {
			out = append(out, c)
		}
	}
	return out
}
