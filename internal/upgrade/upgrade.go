package upgrade

import "math"

// Upgrade keys. These are the map keys persisted in the player snapshot, so
// they must stay stable across schema versions.
const (
	KeyClickPower   = "clickPower"
	KeyComboGrace   = "comboGrace"
	KeyTreatDropCap = "treatDropCap"
	KeyAutoPetter   = "autoPetter"
)

// Upgrade is a static catalog entry with a geometric cost curve.
type Upgrade struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Desc     string  `json:"desc"`
	BaseCost int     `json:"base_cost"`
	CostMult float64 `json:"cost_mult"`
	MaxLevel int     `json:"max_level"`
}

// Cost returns the treat price of the next level: floor(base * mult^level).
func (u Upgrade) Cost(level int) int {
	if level < 0 {
		level = 0
	}
	return int(math.Floor(float64(u.BaseCost) * math.Pow(u.CostMult, float64(level))))
}

// Catalog is the fixed upgrade set, in shop display order.
var Catalog = []Upgrade{
	{Key: KeyClickPower, Name: "Petting Power", Desc: "+1 base score per tap", BaseCost: 10, CostMult: 1.5, MaxLevel: 50},
	{Key: KeyComboGrace, Name: "Combo Grace", Desc: "+0.2s before the combo breaks", BaseCost: 20, CostMult: 2.0, MaxLevel: 5},
	{Key: KeyTreatDropCap, Name: "Treat Sense", Desc: "+1% treat drop chance", BaseCost: 30, CostMult: 2.0, MaxLevel: 9},
	{Key: KeyAutoPetter, Name: "Auto Petter", Desc: "+1 automatic pet per second", BaseCost: 50, CostMult: 2.5, MaxLevel: 10},
}

// ByKey looks up a catalog entry.
func ByKey(key string) (Upgrade, bool) {
	for _, u := range Catalog {
		if u.Key == key {
			return u, true
		}
	}
	return Upgrade{}, false
}

// ClampLevel bounds a persisted level to [0, MaxLevel] for the given key.
// Unknown keys clamp to 0 so a stale snapshot cannot smuggle levels in.
func ClampLevel(key string, level int) int {
	u, ok := ByKey(key)
	if !ok || level < 0 {
		return 0
	}
	if level > u.MaxLevel {
		return u.MaxLevel
	}
	return level
}
