package config

// Balance holds gameplay tuning. Defaults reproduce the shipped balance;
// a YAML file can override individual values for playtesting.
type Balance struct {
	// Tap scoring
	BaseClickPower    int `yaml:"base_click_power" json:"base_click_power"`
	PremiumClickPower int `yaml:"premium_click_power" json:"premium_click_power"`
	CombosPerTier     int `yaml:"combos_per_tier" json:"combos_per_tier"`

	// Combo decay debounce
	ComboGraceBaseMs     int `yaml:"combo_grace_base_ms" json:"combo_grace_base_ms"`
	ComboGracePerLevelMs int `yaml:"combo_grace_per_level_ms" json:"combo_grace_per_level_ms"`

	// Pet meter / happy mode
	MeterStepPerTap  int `yaml:"meter_step_per_tap" json:"meter_step_per_tap"`
	MeterMax         int `yaml:"meter_max" json:"meter_max"`
	HappyModeSeconds int `yaml:"happy_mode_seconds" json:"happy_mode_seconds"`
	HappyMultiplier  int `yaml:"happy_multiplier" json:"happy_multiplier"`

	// Drops (manual taps only)
	TreatChanceBase     float64 `yaml:"treat_chance_base" json:"treat_chance_base"`
	TreatChancePerLevel float64 `yaml:"treat_chance_per_level" json:"treat_chance_per_level"`
	RareDropChance      float64 `yaml:"rare_drop_chance" json:"rare_drop_chance"`

	// Daily streak
	StreakMaxDays      int `yaml:"streak_max_days" json:"streak_max_days"`
	StreakRewardPerDay int `yaml:"streak_reward_per_day" json:"streak_reward_per_day"`

	// Leaderboard
	LeaderboardCap int `yaml:"leaderboard_cap" json:"leaderboard_cap"`
}

// Default returns the shipped balance.
func Default() Balance {
	return Balance{
		BaseClickPower:       1,
		PremiumClickPower:    10,
		CombosPerTier:        10,
		ComboGraceBaseMs:     1000,
		ComboGracePerLevelMs: 200,
		MeterStepPerTap:      2,
		MeterMax:             100,
		HappyModeSeconds:     10,
		HappyMultiplier:      2,
		TreatChanceBase:      0.06,
		TreatChancePerLevel:  0.01,
		RareDropChance:       0.01,
		StreakMaxDays:        7,
		StreakRewardPerDay:   5,
		LeaderboardCap:       10,
	}
}

// ApplyDefaults fills zero values so a sparse YAML override stays playable.
func (b *Balance) ApplyDefaults() {
	def := Default()
	if b.BaseClickPower == 0 {
		b.BaseClickPower = def.BaseClickPower
	}
	if b.PremiumClickPower == 0 {
		b.PremiumClickPower = def.PremiumClickPower
	}
	if b.CombosPerTier == 0 {
		b.CombosPerTier = def.CombosPerTier
	}
	if b.ComboGraceBaseMs == 0 {
		b.ComboGraceBaseMs = def.ComboGraceBaseMs
	}
	if b.ComboGracePerLevelMs == 0 {
		b.ComboGracePerLevelMs = def.ComboGracePerLevelMs
	}
	if b.MeterStepPerTap == 0 {
		b.MeterStepPerTap = def.MeterStepPerTap
	}
	if b.MeterMax == 0 {
		b.MeterMax = def.MeterMax
	}
	if b.HappyModeSeconds == 0 {
		b.HappyModeSeconds = def.HappyModeSeconds
	}
	if b.HappyMultiplier == 0 {
		b.HappyMultiplier = def.HappyMultiplier
	}
	if b.TreatChanceBase == 0 {
		b.TreatChanceBase = def.TreatChanceBase
	}
	if b.TreatChancePerLevel == 0 {
		b.TreatChancePerLevel = def.TreatChancePerLevel
	}
	if b.RareDropChance == 0 {
		b.RareDropChance = def.RareDropChance
	}
	if b.StreakMaxDays == 0 {
		b.StreakMaxDays = def.StreakMaxDays
	}
	if b.StreakRewardPerDay == 0 {
		b.StreakRewardPerDay = def.StreakRewardPerDay
	}
	if b.LeaderboardCap == 0 {
		b.LeaderboardCap = def.LeaderboardCap
	}
}
