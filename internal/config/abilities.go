package config

// AbilitiesConfig tunes the on-hit abilities. Zero values fall back to the
// built-in numbers in combat.NewAbilityBook.
type AbilitiesConfig struct {
	Fire      FireTuning      `yaml:"fire"`
	Ice       IceTuning       `yaml:"ice"`
	Explosive ExplosiveTuning `yaml:"explosive"`
	Lifesteal LifestealTuning `yaml:"lifesteal"`
	Stun      StunTuning      `yaml:"stun"`
}

type FireTuning struct {
	Ticks    int     `yaml:"ticks"`
	Period   int     `yaml:"period"`
	DmgRatio float64 `yaml:"dmg_ratio"`
}

type IceTuning struct {
	Frames     int     `yaml:"frames"`
	SlowFactor float64 `yaml:"slow_factor"`
}

type ExplosiveTuning struct {
	Radius   float64 `yaml:"radius"`
	DmgRatio float64 `yaml:"dmg_ratio"`
}

type LifestealTuning struct {
	Ratio float64 `yaml:"ratio"`
}

type StunTuning struct {
	Chance float64 `yaml:"chance"`
	Frames int     `yaml:"frames"`
}
