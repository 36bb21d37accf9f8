package config

// Settings are the knobs a driving UI owns and hands to the simulation.
type Settings struct {
	GlobalSpeedMultiplier float64 `yaml:"global_speed_multiplier"`
	ExtendSlowMoOnKill    bool    `yaml:"extend_slowmo_on_kill"`
}

func DefaultSettings() Settings {
	return Settings{GlobalSpeedMultiplier: 1, ExtendSlowMoOnKill: true}
}

type ArenaConfig struct {
	Seed      int64        `yaml:"seed"`
	MaxFrames int          `yaml:"max_frames"`
	Settings  Settings     `yaml:"settings"`
	Fighters  []FighterDef `yaml:"fighters"`
}

type FighterDef struct {
	ID        string   `yaml:"id"`
	Weapon    string   `yaml:"weapon"`
	Abilities []string `yaml:"abilities"`
	Color     string   `yaml:"color"`
	Note      string   `yaml:"note"`
}

// Loadout returns the fighter definition for id, or a bare one with the
// given fallback weapon when the arena file does not list it.
func (ac *ArenaConfig) Loadout(id, fallbackWeapon string) FighterDef {
	if ac != nil {
		for _, f := range ac.Fighters {
			if f.ID == id {
				if f.Weapon == "" {
					f.Weapon = fallbackWeapon
				}
				return f
			}
		}
	}
	return FighterDef{ID: id, Weapon: fallbackWeapon}
}
