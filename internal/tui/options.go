package tui

import (
	"duelsim/internal/combat"
	"duelsim/internal/config"
)

// LoadOptions builds Options from a config dir, or from the built-in tables
// when dir is empty. A zero seed falls back to the arena file's seed.
func LoadOptions(dir string, seed int64) (Options, error) {
	opts := Options{Settings: config.DefaultSettings(), Seed: seed}
	arena := &config.ArenaConfig{}
	if dir != "" {
		w, a, ar, err := config.LoadAll(dir)
		if err != nil {
			return Options{}, err
		}
		opts.Catalog = combat.NewCatalog(w)
		opts.Abilities = combat.NewAbilityBook(a)
		opts.Settings = ar.Settings
		arena = ar
	}
	opts.Loadouts = [2]config.FighterDef{arena.Loadout("A", "Spear"), arena.Loadout("B", "Dagger")}
	if opts.Seed == 0 {
		opts.Seed = arena.Seed
	}
	return opts, nil
}
