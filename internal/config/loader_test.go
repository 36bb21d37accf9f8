package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const weaponsYAML = `
weapons:
  - kind: Spear
    range: 260
    speed: 1.02
    dmg: 18
    sprite: spear
    tip_offset: 42
  - kind: Dagger
    range: 80
    speed: 1.7
    dmg: 12
`

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "weapons.yaml", weaponsYAML)
	writeFile(t, dir, "abilities.yaml", "fire:\n  ticks: 90\nstun:\n  chance: 0.25\n")
	writeFile(t, dir, "arena.yaml", `
seed: 99
max_frames: 600
settings:
  global_speed_multiplier: 2.5
fighters:
  - id: A
    weapon: Dagger
    abilities: [Fire, Ice]
`)

	wc, ac, arena, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(wc.Weapons) != 2 || wc.Weapons[0].Kind != "Spear" || wc.Weapons[0].TipOffset != 42 || wc.Weapons[1].Dmg != 12 {
		t.Errorf("weapons = %+v", wc.Weapons)
	}
	if ac.Fire.Ticks != 90 || ac.Stun.Chance != 0.25 || ac.Ice.Frames != 0 {
		t.Errorf("abilities = %+v", ac)
	}
	if arena.Seed != 99 || arena.MaxFrames != 600 {
		t.Errorf("arena = %+v", arena)
	}
	if arena.Settings.GlobalSpeedMultiplier != 2.5 || !arena.Settings.ExtendSlowMoOnKill {
		t.Errorf("settings = %+v (slow-mo default should survive)", arena.Settings)
	}

	a := arena.Loadout("A", "Spear")
	if a.Weapon != "Dagger" || len(a.Abilities) != 2 {
		t.Errorf("loadout A = %+v", a)
	}
	b := arena.Loadout("B", "Axe")
	if b.ID != "B" || b.Weapon != "Axe" || len(b.Abilities) != 0 {
		t.Errorf("loadout B = %+v", b)
	}
}

func TestLoadAllOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "weapons.yaml", weaponsYAML)

	_, ac, arena, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if *ac != (AbilitiesConfig{}) {
		t.Errorf("abilities = %+v, want zero", ac)
	}
	if arena.Settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", arena.Settings)
	}
}

func TestLoadAllErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing weapons", nil, "weapons.yaml"},
		{"empty weapons", map[string]string{"weapons.yaml": "weapons: []\n"}, "no weapons"},
		{"bad yaml", map[string]string{"weapons.yaml": "weapons: [\n"}, "load weapons.yaml"},
		{"bad arena", map[string]string{"weapons.yaml": weaponsYAML, "arena.yaml": "seed: [1\n"}, "load arena.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, body := range tt.files {
				writeFile(t, dir, name, body)
			}
			_, _, _, err := LoadAll(dir)
			if err == nil {
				t.Fatal("LoadAll succeeded")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadoutNilArena(t *testing.T) {
	var ac *ArenaConfig
	if got := ac.Loadout("A", "Spear"); got.ID != "A" || got.Weapon != "Spear" {
		t.Errorf("Loadout on nil = %+v", got)
	}
}
