package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAll reads weapons.yaml, abilities.yaml and arena.yaml from dir.
// abilities.yaml and arena.yaml are optional; a missing file leaves the
// corresponding config zero-valued so defaults apply downstream.
func LoadAll(dir string) (*WeaponsConfig, *AbilitiesConfig, *ArenaConfig, error) {
	var wc WeaponsConfig
	var ac AbilitiesConfig
	arena := ArenaConfig{Settings: DefaultSettings()}
	if err := loadYAML(filepath.Join(dir, "weapons.yaml"), &wc); err != nil {
		return nil, nil, nil, err
	}
	if len(wc.Weapons) == 0 {
		return nil, nil, nil, fmt.Errorf("load weapons.yaml: no weapons defined in %s", dir)
	}
	if err := loadOptional(filepath.Join(dir, "abilities.yaml"), &ac); err != nil {
		return nil, nil, nil, err
	}
	if err := loadOptional(filepath.Join(dir, "arena.yaml"), &arena); err != nil {
		return nil, nil, nil, err
	}
	return &wc, &ac, &arena, nil
}

func loadOptional(path string, out any) error {
	err := loadYAML(path, out)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
