package combat

import (
	"fmt"
	"strings"

	"duelsim/internal/config"
)

const defaultTipOffset = 36

type WeaponStats struct {
	Kind      string  `json:"kind"`
	Range     float64 `json:"range"`
	Speed     float64 `json:"speed"`
	Dmg       int     `json:"dmg"`
	Sprite    string  `json:"sprite"`
	Color     string  `json:"color"`
	TipOffset float64 `json:"tip_offset"`
}

var defaultWeapons = []WeaponStats{
	{Kind: "Spear", Range: 260, Speed: 1.02, Dmg: 18, Sprite: "spear", Color: "#ffd166", TipOffset: 42},
	{Kind: "Dagger", Range: 80, Speed: 1.7, Dmg: 12, Sprite: "dagger", Color: "#ef476f", TipOffset: 28},
	{Kind: "Sword", Range: 150, Speed: 1.15, Dmg: 16, Sprite: "sword", Color: "#06d6a0", TipOffset: 36},
	{Kind: "Axe", Range: 120, Speed: 0.9, Dmg: 22, Sprite: "axe", Color: "#ff8fab", TipOffset: 34},
}

type UnknownWeaponError struct {
	Kind string
}

func (e *UnknownWeaponError) Error() string {
	return fmt.Sprintf("unknown weapon: %q", e.Kind)
}

// Catalog is the weapon lookup table. Kinds keep their declaration order.
type Catalog struct {
	order  []string
	byKind map[string]WeaponStats
}

func DefaultCatalog() *Catalog {
	c := &Catalog{byKind: map[string]WeaponStats{}}
	for _, ws := range defaultWeapons {
		c.add(ws)
	}
	return c
}

func NewCatalog(cfg *config.WeaponsConfig) *Catalog {
	if cfg == nil || len(cfg.Weapons) == 0 {
		return DefaultCatalog()
	}
	c := &Catalog{byKind: map[string]WeaponStats{}}
	for _, w := range cfg.Weapons {
		if w.Kind == "" {
			continue
		}
		c.add(WeaponStats{
			Kind:      w.Kind,
			Range:     w.Range,
			Speed:     w.Speed,
			Dmg:       w.Dmg,
			Sprite:    w.Sprite,
			Color:     w.Color,
			TipOffset: w.TipOffset,
		})
	}
	return c
}

func (c *Catalog) add(ws WeaponStats) {
	if ws.TipOffset <= 0 {
		ws.TipOffset = defaultTipOffset
	}
	if ws.Sprite == "" {
		ws.Sprite = strings.ToLower(ws.Kind)
	}
	if _, dup := c.byKind[ws.Kind]; !dup {
		c.order = append(c.order, ws.Kind)
	}
	c.byKind[ws.Kind] = ws
}

func (c *Catalog) Lookup(kind string) (WeaponStats, bool) {
	if c == nil {
		return WeaponStats{}, false
	}
	ws, ok := c.byKind[kind]
	return ws, ok
}

func (c *Catalog) Kinds() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}
