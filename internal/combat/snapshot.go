package combat

import (
	"fmt"
	"strings"
)

type FighterView struct {
	ID          string   `json:"id"`
	Weapon      string   `json:"weapon"`
	Sprite      string   `json:"sprite"`
	WeaponColor string   `json:"weapon_color,omitempty"`
	TipOffset   float64  `json:"tip_offset"`
	Color       string   `json:"color"`
	HP          int      `json:"hp"`
	MaxHP       int      `json:"max_hp"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Dmg         int      `json:"dmg"`
	Range       float64  `json:"range"`
	Speed       float64  `json:"speed"`
	Abilities   []string `json:"abilities"`
	Cooldown    int      `json:"cooldown"`
	Stunned     int      `json:"stunned"`
	Burning     bool     `json:"burning"`
	Slowed      bool     `json:"slowed"`
}

// Snapshot is a value copy of everything a renderer may look at.
type Snapshot struct {
	Frame       int            `json:"frame"`
	State       State          `json:"state"`
	Winner      string         `json:"winner,omitempty"`
	CameraShake float64        `json:"camera_shake"`
	SlowMoFor   int            `json:"slowmo_for"`
	Fighters    [2]FighterView `json:"fighters"`
	FX          []FX           `json:"fx"`
}

func (f *Fighter) View() FighterView {
	return FighterView{
		ID:          f.ID,
		Weapon:      f.WeaponKind,
		Sprite:      f.Sprite,
		WeaponColor: f.WeaponColor,
		TipOffset:   f.TipOffset,
		Color:       f.Color,
		HP:          f.HP,
		MaxHP:       f.MaxHP,
		X:           f.Pos.X,
		Y:           f.Pos.Y,
		Dmg:         f.Dmg,
		Range:       f.Range,
		Speed:       f.Speed,
		Abilities:   append([]string(nil), f.Abilities...),
		Cooldown:    f.Cooldown,
		Stunned:     f.Stunned,
		Burning:     f.Burn.Active(),
		Slowed:      f.Slow.Active(),
	}
}

func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		Frame:       b.Frame,
		State:       b.State(),
		CameraShake: b.CameraShake,
		SlowMoFor:   b.SlowMoFor,
		Fighters:    [2]FighterView{b.A.View(), b.B.View()},
		FX:          append([]FX(nil), b.FX...),
	}
	if b.winner != nil {
		s.Winner = b.winner.ID
	}
	return s
}

// WinnerView returns the winning fighter's view, if any.
func (s Snapshot) WinnerView() (FighterView, bool) {
	for _, f := range s.Fighters {
		if s.Winner != "" && f.ID == s.Winner {
			return f, true
		}
	}
	return FighterView{}, false
}

// StatusLines is the four-line sidebar text for one fighter.
func (v FighterView) StatusLines() []string {
	abilities := strings.Join(v.Abilities, ", ")
	if abilities == "" {
		abilities = "—"
	}
	return []string{
		fmt.Sprintf("HP: %d/%d", max(0, v.HP), v.MaxHP),
		fmt.Sprintf("Weapon: %s", v.Weapon),
		fmt.Sprintf("Dmg:%d Range:%g SPD:%.2f", v.Dmg, v.Range, v.Speed),
		fmt.Sprintf("Abilities: %s", abilities),
	}
}
