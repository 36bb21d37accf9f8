package combat

import (
	"encoding/json"
	"fmt"

	"duelsim/internal/config"
)

// DefaultMaxFrames caps a headless run at two minutes of 60 fps play.
const DefaultMaxFrames = 7200

type SimResult struct {
	Winner          string         `json:"winner,omitempty"`
	Finished        bool           `json:"finished"`
	Frames          int            `json:"frames"`
	HP              map[string]int `json:"hp"`
	DamageByFighter map[string]int `json:"damage_by_fighter"`
	DamageBySource  map[string]int `json:"damage_by_source"`
	SelfDamage      map[string]int `json:"self_damage,omitempty"`
	Healing         map[string]int `json:"healing,omitempty"`
	Procs           map[string]int `json:"procs,omitempty"`
	Events          []Event        `json:"events,omitempty"`
	Meta            SimMeta        `json:"meta"`
}

type SimMeta struct {
	Seed     int64            `json:"seed"`
	Settings config.Settings  `json:"settings"`
	Fighters []SimFighterMeta `json:"fighters"`
}

type SimFighterMeta struct {
	ID        string   `json:"id"`
	Weapon    string   `json:"weapon"`
	Abilities []string `json:"abilities"`
	Dmg       int      `json:"dmg"`
	Range     float64  `json:"range"`
	Speed     float64  `json:"speed"`
	Color     string   `json:"color"`
}

// RunSingle fights a to completion (or maxFrames) headlessly. onFrame, when
// set, runs after every update.
func RunSingle(env *Env, a, b *Fighter, maxFrames int, record bool, onFrame func(*Battle)) SimResult {
	if env == nil {
		env = &Env{}
	}
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	res := newSimResult(env.Settings)
	var events []Event
	emit := func(ev Event) {
		if record {
			events = append(events, ev)
		}
		if env.Emit != nil {
			env.Emit(ev)
		}
	}
	logLine := func(t int, format string, args ...any) {
		emit(Event{T: t, Type: "LogLine", Payload: map[string]any{"text": fmt.Sprintf(format, args...)}})
	}

	local := *env
	local.Emit = func(ev Event) {
		res.tally(ev)
		emit(ev)
	}
	bt := NewBattle(a, b, &local)
	for _, f := range bt.Combatants() {
		res.Meta.Fighters = append(res.Meta.Fighters, SimFighterMeta{
			ID: f.ID, Weapon: f.WeaponKind, Abilities: append([]string(nil), f.Abilities...),
			Dmg: f.Dmg, Range: f.Range, Speed: f.Speed, Color: f.Color,
		})
	}

	bt.Start()
	logLine(bt.Frame, "Fight started: %s vs %s", a.WeaponKind, b.WeaponKind)
	for bt.State() == StateFighting && bt.Frame < maxFrames {
		bt.Update()
		if onFrame != nil {
			onFrame(bt)
		}
	}

	res.Frames = bt.Frame
	for _, f := range bt.Combatants() {
		res.HP[f.ID] = f.HP
	}
	if w := bt.Winner(); w != nil {
		res.Winner = w.ID
		res.Finished = true
		logLine(bt.Frame, "Winner: %s (%s)", w.ID, w.WeaponKind)
	} else {
		logLine(bt.Frame, "No winner after %d frames", bt.Frame)
	}
	if record {
		res.Events = events
	}
	return res
}

func newSimResult(s config.Settings) SimResult {
	return SimResult{
		HP:              map[string]int{},
		DamageByFighter: map[string]int{},
		DamageBySource:  map[string]int{},
		SelfDamage:      map[string]int{},
		Healing:         map[string]int{},
		Procs:           map[string]int{},
		Meta:            SimMeta{Settings: s},
	}
}

// tally folds one event into the totals. Explosive splash on the attacker
// goes to SelfDamage, never to the attacker's credited damage.
func (r *SimResult) tally(ev Event) {
	switch ev.Type {
	case "Hit":
		dmg := payloadInt(ev.Payload, "dmg")
		r.DamageByFighter[payloadString(ev.Payload, "attacker")] += dmg
		r.DamageBySource["hit"] += dmg
	case "Burn":
		dmg := payloadInt(ev.Payload, "dmg")
		r.DamageByFighter[payloadString(ev.Payload, "source")] += dmg
		r.DamageBySource["burn"] += dmg
	case "AreaDamage":
		dmg := payloadInt(ev.Payload, "dmg")
		attacker := payloadString(ev.Payload, "attacker")
		if payloadString(ev.Payload, "target") == attacker {
			r.SelfDamage[attacker] += dmg
			return
		}
		r.DamageByFighter[attacker] += dmg
		r.DamageBySource["explosive"] += dmg
	case "Heal":
		r.Healing[payloadString(ev.Payload, "target")] += payloadInt(ev.Payload, "amount")
	case "Ability":
		r.Procs[payloadString(ev.Payload, "ability")]++
	}
}

func payloadInt(p map[string]any, key string) int {
	v, _ := p[key].(int)
	return v
}

func payloadString(p map[string]any, key string) string {
	v, _ := p[key].(string)
	return v
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
